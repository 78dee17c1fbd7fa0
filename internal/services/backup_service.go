package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pawn-backend/internal/logger"
	"pawn-backend/internal/metrics"
	"pawn-backend/internal/models"
	"pawn-backend/internal/repositories"
	"pawn-backend/internal/timeutil"

	"github.com/xuri/excelize/v2"
)

const (
	SheetCustomers = "Customers"
	SheetVouchers  = "Vouchers"
	SheetEmployees = "Employees"
	SheetJewels    = "Jewels"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	customerHeaders = []interface{}{"ID", "Name", "Phone", "Village", "Address"}
	voucherHeaders  = []interface{}{
		"ID", "Bill No", "Customer ID", "Customer Name", "Customer Phone", "Customer Address",
		"Jewel Type", "Gross Weight", "Net Weight", "Jewelry Items",
		"Loan Amount", "Final Loan Amount", "Overall Loan Amount", "Interest Rate", "Interest Amount",
		"Repaid Amount", "Balance Amount", "Payment Progress", "Total Interest Paid", "Months Paid",
		"Date", "Due Date", "Closed Date", "Last Payment Date", "Status",
	}
	employeeHeaders = []interface{}{"ID", "Name", "Phone", "Email", "Role", "Salary", "Joined At", "Active"}
	jewelHeaders    = []interface{}{"ID", "Name", "Jewel Type", "Purity", "Rate Per Gram", "Description"}
)

// BackupData is the content of one backup workbook
type BackupData struct {
	Customers []*models.Customer
	Vouchers  []*models.Voucher
	Employees []*models.Employee
	Jewels    []*models.Jewel
}

// BackupUploader mirrors an exported workbook off-site
type BackupUploader interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

type BackupService struct {
	Customers *repositories.CustomerRepository
	Vouchers  *repositories.VoucherRepository
	Employees *repositories.EmployeeRepository
	Jewels    *repositories.JewelRepository
	Logs      *repositories.BackupLogRepository
	Uploader  BackupUploader
	Clock     Clock
}

// ExportResult is a finished workbook ready to be streamed
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
	Log         *models.BackupLog
}

// Export writes every collaborator table to a workbook, mirrors it when an
// uploader is configured and records the run in the backup log.
func (s *BackupService) Export(ctx context.Context) (*ExportResult, error) {
	now := s.Clock.Now(ctx)
	fileName := fmt.Sprintf("pawn-backup-%s.xlsx", now.Format("20060102-150405"))
	entry := &models.BackupLog{Action: models.BackupActionExport, FileName: fileName}

	data, err := s.collect(ctx)
	if err != nil {
		return nil, s.fail(ctx, entry, err)
	}

	f, err := BuildWorkbook(data)
	if err != nil {
		return nil, s.fail(ctx, entry, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, s.fail(ctx, entry, err)
	}

	entry.RecordCounts = data.counts()
	entry.Status = models.BackupStatusSuccess

	if s.Uploader != nil {
		key, err := s.Uploader.Upload(ctx, fileName, buf.Bytes(), xlsxContentType)
		if err != nil {
			logger.LogError("backup_service", "Export", "remote mirror failed", fileName, err)
			entry.ErrorMessage = err.Error()
		}
		entry.RemoteKey = key
	}

	s.record(ctx, entry)
	return &ExportResult{FileName: fileName, ContentType: xlsxContentType, Data: buf.Bytes(), Log: entry}, nil
}

// Import upserts every row of the workbook by natural key: customer phone,
// voucher bill number, employee email, jewel name.
func (s *BackupService) Import(ctx context.Context, r io.Reader, fileName string) (*models.BackupLog, error) {
	entry := &models.BackupLog{Action: models.BackupActionImport, FileName: fileName}

	data, err := ParseWorkbook(r)
	if err != nil {
		return nil, s.fail(ctx, entry, &ValidationError{Fields: map[string]string{"file": err.Error()}})
	}

	// Customer IDs in the file belong to the exporting database
	customerIDs := make(map[int]int, len(data.Customers))
	for _, c := range data.Customers {
		oldID := c.ID
		if err := s.Customers.Upsert(ctx, c); err != nil {
			return nil, s.fail(ctx, entry, fmt.Errorf("customer %s: %w", c.Phone, err))
		}
		customerIDs[oldID] = c.ID
	}

	for _, v := range data.Vouchers {
		if v.CustomerID != nil {
			if newID, ok := customerIDs[*v.CustomerID]; ok {
				v.CustomerID = &newID
			} else if _, err := s.Customers.Get(ctx, *v.CustomerID); err != nil {
				v.CustomerID = nil
			}
		}
		if err := s.Vouchers.Upsert(ctx, v); err != nil {
			return nil, s.fail(ctx, entry, fmt.Errorf("voucher %s: %w", v.BillNo, err))
		}
	}

	for _, e := range data.Employees {
		if err := s.Employees.Upsert(ctx, e); err != nil {
			return nil, s.fail(ctx, entry, fmt.Errorf("employee %s: %w", e.Email, err))
		}
	}

	for _, j := range data.Jewels {
		if err := s.Jewels.Upsert(ctx, j); err != nil {
			return nil, s.fail(ctx, entry, fmt.Errorf("jewel %s: %w", j.Name, err))
		}
	}

	entry.RecordCounts = data.counts()
	entry.Status = models.BackupStatusSuccess
	s.record(ctx, entry)
	return entry, nil
}

// ListLogs returns the most recent backup runs
func (s *BackupService) ListLogs(ctx context.Context, limit int) ([]*models.BackupLog, error) {
	return s.Logs.List(ctx, limit)
}

func (s *BackupService) collect(ctx context.Context) (*BackupData, error) {
	var data BackupData
	var err error
	if data.Customers, err = s.Customers.List(ctx); err != nil {
		return nil, fmt.Errorf("customers: %w", err)
	}
	if data.Vouchers, err = s.Vouchers.ListWithCustomers(ctx); err != nil {
		return nil, fmt.Errorf("vouchers: %w", err)
	}
	if data.Employees, err = s.Employees.List(ctx); err != nil {
		return nil, fmt.Errorf("employees: %w", err)
	}
	if data.Jewels, err = s.Jewels.List(ctx); err != nil {
		return nil, fmt.Errorf("jewels: %w", err)
	}
	return &data, nil
}

func (s *BackupService) fail(ctx context.Context, entry *models.BackupLog, err error) error {
	entry.Status = models.BackupStatusFailed
	entry.ErrorMessage = err.Error()
	s.record(ctx, entry)
	return err
}

func (s *BackupService) record(ctx context.Context, entry *models.BackupLog) {
	metrics.BackupOperationsTotal.WithLabelValues(entry.Action, entry.Status).Inc()
	if s.Logs == nil {
		return
	}
	if err := s.Logs.Create(ctx, entry); err != nil {
		logger.LogError("backup_service", "record", "failed to write backup log", entry, err)
	}
}

func (d *BackupData) counts() map[string]int {
	return map[string]int{
		"customers": len(d.Customers),
		"vouchers":  len(d.Vouchers),
		"employees": len(d.Employees),
		"jewels":    len(d.Jewels),
	}
}

// BuildWorkbook lays out one sheet per table with a header row
func BuildWorkbook(data *BackupData) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetCustomers); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetVouchers, SheetEmployees, SheetJewels} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	var rows [][]interface{}
	for _, c := range data.Customers {
		rows = append(rows, []interface{}{c.ID, c.Name, c.Phone, c.Village, c.Address})
	}
	if err := writeSheet(f, SheetCustomers, customerHeaders, rows); err != nil {
		return nil, err
	}

	rows = rows[:0]
	for _, v := range data.Vouchers {
		items, err := json.Marshal(v.JewelryItems)
		if err != nil {
			return nil, err
		}
		customerID := ""
		if v.CustomerID != nil {
			customerID = strconv.Itoa(*v.CustomerID)
		}
		rows = append(rows, []interface{}{
			v.ID, v.BillNo, customerID, v.CustomerName, v.CustomerPhone, v.CustomerAddress,
			v.JewelType, v.GrossWeight, v.NetWeight, string(items),
			v.LoanAmount, v.FinalLoanAmount, v.OverallLoanAmount, v.InterestRate, v.InterestAmount,
			v.RepaidAmount, v.BalanceAmount, v.PaymentProgress, v.TotalInterestPaid, v.MonthsPaid,
			formatTime(&v.Date), formatTime(&v.DueDate), formatTime(v.ClosedDate), formatTime(v.LastPaymentDate), v.Status,
		})
	}
	if err := writeSheet(f, SheetVouchers, voucherHeaders, rows); err != nil {
		return nil, err
	}

	rows = rows[:0]
	for _, e := range data.Employees {
		rows = append(rows, []interface{}{
			e.ID, e.Name, e.Phone, e.Email, e.Role, e.Salary, formatTime(&e.JoinedAt), strconv.FormatBool(e.IsActive),
		})
	}
	if err := writeSheet(f, SheetEmployees, employeeHeaders, rows); err != nil {
		return nil, err
	}

	rows = rows[:0]
	for _, j := range data.Jewels {
		rows = append(rows, []interface{}{j.ID, j.Name, j.JewelType, j.Purity, j.RatePerGram, j.Description})
	}
	if err := writeSheet(f, SheetJewels, jewelHeaders, rows); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// ParseWorkbook reads a workbook produced by BuildWorkbook. Missing sheets are
// treated as empty; rows without their natural key are skipped.
func ParseWorkbook(r io.Reader) (*BackupData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("not a valid xlsx file: %w", err)
	}
	defer f.Close()

	var data BackupData

	for _, row := range sheetRows(f, SheetCustomers) {
		c := &models.Customer{
			ID:      cellInt(row, 0),
			Name:    cell(row, 1),
			Phone:   cell(row, 2),
			Village: cell(row, 3),
			Address: cell(row, 4),
		}
		if c.Phone == "" {
			continue
		}
		data.Customers = append(data.Customers, c)
	}

	for i, row := range sheetRows(f, SheetVouchers) {
		v, err := voucherFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetVouchers, i+2, err)
		}
		if v.BillNo == "" {
			continue
		}
		data.Vouchers = append(data.Vouchers, v)
	}

	for i, row := range sheetRows(f, SheetEmployees) {
		joined, err := parseTime(cell(row, 6))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetEmployees, i+2, err)
		}
		active, _ := strconv.ParseBool(cell(row, 7))
		e := &models.Employee{
			ID:       cellInt(row, 0),
			Name:     cell(row, 1),
			Phone:    cell(row, 2),
			Email:    cell(row, 3),
			Role:     orDefault(cell(row, 4), "staff"),
			Salary:   cellFloat(row, 5),
			IsActive: active,
		}
		if joined != nil {
			e.JoinedAt = *joined
		}
		if e.Email == "" {
			continue
		}
		data.Employees = append(data.Employees, e)
	}

	for _, row := range sheetRows(f, SheetJewels) {
		j := &models.Jewel{
			ID:          cellInt(row, 0),
			Name:        cell(row, 1),
			JewelType:   cell(row, 2),
			Purity:      cell(row, 3),
			RatePerGram: cellFloat(row, 4),
			Description: cell(row, 5),
		}
		if j.Name == "" {
			continue
		}
		data.Jewels = append(data.Jewels, j)
	}

	return &data, nil
}

func voucherFromRow(row []string) (*models.Voucher, error) {
	v := &models.Voucher{
		ID:                cellInt(row, 0),
		BillNo:            cell(row, 1),
		CustomerName:      cell(row, 3),
		CustomerPhone:     cell(row, 4),
		CustomerAddress:   cell(row, 5),
		JewelType:         orDefault(cell(row, 6), defaultJewelType),
		GrossWeight:       cellFloat(row, 7),
		NetWeight:         cellFloat(row, 8),
		LoanAmount:        cellFloat(row, 10),
		FinalLoanAmount:   cellFloat(row, 11),
		OverallLoanAmount: cellFloat(row, 12),
		InterestRate:      cellFloat(row, 13),
		InterestAmount:    cellFloat(row, 14),
		RepaidAmount:      cellFloat(row, 15),
		BalanceAmount:     cellFloat(row, 16),
		PaymentProgress:   cellFloat(row, 17),
		TotalInterestPaid: cellFloat(row, 18),
		MonthsPaid:        cellInt(row, 19),
		Status:            orDefault(cell(row, 24), models.StatusActive),
	}

	if raw := cell(row, 2); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("customer id %q: %w", raw, err)
		}
		v.CustomerID = &id
	}

	if raw := cell(row, 9); raw != "" {
		if err := json.Unmarshal([]byte(raw), &v.JewelryItems); err != nil {
			return nil, fmt.Errorf("jewelry items: %w", err)
		}
	}

	date, err := parseTime(cell(row, 20))
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, fmt.Errorf("date is required")
	}
	v.Date = *date

	due, err := parseTime(cell(row, 21))
	if err != nil {
		return nil, err
	}
	if due != nil {
		v.DueDate = *due
	} else {
		v.DueDate = v.Date.AddDate(0, voucherTermMonths, 0)
	}

	if v.ClosedDate, err = parseTime(cell(row, 22)); err != nil {
		return nil, err
	}
	if v.LastPaymentDate, err = parseTime(cell(row, 23)); err != nil {
		return nil, err
	}
	return v, nil
}

// sheetRows returns the data rows of sheet, without the header
func sheetRows(f *excelize.File, sheet string) [][]string {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil || len(rows) < 2 {
		return nil
	}
	return rows[1:]
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellFloat(row []string, i int) float64 {
	n, _ := strconv.ParseFloat(cell(row, i), 64)
	return n
}

func cellInt(row []string, i int) int {
	return int(cellFloat(row, i))
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := timeutil.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", value)
	}
	return &t, nil
}
