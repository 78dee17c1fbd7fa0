package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"pawn-backend/internal/models"
	"pawn-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf"
)

// ReportService renders the filtered stock summary as PDF or CSV
type ReportService struct {
	Summary *StockSummaryService
}

// NewReportService creates a new report service
func NewReportService(summary *StockSummaryService) *ReportService {
	return &ReportService{Summary: summary}
}

type reportColumn struct {
	title string
	width float64
	align string
}

var stockReportColumns = []reportColumn{
	{"Bill No", 25, "L"},
	{"Customer", 45, "L"},
	{"Phone", 28, "L"},
	{"Jewel", 20, "C"},
	{"Net Wt (g)", 20, "R"},
	{"Loan Amt", 28, "R"},
	{"Balance", 28, "R"},
	{"Disbursed", 23, "C"},
	{"Due", 23, "C"},
	{"Status", 20, "C"},
	{"Days OD", 17, "R"},
}

// GenerateStockSummaryPDF renders every loan matching filter with the filtered totals
func (s *ReportService) GenerateStockSummaryPDF(ctx context.Context, filter models.StockSummaryFilter) ([]byte, error) {
	result, err := s.Summary.FilteredLoans(ctx, filter)
	if err != nil {
		return nil, err
	}
	return RenderStockSummaryPDF(result, s.Summary.Clock.Now(ctx))
}

// RenderStockSummaryPDF lays out a query result on landscape A4 pages
func RenderStockSummaryPDF(result *models.StockSummaryQueryResult, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "Stock Summary Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.FormatIST(generatedAt, timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	if result.LastSyncedAt != nil {
		pdf.CellFormat(277, 6, fmt.Sprintf("Data source: %s, last synced %s", result.DataSource,
			timeutil.FormatIST(*result.LastSyncedAt, timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	sum := result.Summary
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(69, 8, fmt.Sprintf("Loans: %d", sum.TotalLoans), "1", 0, "C", true, 0, "")
	pdf.CellFormat(69, 8, fmt.Sprintf("Active: %d  Overdue: %d  Closed: %d", sum.ActiveLoans, sum.OverdueLoans, sum.ClosedLoans), "1", 0, "C", true, 0, "")
	pdf.CellFormat(69, 8, fmt.Sprintf("Lent: Rs. %.2f", sum.TotalLoanAmount), "1", 0, "C", true, 0, "")
	pdf.CellFormat(70, 8, fmt.Sprintf("Outstanding: Rs. %.2f", sum.TotalBalanceAmount), "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(138, 7, fmt.Sprintf("Overdue rate: %.2f%%", sum.OverdueRate), "1", 0, "C", false, 0, "")
	pdf.CellFormat(139, 7, fmt.Sprintf("Collection rate: %.2f%%", sum.CollectionRate), "1", 1, "C", false, 0, "")
	pdf.Ln(4)

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(200, 200, 200)
		for _, col := range stockReportColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})
	header()

	for _, loan := range result.Data {
		if loan.LoanStatus == models.LoanStatusOverdue {
			pdf.SetFillColor(255, 220, 220)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		values := []string{
			loan.BillNo,
			tr(truncate(loan.CustomerName, 28)),
			loan.CustomerPhone,
			tr(loan.JewelType),
			fmt.Sprintf("%.2f", loan.NetWeight),
			fmt.Sprintf("%.2f", loan.LoanAmount),
			fmt.Sprintf("%.2f", loan.BalanceAmount),
			timeutil.FormatIST(loan.DisbursementDate, timeutil.DateLayout),
			timeutil.FormatIST(loan.DueDate, timeutil.DateLayout),
			loan.Status,
			strconv.Itoa(loan.DaysOverdue),
		}
		for i, col := range stockReportColumns {
			pdf.CellFormat(col.width, 6, values[i], "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(result.Data) == 0 {
		pdf.CellFormat(277, 8, "No loans match the selected filters", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateStockSummaryCSV writes the filtered loans as CSV
func (s *ReportService) GenerateStockSummaryCSV(ctx context.Context, filter models.StockSummaryFilter) ([]byte, error) {
	result, err := s.Summary.FilteredLoans(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{
		"Bill No", "Customer ID", "Customer", "Phone", "Jewel Type", "Net Weight",
		"Loan Amount", "Repaid", "Balance", "Progress", "Disbursed", "Due", "Status", "Loan Status", "Days Overdue",
	})

	for _, loan := range result.Data {
		w.Write([]string{
			loan.BillNo,
			loan.CustomerID,
			loan.CustomerName,
			loan.CustomerPhone,
			loan.JewelType,
			fmt.Sprintf("%.3f", loan.NetWeight),
			fmt.Sprintf("%.2f", loan.LoanAmount),
			fmt.Sprintf("%.2f", loan.RepaidAmount),
			fmt.Sprintf("%.2f", loan.BalanceAmount),
			fmt.Sprintf("%.1f", loan.PaymentProgress),
			timeutil.FormatIST(loan.DisbursementDate, timeutil.DateLayout),
			timeutil.FormatIST(loan.DueDate, timeutil.DateLayout),
			loan.Status,
			loan.LoanStatus,
			strconv.Itoa(loan.DaysOverdue),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
