package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"pawn-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookCarriesEveryTable(t *testing.T) {
	custID := 7
	closed := testNow.AddDate(0, -1, 0)
	data := &BackupData{
		Customers: []*models.Customer{{ID: 7, Name: "Ravi", Phone: "09876543210", Village: "Hosur"}},
		Vouchers: []*models.Voucher{{
			ID: 3, BillNo: "GL-001", CustomerID: &custID, CustomerName: "Ravi",
			JewelType: "gold", NetWeight: 11.5,
			JewelryItems: []models.JewelryItem{{Name: "Chain", Type: "gold", Quantity: 1, NetWeight: 11.5}},
			LoanAmount:   25000.5, OverallLoanAmount: 28000, MonthsPaid: 3,
			Date: testNow.AddDate(-1, 0, 0), DueDate: testNow, ClosedDate: &closed,
			Status: models.StatusClosed,
		}},
		Employees: []*models.Employee{{Name: "Asha", Email: "asha@example.com", Role: "cashier", Salary: 18000, JoinedAt: testNow, IsActive: true}},
		Jewels:    []*models.Jewel{{Name: "22K Chain", JewelType: "gold", Purity: "916", RatePerGram: 5400}},
	}

	f, err := BuildWorkbook(data)
	require.NoError(t, err)
	assert.Equal(t, []string{SheetCustomers, SheetVouchers, SheetEmployees, SheetJewels}, f.GetSheetList())

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	parsed, err := ParseWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Len(t, parsed.Customers, 1)
	assert.Equal(t, "09876543210", parsed.Customers[0].Phone, "phone keeps its leading zero")
	assert.Equal(t, 7, parsed.Customers[0].ID)

	require.Len(t, parsed.Vouchers, 1)
	v := parsed.Vouchers[0]
	assert.Equal(t, "GL-001", v.BillNo)
	require.NotNil(t, v.CustomerID)
	assert.Equal(t, 7, *v.CustomerID)
	assert.Equal(t, 25000.5, v.LoanAmount)
	assert.Equal(t, 3, v.MonthsPaid)
	require.Len(t, v.JewelryItems, 1)
	assert.Equal(t, "Chain", v.JewelryItems[0].Name)
	assert.True(t, v.DueDate.Equal(testNow))
	require.NotNil(t, v.ClosedDate)
	assert.True(t, v.ClosedDate.Equal(closed))
	assert.Nil(t, v.LastPaymentDate)

	require.Len(t, parsed.Employees, 1)
	assert.True(t, parsed.Employees[0].IsActive)
	assert.Equal(t, 18000.0, parsed.Employees[0].Salary)

	require.Len(t, parsed.Jewels, 1)
	assert.Equal(t, 5400.0, parsed.Jewels[0].RatePerGram)
}

func TestParseWorkbookSkipsRowsWithoutNaturalKey(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetCustomers))
	require.NoError(t, f.SetSheetRow(SheetCustomers, "A1", &customerHeaders))
	require.NoError(t, f.SetSheetRow(SheetCustomers, "A2", &[]interface{}{1, "No Phone", ""}))
	require.NoError(t, f.SetSheetRow(SheetCustomers, "A3", &[]interface{}{2, "Has Phone", "9000000000"}))

	_, err := f.NewSheet(SheetVouchers)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(SheetVouchers, "A1", &voucherHeaders))
	row := make([]interface{}, len(voucherHeaders))
	row[1] = "GL-9"
	row[20] = "2024-01-05"
	require.NoError(t, f.SetSheetRow(SheetVouchers, "A2", &row))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	parsed, err := ParseWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, parsed.Customers, 1)
	assert.Equal(t, "Has Phone", parsed.Customers[0].Name)

	require.Len(t, parsed.Vouchers, 1)
	v := parsed.Vouchers[0]
	assert.Equal(t, models.StatusActive, v.Status)
	assert.Equal(t, "gold", v.JewelType)
	assert.Nil(t, v.CustomerID)
	assert.Equal(t, time.January, v.DueDate.Month())
	assert.Equal(t, 2025, v.DueDate.Year(), "missing due date defaults to one term after the date")

	assert.Empty(t, parsed.Employees)
	assert.Empty(t, parsed.Jewels)
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook(strings.NewReader("not a spreadsheet"))
	assert.Error(t, err)
}
