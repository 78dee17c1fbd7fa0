package services

import (
	"testing"
	"time"

	"pawn-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLoan(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	tests := []struct {
		name   string
		status string
		due    time.Time
		want   string
	}{
		{"active not due", models.StatusActive, future, models.LoanStatusActive},
		{"partial not due", models.StatusPartial, future, models.LoanStatusActive},
		{"active past due", models.StatusActive, past, models.LoanStatusOverdue},
		{"unknown status past due", "Pledged", past, models.LoanStatusOverdue},
		{"closed past due", models.StatusClosed, past, models.LoanStatusClosed},
		{"overdue status not yet due", models.StatusOverdue, future, models.LoanStatusInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLoan(tt.status, tt.due, testNow))
		})
	}
}

func TestDaysOverdueRoundsUp(t *testing.T) {
	assert.Equal(t, 0, DaysOverdue(testNow.Add(time.Minute), testNow))
	assert.Equal(t, 0, DaysOverdue(testNow, testNow))
	assert.Equal(t, 1, DaysOverdue(testNow.Add(-time.Minute), testNow))
	assert.Equal(t, 1, DaysOverdue(testNow.Add(-24*time.Hour), testNow))
	assert.Equal(t, 2, DaysOverdue(testNow.Add(-25*time.Hour), testNow))
}

func TestLoansFromVouchersCustomerFallback(t *testing.T) {
	custID := 42
	resolved := voucher(1, "B-1", models.StatusActive, "", testNow, testNow.AddDate(1, 0, 0), 100)
	resolved.CustomerID = &custID
	resolved.CustomerName = "Stale Copy"
	resolved.Customer = &models.VoucherCustomer{ID: 42, Name: "Ravi Kumar", Phone: "9876543210"}
	resolved.CustomerAddress = "12 Temple St"

	localOnly := voucher(2, "B-2", models.StatusActive, "silver", testNow, testNow.AddDate(1, 0, 0), 100)
	localOnly.CustomerName = "Meena"
	localOnly.CustomerPhone = "9000000001"

	orphan := voucher(3, "B-3", models.StatusActive, "gold", testNow, testNow.AddDate(1, 0, 0), 100)

	loans := LoansFromVouchers([]*models.Voucher{resolved, localOnly, orphan}, testNow)
	require.Len(t, loans, 3)

	assert.Equal(t, "42", loans[0].CustomerID)
	assert.Equal(t, "Ravi Kumar", loans[0].CustomerName)
	assert.Equal(t, "9876543210", loans[0].CustomerPhone)
	assert.Equal(t, "12 Temple St", loans[0].CustomerAddress)
	assert.Equal(t, "gold", loans[0].JewelType, "jewel type defaults to gold")

	assert.Equal(t, "unknown", loans[1].CustomerID)
	assert.Equal(t, "Meena", loans[1].CustomerName)
	assert.Equal(t, "9000000001", loans[1].CustomerPhone)
	assert.Equal(t, "N/A", loans[1].CustomerAddress)

	assert.Equal(t, "unknown", loans[2].CustomerID)
	assert.Equal(t, "Unknown", loans[2].CustomerName)
	assert.Equal(t, "N/A", loans[2].CustomerPhone)
	assert.Equal(t, "N/A", loans[2].CustomerAddress)

	for _, loan := range loans {
		assert.Equal(t, models.LoanSourceVoucher, loan.SourceType)
		assert.NotEmpty(t, loan.ID)
		assert.NotNil(t, loan.JewelryItems)
	}
	assert.NotEqual(t, loans[0].ID, loans[1].ID)
}

func TestLoansFromDayBooks(t *testing.T) {
	bookDate := time.Date(2023, time.January, 10, 0, 0, 0, 0, testNow.Location())
	explicit := time.Date(2023, time.January, 8, 0, 0, 0, 0, testNow.Location())

	books := []*models.DayBook{{
		Date: bookDate,
		LoansDisbursed: []models.DayBookTransaction{
			{VoucherID: "v1", BillNo: "D-1", Amount: 5000, CustomerName: "Anil"},
			{VoucherID: "v2", BillNo: "", Amount: 999},
			{VoucherID: "", BillNo: "D-X", Amount: 999},
			{VoucherID: "v3", BillNo: "D-3", Amount: 7000, DisbursementDate: &explicit, JewelType: "silver"},
		},
		ClosedLoans: []models.DayBookTransaction{
			{VoucherID: "v1", BillNo: "D-1", Amount: 5000},
		},
	}}

	now := time.Date(2024, time.January, 9, 0, 0, 0, 0, testNow.Location())
	loans := LoansFromDayBooks(books, now)
	require.Len(t, loans, 3, "unqualified transactions are skipped, disbursed and closed are not de-duplicated")

	d1 := loans[0]
	assert.Equal(t, models.LoanSourceDayBook, d1.SourceType)
	assert.Equal(t, "v1", d1.SourceID)
	assert.Equal(t, "Anil", d1.CustomerName)
	assert.Equal(t, "N/A", d1.CustomerPhone)
	assert.Equal(t, "gold", d1.JewelType)
	assert.Equal(t, 5000.0, d1.LoanAmount)
	assert.Equal(t, 5000.0, d1.OverallLoanAmount)
	assert.Equal(t, 5000.0, d1.BalanceAmount)
	assert.True(t, d1.DueDate.Equal(bookDate.AddDate(1, 0, 0)))
	assert.Equal(t, models.StatusActive, d1.Status)
	assert.Equal(t, models.LoanStatusActive, d1.LoanStatus)

	d3 := loans[1]
	assert.True(t, d3.DisbursementDate.Equal(explicit))
	assert.Equal(t, models.StatusOverdue, d3.Status, "explicit disbursement date moves the due date before now")
	assert.Equal(t, models.LoanStatusOverdue, d3.LoanStatus)
	assert.Equal(t, 1, d3.DaysOverdue)

	closed := loans[2]
	assert.Equal(t, models.StatusClosed, closed.Status)
	assert.Equal(t, models.LoanStatusClosed, closed.LoanStatus)
	assert.Equal(t, 5000.0, closed.RepaidAmount)
	assert.Zero(t, closed.BalanceAmount)
	assert.Equal(t, float64(100), closed.PaymentProgress)
	require.NotNil(t, closed.ClosedDate)
	assert.True(t, closed.ClosedDate.Equal(bookDate))
}

func TestLoansFromDayBooksEmpty(t *testing.T) {
	loans := LoansFromDayBooks(nil, testNow)
	assert.NotNil(t, loans)
	assert.Empty(t, loans)
}

func TestFilterLoansSearch(t *testing.T) {
	loans := []models.DerivedLoan{
		{BillNo: "GL-100", CustomerName: "Lakshmi", CustomerID: "7", CustomerPhone: "98450"},
		{BillNo: "GL-200", CustomerName: "Suresh", CustomerID: "cust-abc", CustomerPhone: "77000"},
		{BillNo: "SL-300", CustomerName: "Ramesh", CustomerID: "9", CustomerPhone: "98451"},
	}

	bills := func(in []models.DerivedLoan) []string {
		var out []string
		for _, l := range in {
			out = append(out, l.BillNo)
		}
		return out
	}

	assert.Equal(t, []string{"GL-100", "GL-200"}, bills(FilterLoans(loans, models.StockSummaryFilter{Search: "gl-"}, nil)))
	assert.Equal(t, []string{"GL-100"}, bills(FilterLoans(loans, models.StockSummaryFilter{Search: "LAKSH"}, nil)))
	assert.Equal(t, []string{"GL-200"}, bills(FilterLoans(loans, models.StockSummaryFilter{Search: "CUST-ABC"}, nil)))
	assert.Equal(t, []string{"GL-100", "SL-300"}, bills(FilterLoans(loans, models.StockSummaryFilter{Search: "9845"}, nil)))
}

func TestFilterLoansDateWindow(t *testing.T) {
	day := time.Date(2024, time.March, 10, 0, 0, 0, 0, testNow.Location())
	loans := []models.DerivedLoan{
		{BillNo: "start", DisbursementDate: day},
		{BillNo: "late", DisbursementDate: day.Add(23*time.Hour + 59*time.Minute)},
		{BillNo: "next", DisbursementDate: day.AddDate(0, 0, 1)},
		{BillNo: "before", DisbursementDate: day.Add(-time.Second)},
	}

	got := FilterLoans(loans, models.StockSummaryFilter{}, &day)
	require.Len(t, got, 2)
	assert.Equal(t, "start", got[0].BillNo)
	assert.Equal(t, "late", got[1].BillNo)
}
