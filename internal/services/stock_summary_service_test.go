package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"pawn-backend/internal/models"
	"pawn-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, timeutil.IST)

type summaryFixture struct {
	svc      *StockSummaryService
	store    *memoryStore
	vouchers *fakeVouchers
	dayBooks *fakeDayBooks
	clock    *fixedClock
}

func newSummaryFixture(vouchers ...*models.Voucher) *summaryFixture {
	f := &summaryFixture{
		store:    &memoryStore{},
		vouchers: &fakeVouchers{vouchers: vouchers},
		dayBooks: &fakeDayBooks{},
		clock:    &fixedClock{now: testNow},
	}
	f.svc = NewStockSummaryService(f.store, f.vouchers, f.dayBooks, f.clock)
	return f
}

func (f *summaryFixture) snapshot(t *testing.T) *models.StockSummary {
	t.Helper()
	s, err := f.store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func mixedVouchers() []*models.Voucher {
	future := testNow.AddDate(0, 6, 0)
	past := testNow.AddDate(-1, 0, 0)
	return []*models.Voucher{
		voucher(1, "B-001", models.StatusActive, "gold", past, future, 10000),
		voucher(2, "B-002", models.StatusActive, "gold", past, future, 20000),
		voucher(3, "B-003", models.StatusClosed, "gold", past, future, 5000),
		voucher(4, "B-004", models.StatusActive, "silver", past, future, 3000),
		voucher(5, "B-005", models.StatusPartial, "silver", past, future, 2000),
	}
}

func TestSyncEmptySourcesProducesEmptySnapshot(t *testing.T) {
	f := newSummaryFixture()

	result, err := f.svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalLoans)
	assert.Equal(t, models.DataSourceNone, result.DataSource)
	assert.Equal(t, 1, f.vouchers.calls)
	assert.Equal(t, 1, f.dayBooks.calls)

	snap := f.snapshot(t)
	assert.Empty(t, snap.Loans)
	assert.Equal(t, models.SyncStatusSynced, snap.SyncStatus)
	assert.Equal(t, 1, snap.DataVersion)

	stats := ComputeStats(snap.Loans)
	assert.Zero(t, stats.TotalLoans)
	assert.Zero(t, stats.ActiveLoans)
	assert.Zero(t, stats.OverdueLoans)
	assert.Zero(t, stats.ClosedLoans)
	assert.Zero(t, stats.OverdueRate)
	assert.Zero(t, stats.CollectionRate)
}

func TestSyncVoucherDueYesterdayIsOverdue(t *testing.T) {
	v := voucher(7, "B-100", models.StatusActive, "gold", testNow.AddDate(-1, 0, 0), testNow.Add(-24*time.Hour), 15000)
	f := newSummaryFixture(v)

	result, err := f.svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.OverdueLoans)
	assert.Equal(t, models.DataSourceVouchers, result.DataSource)

	loans := f.snapshot(t).Loans
	require.Len(t, loans, 1)
	assert.Equal(t, models.LoanStatusOverdue, loans[0].LoanStatus)
	assert.Equal(t, 1, loans[0].DaysOverdue)
	assert.Equal(t, models.StatusOverdue, loans[0].Status)
	assert.Zero(t, f.dayBooks.calls, "day books must not be read when vouchers exist")
}

func TestSyncNeverMergesSources(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	f.dayBooks.books = []*models.DayBook{{
		Date:           testNow,
		LoansDisbursed: []models.DayBookTransaction{{VoucherID: "99", BillNo: "D-1", Amount: 100}},
	}}

	_, err := f.svc.Sync(context.Background())
	require.NoError(t, err)
	for _, loan := range f.snapshot(t).Loans {
		assert.Equal(t, models.LoanSourceVoucher, loan.SourceType)
	}

	f.vouchers.vouchers = nil
	result, err := f.svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DataSourceDayBooks, result.DataSource)
	loans := f.snapshot(t).Loans
	require.Len(t, loans, 1)
	assert.Equal(t, models.LoanSourceDayBook, loans[0].SourceType)
}

func TestSyncFallsBackWhenVoucherSourceFails(t *testing.T) {
	f := newSummaryFixture()
	f.vouchers.err = errors.New("connection refused")
	f.dayBooks.books = []*models.DayBook{{
		Date:        testNow,
		ClosedLoans: []models.DayBookTransaction{{VoucherID: "12", BillNo: "D-12", Amount: 500}},
	}}

	result, err := f.svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DataSourceDayBooks, result.DataSource)
	assert.Equal(t, 1, result.ClosedLoans)
}

func TestSyncBothSourcesFailingStoresEmptySnapshot(t *testing.T) {
	f := newSummaryFixture()
	f.vouchers.err = errors.New("vouchers down")
	f.dayBooks.err = errors.New("day books down")

	result, err := f.svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DataSourceNone, result.DataSource)
	assert.Empty(t, f.snapshot(t).Loans)
}

func TestSyncPersistenceErrorIsReturned(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	f.store.replaceErr = errors.New("disk full")

	_, err := f.svc.Sync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSyncIsIdempotentOnUnchangedSources(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	ctx := context.Background()

	_, err := f.svc.Sync(ctx)
	require.NoError(t, err)
	first := f.snapshot(t)

	_, err = f.svc.Sync(ctx)
	require.NoError(t, err)
	second := f.snapshot(t)

	require.Len(t, second.Loans, len(first.Loans))
	assert.NotEqual(t, first.ID, second.ID)
	for i := range first.Loans {
		a, b := first.Loans[i], second.Loans[i]
		assert.Equal(t, a.BillNo, b.BillNo)
		assert.Equal(t, a.Status, b.Status)
		assert.Equal(t, a.LoanStatus, b.LoanStatus)
		assert.Equal(t, a.LoanAmount, b.LoanAmount)
		assert.Equal(t, a.BalanceAmount, b.BalanceAmount)
		assert.Equal(t, a.RepaidAmount, b.RepaidAmount)
	}
}

func TestQueryJewelTypeFilter(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)

	result, err := f.svc.Query(context.Background(), models.StockSummaryFilter{JewelTypeFilter: "gold"}, 1, 0)
	require.NoError(t, err)

	assert.Len(t, result.Data, 3)
	require.Contains(t, result.JewelTypeSummary, "gold")
	assert.Equal(t, 3, result.JewelTypeSummary["gold"].Count)
	assert.NotContains(t, result.JewelTypeSummary, "silver")
	assert.Equal(t, 3, result.Summary.TotalLoans)
	assert.Equal(t, 5, result.OverallSummary.TotalLoans)
	assert.Equal(t, models.DataSourceVouchers, result.DataSource)
}

func TestQueryLazilySyncsWhenNoSnapshot(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)

	result, err := f.svc.Query(context.Background(), models.StockSummaryFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.replaces)
	assert.Equal(t, 5, result.Pagination.TotalItems)
	assert.NotNil(t, result.LastSyncedAt)
}

func TestQueryLazySyncFailureReturnsEmptyResult(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	f.store.replaceErr = errors.New("write failed")

	result, err := f.svc.Query(context.Background(), models.StockSummaryFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, 0, result.Pagination.TotalItems)
	assert.Equal(t, models.DataSourceNone, result.DataSource)
}

func TestQueryFiltersCombineWithAnd(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	ctx := context.Background()

	result, err := f.svc.Query(ctx, models.StockSummaryFilter{Search: "b-00", StatusFilter: "active"}, 1, 0)
	require.NoError(t, err)
	assert.Len(t, result.Data, 4)
	for _, loan := range result.Data {
		assert.Equal(t, models.LoanStatusActive, loan.LoanStatus)
	}

	result, err = f.svc.Query(ctx, models.StockSummaryFilter{StatusFilter: "closed", JewelTypeFilter: "silver"}, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Data)

	result, err = f.svc.Query(ctx, models.StockSummaryFilter{StatusFilter: "all", JewelTypeFilter: "all"}, 1, 0)
	require.NoError(t, err)
	assert.Len(t, result.Data, 5)
}

func TestQueryPreservesSnapshotOrderAndPaginates(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	ctx := context.Background()

	page1, err := f.svc.Query(ctx, models.StockSummaryFilter{}, 1, 2)
	require.NoError(t, err)
	page3, err := f.svc.Query(ctx, models.StockSummaryFilter{}, 3, 2)
	require.NoError(t, err)
	beyond, err := f.svc.Query(ctx, models.StockSummaryFilter{}, 9, 2)
	require.NoError(t, err)

	require.Len(t, page1.Data, 2)
	assert.Equal(t, "B-001", page1.Data[0].BillNo)
	assert.Equal(t, "B-002", page1.Data[1].BillNo)
	assert.Equal(t, 3, page1.Pagination.TotalPages)

	require.Len(t, page3.Data, 1)
	assert.Equal(t, "B-005", page3.Data[0].BillNo)

	assert.Empty(t, beyond.Data)
	for _, r := range []*models.StockSummaryQueryResult{page1, page3, beyond} {
		assert.Equal(t, 5, r.Pagination.TotalItems)
		assert.LessOrEqual(t, len(r.Data), r.Pagination.ItemsPerPage)
	}
}

func TestQueryPaginationBounds(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	ctx := context.Background()

	cases := []struct {
		name      string
		page      int
		limit     int
		wantLen   int
		wantPages int
		wantLimit int
	}{
		{"huge limit first page", 1, math.MaxInt, 5, 1, maxReportRows},
		{"huge limit past the end", 3, math.MaxInt, 0, 1, maxReportRows},
		{"huge page", math.MaxInt / 50, 100, 0, 1, 100},
		{"max page", math.MaxInt, 2, 0, 3, 2},
		{"last partial page", 3, 2, 1, 3, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := f.svc.Query(ctx, models.StockSummaryFilter{}, tc.page, tc.limit)
			require.NoError(t, err)
			assert.Len(t, result.Data, tc.wantLen)
			assert.NotNil(t, result.Data)
			assert.Equal(t, 5, result.Pagination.TotalItems)
			assert.Equal(t, tc.wantPages, result.Pagination.TotalPages)
			assert.Equal(t, tc.wantLimit, result.Pagination.ItemsPerPage)
			assert.Equal(t, tc.page, result.Pagination.CurrentPage)
		})
	}
}

func TestFilterLoansSearchIsNotTrimmed(t *testing.T) {
	loans := []models.DerivedLoan{
		{BillNo: "A-1", CustomerName: "Ravi Kumar", CustomerPhone: "98450 12345"},
		{BillNo: "A-2", CustomerName: "Sita", CustomerPhone: "9845012345"},
	}

	got := FilterLoans(loans, models.StockSummaryFilter{Search: " 12"}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "A-1", got[0].BillNo)

	got = FilterLoans(loans, models.StockSummaryFilter{Search: "i k"}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "A-1", got[0].BillNo)
}

func TestQueryDefaultLimit(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)

	result, err := f.svc.Query(context.Background(), models.StockSummaryFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Pagination.ItemsPerPage)
	assert.Equal(t, 1, result.Pagination.CurrentPage)
}

func TestQueryInvalidDateFilter(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)

	_, err := f.svc.Query(context.Background(), models.StockSummaryFilter{DateFilter: "15/03/2024"}, 1, 10)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestGetLoanByInternalOrVoucherID(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	ctx := context.Background()
	_, err := f.svc.Sync(ctx)
	require.NoError(t, err)

	byVoucher, err := f.svc.GetLoan(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "B-003", byVoucher.BillNo)

	byID, err := f.svc.GetLoan(ctx, byVoucher.ID)
	require.NoError(t, err)
	assert.Equal(t, "B-003", byID.BillNo)

	_, err = f.svc.GetLoan(ctx, "nope")
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestGetLoanWithoutSnapshot(t *testing.T) {
	f := newSummaryFixture()
	_, err := f.svc.GetLoan(context.Background(), "1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSweepOverdueIsIdempotent(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	ctx := context.Background()
	_, err := f.svc.Sync(ctx)
	require.NoError(t, err)

	// advance past every due date
	f.clock.now = testNow.AddDate(1, 0, 0)

	modified, err := f.svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, modified, "active and partial loans move, the closed one does not")
	assert.Equal(t, 1, f.store.saves)

	snap := f.snapshot(t)
	assert.Equal(t, 2, snap.DataVersion)
	for _, loan := range snap.Loans {
		if loan.BillNo == "B-003" {
			assert.Equal(t, models.LoanStatusClosed, loan.LoanStatus)
			continue
		}
		assert.Equal(t, models.LoanStatusOverdue, loan.LoanStatus)
		assert.Equal(t, models.StatusOverdue, loan.Status)
		assert.Positive(t, loan.DaysOverdue)
	}

	modified, err = f.svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Zero(t, modified)
	assert.Equal(t, 1, f.store.saves, "nothing modified, nothing saved")
}

func TestSweepOverdueWithoutSnapshot(t *testing.T) {
	f := newSummaryFixture()
	_, err := f.svc.SweepOverdue(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSetStatusClosedSettlesLoan(t *testing.T) {
	v := voucher(1, "B-001", models.StatusPartial, "gold", testNow.AddDate(0, -2, 0), testNow.AddDate(0, 10, 0), 10000)
	v.OverallLoanAmount = 11200
	v.RepaidAmount = 4000
	v.BalanceAmount = 7200
	v.PaymentProgress = 35.7
	f := newSummaryFixture(v)
	ctx := context.Background()
	_, err := f.svc.Sync(ctx)
	require.NoError(t, err)

	loan, err := f.svc.SetStatus(ctx, "1", models.StatusClosed)
	require.NoError(t, err)

	assert.Equal(t, models.StatusClosed, loan.Status)
	assert.Equal(t, models.LoanStatusClosed, loan.LoanStatus)
	assert.Zero(t, loan.BalanceAmount)
	assert.Equal(t, float64(100), loan.PaymentProgress)
	assert.Equal(t, 11200.0, loan.RepaidAmount)
	require.NotNil(t, loan.ClosedDate)
	assert.True(t, loan.ClosedDate.Equal(testNow))

	stored := f.snapshot(t).Loans[0]
	assert.Equal(t, models.LoanStatusClosed, stored.LoanStatus)
	assert.Zero(t, stored.BalanceAmount)
}

func TestSetStatusMapping(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	ctx := context.Background()
	_, err := f.svc.Sync(ctx)
	require.NoError(t, err)

	loan, err := f.svc.SetStatus(ctx, "1", models.StatusOverdue)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusOverdue, loan.LoanStatus)

	loan, err = f.svc.SetStatus(ctx, "1", models.StatusPartial)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusActive, loan.LoanStatus)
	assert.Zero(t, loan.DaysOverdue)
}

func TestSetStatusErrors(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	ctx := context.Background()

	_, err := f.svc.SetStatus(ctx, "1", models.StatusActive)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	_, err = f.svc.Sync(ctx)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, "1", "Lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.True(t, IsValidationError(err))

	_, err = f.svc.SetStatus(ctx, "404", models.StatusActive)
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestDashboardMonthWindows(t *testing.T) {
	thisMonth := testNow.AddDate(0, 0, -10)
	lastYearSameMonth := testNow.AddDate(-1, 0, 0)
	f := newSummaryFixture(
		voucher(1, "B-1", models.StatusActive, "gold", thisMonth, testNow.AddDate(0, 0, 5), 1000),
		voucher(2, "B-2", models.StatusActive, "gold", lastYearSameMonth, testNow.AddDate(0, 2, 0), 1000),
		voucher(3, "B-3", models.StatusActive, "gold", testNow.AddDate(0, -1, 0), testNow.AddDate(1, 0, 0), 1000),
	)
	ctx := context.Background()

	_, err := f.svc.Dashboard(ctx)
	assert.ErrorIs(t, err, ErrSnapshotNotFound, "dashboard must not sync on its own")
	assert.Zero(t, f.vouchers.calls)

	_, err = f.svc.Sync(ctx)
	require.NoError(t, err)

	dash, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, dash.TotalLoans)
	assert.Equal(t, 1, dash.LoansThisMonth)
	assert.Equal(t, 1, dash.DueThisMonth)
	assert.Equal(t, models.DataSourceVouchers, dash.DataSource)
}

func TestResetDeletesSnapshot(t *testing.T) {
	f := newSummaryFixture(mixedVouchers()...)
	ctx := context.Background()
	_, err := f.svc.Sync(ctx)
	require.NoError(t, err)

	deleted, err := f.svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = f.svc.Reset(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	_, err = f.svc.GetLoan(ctx, "1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
