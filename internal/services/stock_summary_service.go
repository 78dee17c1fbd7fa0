package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawn-backend/internal/cache"
	"pawn-backend/internal/logger"
	"pawn-backend/internal/metrics"
	"pawn-backend/internal/models"
	"pawn-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSnapshotNotFound = errors.New("stock summary not found, run a sync first")
	ErrLoanNotFound     = errors.New("loan not found in stock summary")
	ErrInvalidStatus    = errors.New("invalid status, must be one of Active, Partial, Overdue, Closed")
)

const (
	defaultPageLimit = 100
	maxReportRows    = 5000
	filterAll        = "all"
)

// SnapshotStore persists the single current stock summary.
// Load returns nil, nil when nothing is stored.
type SnapshotStore interface {
	Load(ctx context.Context) (*models.StockSummary, error)
	Replace(ctx context.Context, s *models.StockSummary) error
	Save(ctx context.Context, s *models.StockSummary) error
	DeleteAll(ctx context.Context) (int64, error)
}

type StockSummaryService struct {
	Store    SnapshotStore
	Vouchers VoucherSource
	DayBooks DayBookSource
	Clock    Clock

	DefaultLimit int
	DashboardTTL time.Duration
}

func NewStockSummaryService(store SnapshotStore, vouchers VoucherSource, dayBooks DayBookSource, clock Clock) *StockSummaryService {
	return &StockSummaryService{
		Store:        store,
		Vouchers:     vouchers,
		DayBooks:     dayBooks,
		Clock:        clock,
		DefaultLimit: defaultPageLimit,
		DashboardTTL: 2 * time.Minute,
	}
}

// Sync rebuilds the snapshot from vouchers, falling back to day books when
// vouchers are unreadable or empty. Source failures never fail the sync;
// only persisting the new snapshot can.
func (s *StockSummaryService) Sync(ctx context.Context) (*models.SyncResult, error) {
	log := logger.Component("stock_summary_service")
	now := s.Clock.Now(ctx)

	loans, source := s.readLoans(ctx, now)
	snapshot := &models.StockSummary{
		ID:           uuid.NewString(),
		Loans:        loans,
		DataSource:   source,
		LastSyncedAt: now,
		LastUpdated:  now,
		SyncStatus:   models.SyncStatusSynced,
		DataVersion:  1,
	}

	if err := s.Store.Replace(ctx, snapshot); err != nil {
		metrics.StockSummarySyncErrors.Inc()
		return nil, fmt.Errorf("persist stock summary: %w", err)
	}

	stats := ComputeStats(loans)
	metrics.StockSummarySyncTotal.WithLabelValues(source).Inc()
	recordLoanGauges(stats)
	cache.InvalidateStockSummaryCaches(ctx)

	log.WithFields(logrus.Fields{
		"source": source,
		"loans":  stats.TotalLoans,
	}).Info("stock summary synchronized")

	return &models.SyncResult{
		TotalLoans:   stats.TotalLoans,
		ActiveLoans:  stats.ActiveLoans,
		OverdueLoans: stats.OverdueLoans,
		ClosedLoans:  stats.ClosedLoans,
		DataSource:   source,
		LastSyncedAt: now,
	}, nil
}

func (s *StockSummaryService) readLoans(ctx context.Context, now time.Time) ([]models.DerivedLoan, string) {
	vouchers, err := s.Vouchers.ListWithCustomers(ctx)
	if err != nil {
		logger.LogError("stock_summary_service", "readLoans", "voucher source unavailable, trying day books", nil, err)
	} else if len(vouchers) > 0 {
		return LoansFromVouchers(vouchers, now), models.DataSourceVouchers
	}

	books, err := s.DayBooks.ListByDateDesc(ctx)
	if err != nil {
		logger.LogError("stock_summary_service", "readLoans", "day book source unavailable, storing empty summary", nil, err)
		return []models.DerivedLoan{}, models.DataSourceNone
	}

	loans := LoansFromDayBooks(books, now)
	if len(loans) == 0 {
		return loans, models.DataSourceNone
	}
	return loans, models.DataSourceDayBooks
}

// Query filters and paginates the current snapshot, syncing first when
// none exists. A failed lazy sync yields an empty result, not an error.
func (s *StockSummaryService) Query(ctx context.Context, filter models.StockSummaryFilter, page, limit int) (*models.StockSummaryQueryResult, error) {
	if limit < 1 {
		limit = s.DefaultLimit
		if limit < 1 {
			limit = defaultPageLimit
		}
	}
	if limit > maxReportRows {
		limit = maxReportRows
	}
	if page < 1 {
		page = 1
	}

	day, err := parseDateFilter(filter.DateFilter)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		snapshot = s.lazySync(ctx)
		if snapshot == nil {
			return emptyQueryResult(limit), nil
		}
	}

	filtered := FilterLoans(snapshot.Loans, filter, day)
	summary := ComputeStats(filtered)

	totalItems := len(filtered)
	totalPages := totalItems / limit
	if totalItems%limit != 0 {
		totalPages++
	}
	data := []models.DerivedLoan{}
	if page <= totalPages {
		start := (page - 1) * limit
		end := start + limit
		if end > totalItems {
			end = totalItems
		}
		data = filtered[start:end]
	}

	lastSynced := snapshot.LastSyncedAt
	return &models.StockSummaryQueryResult{
		Data: data,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   totalItems,
			ItemsPerPage: limit,
		},
		Summary:          summary,
		JewelTypeSummary: summary.JewelTypeSummary,
		OverallSummary:   ComputeStats(snapshot.Loans),
		DataSource:       snapshot.DataSource,
		LastSyncedAt:     &lastSynced,
	}, nil
}

// FilteredLoans returns every loan matching filter in a single page
func (s *StockSummaryService) FilteredLoans(ctx context.Context, filter models.StockSummaryFilter) (*models.StockSummaryQueryResult, error) {
	return s.Query(ctx, filter, 1, maxReportRows)
}

func (s *StockSummaryService) lazySync(ctx context.Context) *models.StockSummary {
	if _, err := s.Sync(ctx); err != nil {
		logger.LogError("stock_summary_service", "Query", "lazy sync failed", nil, err)
		return nil
	}
	snapshot, err := s.Store.Load(ctx)
	if err != nil {
		logger.LogError("stock_summary_service", "Query", "reload after lazy sync failed", nil, err)
		return nil
	}
	return snapshot
}

func emptyQueryResult(limit int) *models.StockSummaryQueryResult {
	empty := ComputeStats(nil)
	return &models.StockSummaryQueryResult{
		Data:             []models.DerivedLoan{},
		Pagination:       models.Pagination{CurrentPage: 1, ItemsPerPage: limit},
		Summary:          empty,
		JewelTypeSummary: empty.JewelTypeSummary,
		OverallSummary:   empty,
		DataSource:       models.DataSourceNone,
	}
}

func parseDateFilter(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := timeutil.ParseDate(value)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"dateFilter": "datetime=2006-01-02"}}
	}
	return &day, nil
}

// FilterLoans applies every non-empty predicate of filter, keeping input order.
// day is the parsed dateFilter, nil when absent.
func FilterLoans(loans []models.DerivedLoan, filter models.StockSummaryFilter, day *time.Time) []models.DerivedLoan {
	search := filter.Search
	lowered := strings.ToLower(search)
	status := strings.ToLower(filter.StatusFilter)

	var dayStart, dayEnd time.Time
	if day != nil {
		dayStart = timeutil.StartOfDay(*day)
		dayEnd = timeutil.NextDay(*day)
	}

	filtered := make([]models.DerivedLoan, 0, len(loans))
	for _, loan := range loans {
		if search != "" && !matchesSearch(loan, search, lowered) {
			continue
		}
		if day != nil && (loan.DisbursementDate.Before(dayStart) || !loan.DisbursementDate.Before(dayEnd)) {
			continue
		}
		if status != "" && status != filterAll && loan.LoanStatus != status {
			continue
		}
		if filter.JewelTypeFilter != "" && filter.JewelTypeFilter != filterAll && loan.JewelType != filter.JewelTypeFilter {
			continue
		}
		filtered = append(filtered, loan)
	}
	return filtered
}

func matchesSearch(loan models.DerivedLoan, search, lowered string) bool {
	return strings.Contains(strings.ToLower(loan.BillNo), lowered) ||
		strings.Contains(strings.ToLower(loan.CustomerName), lowered) ||
		strings.Contains(strings.ToLower(loan.CustomerID), lowered) ||
		strings.Contains(loan.CustomerPhone, search)
}

// GetLoan finds a loan by internal id or by its voucher/source reference
func (s *StockSummaryService) GetLoan(ctx context.Context, id string) (*models.DerivedLoan, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findLoan(snapshot.Loans, id)
	if idx < 0 {
		return nil, ErrLoanNotFound
	}
	loan := snapshot.Loans[idx]
	return &loan, nil
}

// SweepOverdue moves active loans past their due date to overdue and
// returns how many changed. The snapshot is only written when something did.
func (s *StockSummaryService) SweepOverdue(ctx context.Context) (int, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	now := s.Clock.Now(ctx)

	modified := 0
	for i := range snapshot.Loans {
		loan := &snapshot.Loans[i]
		if loan.LoanStatus != models.LoanStatusActive || !loan.DueDate.Before(now) {
			continue
		}
		loan.Status = models.StatusOverdue
		loan.LoanStatus = models.LoanStatusOverdue
		loan.DaysOverdue = DaysOverdue(loan.DueDate, now)
		modified++
	}

	if modified == 0 {
		return 0, nil
	}

	if err := s.save(ctx, snapshot, now); err != nil {
		return 0, err
	}
	metrics.OverdueTransitionsTotal.Add(float64(modified))
	logger.Component("stock_summary_service").WithField("modified", modified).Info("overdue sweep updated loans")
	return modified, nil
}

// SetStatus changes a loan's business status. Closing settles the loan in full.
func (s *StockSummaryService) SetStatus(ctx context.Context, id, status string) (*models.DerivedLoan, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findLoan(snapshot.Loans, id)
	if idx < 0 {
		return nil, ErrLoanNotFound
	}

	now := s.Clock.Now(ctx)
	loan := &snapshot.Loans[idx]
	loan.Status = status
	loan.DaysOverdue = 0

	switch status {
	case models.StatusClosed:
		loan.LoanStatus = models.LoanStatusClosed
		closed := now
		loan.ClosedDate = &closed
		loan.RepaidAmount = loan.OverallLoanAmount
		loan.BalanceAmount = 0
		loan.PaymentProgress = 100
	case models.StatusOverdue:
		loan.LoanStatus = models.LoanStatusOverdue
		loan.DaysOverdue = DaysOverdue(loan.DueDate, now)
	default:
		loan.LoanStatus = models.LoanStatusActive
	}

	if err := s.save(ctx, snapshot, now); err != nil {
		return nil, err
	}

	updated := *loan
	return &updated, nil
}

func validStatus(status string) bool {
	switch status {
	case models.StatusActive, models.StatusPartial, models.StatusOverdue, models.StatusClosed:
		return true
	}
	return false
}

// Dashboard summarizes the snapshot plus this month's disbursements and due dates.
// It never syncs on its own.
func (s *StockSummaryService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	if data, ok := cache.GetCached(ctx, cache.StockSummaryDashboard); ok {
		var cached models.DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now(ctx)
	stats := ComputeStats(snapshot.Loans)

	dashboard := &models.DashboardStats{
		TotalLoans:             stats.TotalLoans,
		ActiveLoans:            stats.ActiveLoans,
		OverdueLoans:           stats.OverdueLoans,
		ClosedLoans:            stats.ClosedLoans,
		TotalLoanAmount:        stats.TotalLoanAmount,
		TotalActiveLoanAmount:  stats.TotalActiveLoanAmount,
		TotalOverdueLoanAmount: stats.TotalOverdueLoanAmount,
		TotalRepaidAmount:      stats.TotalRepaidAmount,
		TotalBalanceAmount:     stats.TotalBalanceAmount,
		OverdueRate:            stats.OverdueRate,
		CollectionRate:         stats.CollectionRate,
		DataSource:             snapshot.DataSource,
		LastSyncedAt:           snapshot.LastSyncedAt,
		LastUpdated:            snapshot.LastUpdated,
	}
	for _, loan := range snapshot.Loans {
		if timeutil.SameMonth(loan.DisbursementDate, now) {
			dashboard.LoansThisMonth++
		}
		if timeutil.SameMonth(loan.DueDate, now) {
			dashboard.DueThisMonth++
		}
	}

	if data, err := json.Marshal(dashboard); err == nil {
		cache.SetCached(ctx, cache.StockSummaryDashboard, data, s.DashboardTTL)
	}
	return dashboard, nil
}

// Reset deletes every stored snapshot
func (s *StockSummaryService) Reset(ctx context.Context) (int64, error) {
	deleted, err := s.Store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	cache.InvalidateStockSummaryCaches(ctx)
	recordLoanGauges(ComputeStats(nil))

	logger.Component("stock_summary_service").WithField("deleted", deleted).Info("stock summary reset")
	return deleted, nil
}

func (s *StockSummaryService) load(ctx context.Context) (*models.StockSummary, error) {
	snapshot, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (s *StockSummaryService) save(ctx context.Context, snapshot *models.StockSummary, now time.Time) error {
	snapshot.LastUpdated = now
	snapshot.DataVersion++
	if err := s.Store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save stock summary: %w", err)
	}
	recordLoanGauges(ComputeStats(snapshot.Loans))
	cache.InvalidateStockSummaryCaches(ctx)
	return nil
}

func findLoan(loans []models.DerivedLoan, id string) int {
	for i := range loans {
		if loans[i].ID == id || loans[i].VoucherID == id || loans[i].SourceID == id {
			return i
		}
	}
	return -1
}

func recordLoanGauges(stats *models.StockSummaryStats) {
	metrics.StockSummaryLoans.WithLabelValues(models.LoanStatusActive).Set(float64(stats.ActiveLoans))
	metrics.StockSummaryLoans.WithLabelValues(models.LoanStatusOverdue).Set(float64(stats.OverdueLoans))
	metrics.StockSummaryLoans.WithLabelValues(models.LoanStatusClosed).Set(float64(stats.ClosedLoans))
	metrics.StockSummaryLoans.WithLabelValues(models.LoanStatusInactive).Set(float64(stats.InactiveLoans))
}
