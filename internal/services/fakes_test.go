package services

import (
	"context"
	"encoding/json"
	"time"

	"pawn-backend/internal/models"
	"pawn-backend/internal/repositories"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now(ctx context.Context) time.Time {
	return c.now
}

// memoryStore keeps the snapshot as JSON so tests see what a real round trip would
type memoryStore struct {
	data       []byte
	saves      int
	replaces   int
	loadErr    error
	replaceErr error
	saveErr    error
}

func (m *memoryStore) Load(ctx context.Context) (*models.StockSummary, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.data == nil {
		return nil, nil
	}
	var s models.StockSummary
	if err := json.Unmarshal(m.data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *memoryStore) Replace(ctx context.Context, s *models.StockSummary) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaces++
	return m.put(s)
}

func (m *memoryStore) Save(ctx context.Context, s *models.StockSummary) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	return m.put(s)
}

func (m *memoryStore) DeleteAll(ctx context.Context) (int64, error) {
	if m.data == nil {
		return 0, nil
	}
	m.data = nil
	return 1, nil
}

func (m *memoryStore) put(s *models.StockSummary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

type fakeVouchers struct {
	vouchers []*models.Voucher
	err      error
	calls    int
}

func (f *fakeVouchers) ListWithCustomers(ctx context.Context) ([]*models.Voucher, error) {
	f.calls++
	return f.vouchers, f.err
}

type fakeDayBooks struct {
	books []*models.DayBook
	err   error
	calls int
}

func (f *fakeDayBooks) ListByDateDesc(ctx context.Context) ([]*models.DayBook, error) {
	f.calls++
	return f.books, f.err
}

type fakeSettings struct {
	values  map[string]string
	getErr  error
	upserts int
}

func (f *fakeSettings) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &models.SystemSetting{SettingKey: key, SettingValue: v}, nil
}

func (f *fakeSettings) List(ctx context.Context) ([]*models.SystemSetting, error) {
	var out []*models.SystemSetting
	for k, v := range f.values {
		out = append(out, &models.SystemSetting{SettingKey: k, SettingValue: v})
	}
	return out, nil
}

func (f *fakeSettings) Upsert(ctx context.Context, key, value, description string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	f.upserts++
	return nil
}

func voucher(id int, billNo, status, jewelType string, date, due time.Time, amount float64) *models.Voucher {
	return &models.Voucher{
		ID:                id,
		BillNo:            billNo,
		JewelType:         jewelType,
		LoanAmount:        amount,
		FinalLoanAmount:   amount,
		OverallLoanAmount: amount,
		BalanceAmount:     amount,
		NetWeight:         10,
		Date:              date,
		DueDate:           due,
		Status:            status,
	}
}
