package services

import (
	"context"
	"time"

	"pawn-backend/internal/models"
	"pawn-backend/internal/repositories"
	"pawn-backend/internal/timeutil"
)

// voucherTermMonths is the default loan term when no due date is given
const voucherTermMonths = 12

type VoucherService struct {
	Repo  *repositories.VoucherRepository
	Clock Clock
}

func NewVoucherService(repo *repositories.VoucherRepository, clock Clock) *VoucherService {
	return &VoucherService{Repo: repo, Clock: clock}
}

func (s *VoucherService) CreateVoucher(ctx context.Context, req *models.VoucherRequest) (*models.Voucher, error) {
	v, err := s.buildVoucher(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, v.ID)
}

func (s *VoucherService) GetVoucher(ctx context.Context, id int) (*models.Voucher, error) {
	return s.Repo.Get(ctx, id)
}

func (s *VoucherService) ListVouchers(ctx context.Context) ([]*models.Voucher, error) {
	return s.Repo.ListWithCustomers(ctx)
}

func (s *VoucherService) UpdateVoucher(ctx context.Context, id int, req *models.VoucherRequest) (*models.Voucher, error) {
	v, err := s.buildVoucher(ctx, req)
	if err != nil {
		return nil, err
	}
	v.ID = id
	if err := s.Repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *VoucherService) DeleteVoucher(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

// buildVoucher validates req and fills defaults: date from the clock,
// due date one term later, status Active.
func (s *VoucherService) buildVoucher(ctx context.Context, req *models.VoucherRequest) (*models.Voucher, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return VoucherFromRequest(req, s.Clock.Now(ctx))
}

// VoucherFromRequest converts a validated request. now is used when no date is given.
func VoucherFromRequest(req *models.VoucherRequest, now time.Time) (*models.Voucher, error) {
	date := now
	if req.Date != "" {
		d, err := timeutil.ParseDate(req.Date)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"Date": "datetime"}}
		}
		date = d
	}

	due := date.AddDate(0, voucherTermMonths, 0)
	if req.DueDate != "" {
		d, err := timeutil.ParseDate(req.DueDate)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"DueDate": "datetime"}}
		}
		due = d
	}

	v := &models.Voucher{
		BillNo:            req.BillNo,
		CustomerID:        req.CustomerID,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		CustomerAddress:   req.CustomerAddress,
		JewelType:         orDefault(req.JewelType, defaultJewelType),
		GrossWeight:       req.GrossWeight,
		NetWeight:         req.NetWeight,
		JewelryItems:      req.JewelryItems,
		LoanAmount:        req.LoanAmount,
		FinalLoanAmount:   req.FinalLoanAmount,
		OverallLoanAmount: req.OverallLoanAmount,
		InterestRate:      req.InterestRate,
		InterestAmount:    req.InterestAmount,
		RepaidAmount:      req.RepaidAmount,
		BalanceAmount:     req.BalanceAmount,
		PaymentProgress:   req.PaymentProgress,
		TotalInterestPaid: req.TotalInterestPaid,
		MonthsPaid:        req.MonthsPaid,
		Date:              date,
		DueDate:           due,
		Status:            orDefault(req.Status, models.StatusActive),
	}
	if v.Status == models.StatusClosed {
		closed := now
		v.ClosedDate = &closed
	}
	return v, nil
}
