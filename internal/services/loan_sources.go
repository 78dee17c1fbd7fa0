package services

import (
	"context"
	"math"
	"strconv"
	"time"

	"pawn-backend/internal/models"

	"github.com/google/uuid"
)

// VoucherSource lists vouchers joined to their customers, newest first
type VoucherSource interface {
	ListWithCustomers(ctx context.Context) ([]*models.Voucher, error)
}

// DayBookSource lists day books, newest first
type DayBookSource interface {
	ListByDateDesc(ctx context.Context) ([]*models.DayBook, error)
}

const (
	defaultJewelType     = "gold"
	unknownCustomerID    = "unknown"
	unknownCustomerName  = "Unknown"
	unavailableFieldText = "N/A"

	// day-book loans carry no due date of their own
	dayBookLoanTermMonths = 12
)

// IsOverdue reports whether a loan with the given status and due date is past due at now
func IsOverdue(status string, dueDate, now time.Time) bool {
	return dueDate.Before(now) && status != models.StatusClosed
}

// DaysOverdue is the number of started days since dueDate, 0 when not yet due
func DaysOverdue(dueDate, now time.Time) int {
	if !dueDate.Before(now) {
		return 0
	}
	return int(math.Ceil(now.Sub(dueDate).Hours() / 24))
}

// ClassifyLoan derives loanStatus from the business status at now.
// First match wins: overdue, closed, active, inactive.
func ClassifyLoan(status string, dueDate, now time.Time) string {
	switch {
	case IsOverdue(status, dueDate, now):
		return models.LoanStatusOverdue
	case status == models.StatusClosed:
		return models.LoanStatusClosed
	case status == models.StatusActive || status == models.StatusPartial:
		return models.LoanStatusActive
	default:
		return models.LoanStatusInactive
	}
}

// LoansFromVouchers produces one derived loan per voucher, preserving input order
func LoansFromVouchers(vouchers []*models.Voucher, now time.Time) []models.DerivedLoan {
	loans := make([]models.DerivedLoan, 0, len(vouchers))
	for _, v := range vouchers {
		ref := strconv.Itoa(v.ID)
		loan := models.DerivedLoan{
			ID:                uuid.NewString(),
			BillNo:            v.BillNo,
			VoucherID:         ref,
			SourceID:          ref,
			SourceType:        models.LoanSourceVoucher,
			JewelType:         orDefault(v.JewelType, defaultJewelType),
			GrossWeight:       v.GrossWeight,
			NetWeight:         v.NetWeight,
			JewelryItems:      v.JewelryItems,
			LoanAmount:        v.LoanAmount,
			FinalLoanAmount:   v.FinalLoanAmount,
			OverallLoanAmount: v.OverallLoanAmount,
			InterestRate:      v.InterestRate,
			InterestAmount:    v.InterestAmount,
			RepaidAmount:      v.RepaidAmount,
			BalanceAmount:     v.BalanceAmount,
			PaymentProgress:   v.PaymentProgress,
			TotalInterestPaid: v.TotalInterestPaid,
			MonthsPaid:        v.MonthsPaid,
			DisbursementDate:  v.Date,
			DueDate:           v.DueDate,
			ClosedDate:        v.ClosedDate,
			LastPaymentDate:   v.LastPaymentDate,
			Status:            v.Status,
		}
		if loan.JewelryItems == nil {
			loan.JewelryItems = []models.JewelryItem{}
		}

		loan.CustomerID, loan.CustomerName, loan.CustomerPhone, loan.CustomerAddress = voucherCustomer(v)

		loan.LoanStatus = ClassifyLoan(v.Status, v.DueDate, now)
		if loan.LoanStatus == models.LoanStatusOverdue {
			loan.Status = models.StatusOverdue
			loan.DaysOverdue = DaysOverdue(v.DueDate, now)
		}

		loans = append(loans, loan)
	}
	return loans
}

// voucherCustomer resolves customer fields: joined record, then the voucher's own copies, then sentinels
func voucherCustomer(v *models.Voucher) (id, name, phone, address string) {
	var c models.VoucherCustomer
	if v.Customer != nil {
		c = *v.Customer
		id = strconv.Itoa(c.ID)
	} else if v.CustomerID != nil {
		id = strconv.Itoa(*v.CustomerID)
	}

	id = orDefault(id, unknownCustomerID)
	name = firstNonEmpty(c.Name, v.CustomerName, unknownCustomerName)
	phone = firstNonEmpty(c.Phone, v.CustomerPhone, unavailableFieldText)
	address = firstNonEmpty(c.Address, v.CustomerAddress, unavailableFieldText)
	return id, name, phone, address
}

// LoansFromDayBooks produces one derived loan per qualifying transaction.
// Disbursed and closed lists are not reconciled against each other.
func LoansFromDayBooks(books []*models.DayBook, now time.Time) []models.DerivedLoan {
	var loans []models.DerivedLoan
	for _, book := range books {
		for _, tx := range book.LoansDisbursed {
			if !qualifies(tx) {
				continue
			}
			loan := dayBookLoan(book, tx)
			loan.Status = models.StatusActive
			loan.BalanceAmount = tx.Amount
			if IsOverdue(loan.Status, loan.DueDate, now) {
				loan.Status = models.StatusOverdue
				loan.LoanStatus = models.LoanStatusOverdue
				loan.DaysOverdue = DaysOverdue(loan.DueDate, now)
			} else {
				loan.LoanStatus = models.LoanStatusActive
			}
			loans = append(loans, loan)
		}

		for _, tx := range book.ClosedLoans {
			if !qualifies(tx) {
				continue
			}
			loan := dayBookLoan(book, tx)
			closed := book.Date
			loan.Status = models.StatusClosed
			loan.LoanStatus = models.LoanStatusClosed
			loan.RepaidAmount = tx.Amount
			loan.BalanceAmount = 0
			loan.PaymentProgress = 100
			loan.ClosedDate = &closed
			loans = append(loans, loan)
		}
	}
	if loans == nil {
		loans = []models.DerivedLoan{}
	}
	return loans
}

func qualifies(tx models.DayBookTransaction) bool {
	return tx.VoucherID != "" && tx.BillNo != ""
}

func dayBookLoan(book *models.DayBook, tx models.DayBookTransaction) models.DerivedLoan {
	disbursed := book.Date
	if tx.DisbursementDate != nil {
		disbursed = *tx.DisbursementDate
	}

	return models.DerivedLoan{
		ID:                uuid.NewString(),
		BillNo:            tx.BillNo,
		VoucherID:         tx.VoucherID,
		SourceID:          tx.VoucherID,
		SourceType:        models.LoanSourceDayBook,
		CustomerID:        orDefault(tx.CustomerID, unknownCustomerID),
		CustomerName:      orDefault(tx.CustomerName, unknownCustomerName),
		CustomerPhone:     orDefault(tx.CustomerPhone, unavailableFieldText),
		CustomerAddress:   orDefault(tx.CustomerAddress, unavailableFieldText),
		JewelType:         orDefault(tx.JewelType, defaultJewelType),
		GrossWeight:       tx.GrossWeight,
		NetWeight:         tx.NetWeight,
		JewelryItems:      []models.JewelryItem{},
		LoanAmount:        tx.Amount,
		FinalLoanAmount:   tx.Amount,
		OverallLoanAmount: tx.Amount,
		InterestRate:      tx.InterestRate,
		DisbursementDate:  disbursed,
		DueDate:           disbursed.AddDate(0, dayBookLoanTermMonths, 0),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
