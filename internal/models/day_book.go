package models

import "time"

// DayBookTransaction is a single loan event recorded in a day book.
// VoucherID references the voucher the event belonged to.
type DayBookTransaction struct {
	VoucherID        string     `json:"voucherId"`
	BillNo           string     `json:"billNo"`
	CustomerID       string     `json:"customerId"`
	CustomerName     string     `json:"customerName"`
	CustomerPhone    string     `json:"customerPhone"`
	CustomerAddress  string     `json:"customerAddress"`
	JewelType        string     `json:"jewelType"`
	GrossWeight      float64    `json:"grossWeight"`
	NetWeight        float64    `json:"netWeight"`
	Amount           float64    `json:"amount"`
	InterestRate     float64    `json:"interestRate"`
	DisbursementDate *time.Time `json:"disbursementDate,omitempty"`
}

// DayBook is the daily ledger used before vouchers existed
type DayBook struct {
	ID             int                  `json:"id"`
	Date           time.Time            `json:"date"`
	OpeningBalance float64              `json:"openingBalance"`
	ClosingBalance float64              `json:"closingBalance"`
	LoansDisbursed []DayBookTransaction `json:"loansDisbursed"`
	ClosedLoans    []DayBookTransaction `json:"closedLoans"`
	Notes          string               `json:"notes"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// CreateDayBookRequest is used when recording a day book
type CreateDayBookRequest struct {
	Date           string               `json:"date" validate:"required,datetime=2006-01-02"`
	OpeningBalance float64              `json:"openingBalance"`
	ClosingBalance float64              `json:"closingBalance"`
	LoansDisbursed []DayBookTransaction `json:"loansDisbursed"`
	ClosedLoans    []DayBookTransaction `json:"closedLoans"`
	Notes          string               `json:"notes"`
}

// DayBookFilter is used for listing day books
type DayBookFilter struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
