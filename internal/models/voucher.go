package models

import "time"

// Business-facing loan statuses
const (
	StatusActive  = "Active"
	StatusPartial = "Partial"
	StatusOverdue = "Overdue"
	StatusClosed  = "Closed"
)

// JewelryItem is one pledged article on a voucher
type JewelryItem struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Purity      string  `json:"purity,omitempty"`
	Quantity    int     `json:"quantity"`
	GrossWeight float64 `json:"grossWeight"`
	NetWeight   float64 `json:"netWeight"`
	Description string  `json:"description,omitempty"`
}

// VoucherCustomer is the customer row joined to a voucher.
// Nil on the voucher when the reference does not resolve.
type VoucherCustomer struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Voucher struct {
	ID                int              `json:"id"`
	BillNo            string           `json:"billNo"`
	CustomerID        *int             `json:"customerId"`
	CustomerName      string           `json:"customerName"`    // local copy
	CustomerPhone     string           `json:"customerPhone"`   // local copy
	CustomerAddress   string           `json:"customerAddress"` // local copy
	Customer          *VoucherCustomer `json:"customer,omitempty"`
	JewelType         string           `json:"jewelType"`
	GrossWeight       float64          `json:"grossWeight"`
	NetWeight         float64          `json:"netWeight"`
	JewelryItems      []JewelryItem    `json:"jewelryItems"`
	LoanAmount        float64          `json:"loanAmount"`
	FinalLoanAmount   float64          `json:"finalLoanAmount"`
	OverallLoanAmount float64          `json:"overallLoanAmount"`
	InterestRate      float64          `json:"interestRate"`
	InterestAmount    float64          `json:"interestAmount"`
	RepaidAmount      float64          `json:"repaidAmount"`
	BalanceAmount     float64          `json:"balanceAmount"`
	PaymentProgress   float64          `json:"paymentProgress"`
	TotalInterestPaid float64          `json:"totalInterestPaid"`
	MonthsPaid        int              `json:"monthsPaid"`
	Date              time.Time        `json:"date"`
	DueDate           time.Time        `json:"dueDate"`
	ClosedDate        *time.Time       `json:"closedDate,omitempty"`
	LastPaymentDate   *time.Time       `json:"lastPaymentDate,omitempty"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// VoucherRequest is the body for creating or updating a voucher.
// Date defaults to the (possibly overridden) current date, DueDate to Date + 12 months.
type VoucherRequest struct {
	BillNo            string        `json:"billNo" validate:"required"`
	CustomerID        *int          `json:"customerId"`
	CustomerName      string        `json:"customerName"`
	CustomerPhone     string        `json:"customerPhone"`
	CustomerAddress   string        `json:"customerAddress"`
	JewelType         string        `json:"jewelType"`
	GrossWeight       float64       `json:"grossWeight" validate:"gte=0"`
	NetWeight         float64       `json:"netWeight" validate:"gte=0"`
	JewelryItems      []JewelryItem `json:"jewelryItems"`
	LoanAmount        float64       `json:"loanAmount" validate:"gte=0"`
	FinalLoanAmount   float64       `json:"finalLoanAmount" validate:"gte=0"`
	OverallLoanAmount float64       `json:"overallLoanAmount" validate:"gte=0"`
	InterestRate      float64       `json:"interestRate" validate:"gte=0"`
	InterestAmount    float64       `json:"interestAmount" validate:"gte=0"`
	RepaidAmount      float64       `json:"repaidAmount" validate:"gte=0"`
	BalanceAmount     float64       `json:"balanceAmount"`
	PaymentProgress   float64       `json:"paymentProgress" validate:"gte=0,lte=100"`
	TotalInterestPaid float64       `json:"totalInterestPaid" validate:"gte=0"`
	MonthsPaid        int           `json:"monthsPaid" validate:"gte=0"`
	Date              string        `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DueDate           string        `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Status            string        `json:"status" validate:"omitempty,oneof=Active Partial Overdue Closed"`
}
