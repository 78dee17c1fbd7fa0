package models

import "time"

// LoanSourceType tells which collection a derived loan was extracted from
type LoanSourceType string

const (
	LoanSourceVoucher LoanSourceType = "voucher"
	LoanSourceDayBook LoanSourceType = "daybook"
)

// Data sources reported by sync and query responses
const (
	DataSourceVouchers = "vouchers"
	DataSourceDayBooks = "daybooks"
	DataSourceNone     = "none"
)

// Machine-filterable loan classification (loanStatus)
const (
	LoanStatusActive   = "active"
	LoanStatusOverdue  = "overdue"
	LoanStatusClosed   = "closed"
	LoanStatusInactive = "inactive"
)

const SyncStatusSynced = "synced"

// DerivedLoan is one normalized loan in the stock summary snapshot.
// Customer fields are copied at sync time and are not kept in step with the customer record.
type DerivedLoan struct {
	ID         string         `json:"id"`
	BillNo     string         `json:"billNo"`
	VoucherID  string         `json:"voucherId"`
	SourceID   string         `json:"sourceId"`
	SourceType LoanSourceType `json:"sourceType"`

	CustomerID      string `json:"customerId"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`

	JewelType    string        `json:"jewelType"`
	GrossWeight  float64       `json:"grossWeight"`
	NetWeight    float64       `json:"netWeight"`
	JewelryItems []JewelryItem `json:"jewelryItems"`

	LoanAmount        float64 `json:"loanAmount"`
	FinalLoanAmount   float64 `json:"finalLoanAmount"`
	OverallLoanAmount float64 `json:"overallLoanAmount"`
	InterestRate      float64 `json:"interestRate"`
	InterestAmount    float64 `json:"interestAmount"`
	RepaidAmount      float64 `json:"repaidAmount"`
	BalanceAmount     float64 `json:"balanceAmount"`
	PaymentProgress   float64 `json:"paymentProgress"`
	TotalInterestPaid float64 `json:"totalInterestPaid"`
	MonthsPaid        int     `json:"monthsPaid"`

	DisbursementDate time.Time  `json:"disbursementDate"`
	DueDate          time.Time  `json:"dueDate"`
	ClosedDate       *time.Time `json:"closedDate,omitempty"`
	LastPaymentDate  *time.Time `json:"lastPaymentDate,omitempty"`

	Status      string `json:"status"`
	LoanStatus  string `json:"loanStatus"`
	DaysOverdue int    `json:"daysOverdue"`
}

// StockSummary is the persisted snapshot. Aggregates are never stored;
// see StockSummaryStats.
type StockSummary struct {
	ID           string        `json:"id"`
	Loans        []DerivedLoan `json:"loans"`
	DataSource   string        `json:"dataSource"`
	LastSyncedAt time.Time     `json:"lastSyncedAt"`
	LastUpdated  time.Time     `json:"lastUpdated"`
	SyncStatus   string        `json:"syncStatus"`
	DataVersion  int           `json:"dataVersion"`
}

// JewelTypeStats is the per-jewel-type breakdown
type JewelTypeStats struct {
	Count          int     `json:"count"`
	ActiveCount    int     `json:"activeCount"`
	OverdueCount   int     `json:"overdueCount"`
	ClosedCount    int     `json:"closedCount"`
	TotalAmount    float64 `json:"totalAmount"`
	TotalNetWeight float64 `json:"totalNetWeight"`
}

// StockSummaryStats is computed from a loan slice on every read
type StockSummaryStats struct {
	TotalLoans             int                        `json:"totalLoans"`
	ActiveLoans            int                        `json:"activeLoans"`
	OverdueLoans           int                        `json:"overdueLoans"`
	ClosedLoans            int                        `json:"closedLoans"`
	InactiveLoans          int                        `json:"inactiveLoans"`
	TotalLoanAmount        float64                    `json:"totalLoanAmount"`
	TotalActiveLoanAmount  float64                    `json:"totalActiveLoanAmount"`
	TotalOverdueLoanAmount float64                    `json:"totalOverdueLoanAmount"`
	TotalRepaidAmount      float64                    `json:"totalRepaidAmount"`
	TotalBalanceAmount     float64                    `json:"totalBalanceAmount"`
	AverageLoanAmount      float64                    `json:"averageLoanAmount"`
	OverdueRate            float64                    `json:"overdueRate"`
	CollectionRate         float64                    `json:"collectionRate"`
	JewelTypeSummary       map[string]*JewelTypeStats `json:"jewelTypeSummary"`
	RecordCount            int                        `json:"recordCount"`
}

// StockSummaryFilter holds the optional query predicates; empty or "all" disables one
type StockSummaryFilter struct {
	Search          string `json:"search"`
	DateFilter      string `json:"dateFilter"`
	StatusFilter    string `json:"statusFilter"`
	JewelTypeFilter string `json:"jewelTypeFilter"`
}

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// StockSummaryQueryResult is the response of the filtered query
type StockSummaryQueryResult struct {
	Data             []DerivedLoan              `json:"data"`
	Pagination       Pagination                 `json:"pagination"`
	Summary          *StockSummaryStats         `json:"summary"`
	JewelTypeSummary map[string]*JewelTypeStats `json:"jewelTypeSummary"`
	OverallSummary   *StockSummaryStats         `json:"overallSummary"`
	DataSource       string                     `json:"dataSource"`
	LastSyncedAt     *time.Time                 `json:"lastSyncedAt,omitempty"`
}

// SyncResult reports what a synchronization produced
type SyncResult struct {
	TotalLoans   int       `json:"totalLoans"`
	ActiveLoans  int       `json:"activeLoans"`
	OverdueLoans int       `json:"overdueLoans"`
	ClosedLoans  int       `json:"closedLoans"`
	DataSource   string    `json:"dataSource"`
	LastSyncedAt time.Time `json:"lastSyncedAt"`
}

// DashboardStats is the read-only dashboard projection
type DashboardStats struct {
	TotalLoans             int       `json:"totalLoans"`
	ActiveLoans            int       `json:"activeLoans"`
	OverdueLoans           int       `json:"overdueLoans"`
	ClosedLoans            int       `json:"closedLoans"`
	TotalLoanAmount        float64   `json:"totalLoanAmount"`
	TotalActiveLoanAmount  float64   `json:"totalActiveLoanAmount"`
	TotalOverdueLoanAmount float64   `json:"totalOverdueLoanAmount"`
	TotalRepaidAmount      float64   `json:"totalRepaidAmount"`
	TotalBalanceAmount     float64   `json:"totalBalanceAmount"`
	OverdueRate            float64   `json:"overdueRate"`
	CollectionRate         float64   `json:"collectionRate"`
	LoansThisMonth         int       `json:"loansThisMonth"`
	DueThisMonth           int       `json:"dueThisMonth"`
	DataSource             string    `json:"dataSource"`
	LastSyncedAt           time.Time `json:"lastSyncedAt"`
	LastUpdated            time.Time `json:"lastUpdated"`
}

// UpdateLoanStatusRequest is the body of PUT /api/stock-summary/{id}/status
type UpdateLoanStatusRequest struct {
	Status string `json:"status"`
}
