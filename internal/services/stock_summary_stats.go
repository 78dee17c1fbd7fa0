package services

import (
	"pawn-backend/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeStats aggregates a loan slice. Amounts are summed as decimals so
// that totals over many rupee-paisa values do not drift.
func ComputeStats(loans []models.DerivedLoan) *models.StockSummaryStats {
	stats := &models.StockSummaryStats{
		JewelTypeSummary: make(map[string]*models.JewelTypeStats),
	}

	var total, active, overdue, repaid, balance, overall decimal.Decimal
	jewelAmounts := make(map[string]decimal.Decimal)
	jewelWeights := make(map[string]decimal.Decimal)

	for i := range loans {
		loan := &loans[i]
		amount := decimal.NewFromFloat(loan.LoanAmount)

		total = total.Add(amount)
		repaid = repaid.Add(decimal.NewFromFloat(loan.RepaidAmount))
		balance = balance.Add(decimal.NewFromFloat(loan.BalanceAmount))
		overall = overall.Add(decimal.NewFromFloat(loan.OverallLoanAmount))

		jt, ok := stats.JewelTypeSummary[loan.JewelType]
		if !ok {
			jt = &models.JewelTypeStats{}
			stats.JewelTypeSummary[loan.JewelType] = jt
		}
		jt.Count++
		jewelAmounts[loan.JewelType] = jewelAmounts[loan.JewelType].Add(amount)
		jewelWeights[loan.JewelType] = jewelWeights[loan.JewelType].Add(decimal.NewFromFloat(loan.NetWeight))

		switch loan.LoanStatus {
		case models.LoanStatusActive:
			stats.ActiveLoans++
			jt.ActiveCount++
			active = active.Add(amount)
		case models.LoanStatusOverdue:
			stats.OverdueLoans++
			jt.OverdueCount++
			overdue = overdue.Add(amount)
		case models.LoanStatusClosed:
			stats.ClosedLoans++
			jt.ClosedCount++
		default:
			stats.InactiveLoans++
		}
	}

	for name, jt := range stats.JewelTypeSummary {
		jt.TotalAmount = jewelAmounts[name].InexactFloat64()
		jt.TotalNetWeight = jewelWeights[name].InexactFloat64()
	}

	stats.TotalLoans = len(loans)
	stats.RecordCount = len(loans)
	stats.TotalLoanAmount = total.InexactFloat64()
	stats.TotalActiveLoanAmount = active.InexactFloat64()
	stats.TotalOverdueLoanAmount = overdue.InexactFloat64()
	stats.TotalRepaidAmount = repaid.InexactFloat64()
	stats.TotalBalanceAmount = balance.InexactFloat64()

	if len(loans) > 0 {
		count := decimal.NewFromInt(int64(len(loans)))
		stats.AverageLoanAmount = total.Div(count).Round(2).InexactFloat64()
		stats.OverdueRate = decimal.NewFromInt(int64(stats.OverdueLoans)).
			Mul(hundred).Div(count).Round(2).InexactFloat64()
	}
	if overall.IsPositive() {
		stats.CollectionRate = repaid.Mul(hundred).Div(overall).Round(2).InexactFloat64()
	}

	return stats
}
