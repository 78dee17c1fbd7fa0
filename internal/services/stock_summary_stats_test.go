package services

import (
	"testing"

	"pawn-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	loans := []models.DerivedLoan{
		{JewelType: "gold", LoanStatus: models.LoanStatusActive, LoanAmount: 10000.10, OverallLoanAmount: 11000, RepaidAmount: 1000, BalanceAmount: 10000, NetWeight: 12.5},
		{JewelType: "gold", LoanStatus: models.LoanStatusOverdue, LoanAmount: 20000.20, OverallLoanAmount: 22000, RepaidAmount: 0, BalanceAmount: 22000, NetWeight: 20},
		{JewelType: "silver", LoanStatus: models.LoanStatusClosed, LoanAmount: 3000, OverallLoanAmount: 3300, RepaidAmount: 3300, BalanceAmount: 0, NetWeight: 100},
		{JewelType: "silver", LoanStatus: models.LoanStatusInactive, LoanAmount: 1000, OverallLoanAmount: 0, NetWeight: 5},
	}

	stats := ComputeStats(loans)

	assert.Equal(t, 4, stats.TotalLoans)
	assert.Equal(t, 4, stats.RecordCount)
	assert.Equal(t, 1, stats.ActiveLoans)
	assert.Equal(t, 1, stats.OverdueLoans)
	assert.Equal(t, 1, stats.ClosedLoans)
	assert.Equal(t, 1, stats.InactiveLoans)

	assert.Equal(t, 34000.30, stats.TotalLoanAmount)
	assert.Equal(t, 10000.10, stats.TotalActiveLoanAmount)
	assert.Equal(t, 20000.20, stats.TotalOverdueLoanAmount)
	assert.Equal(t, 4300.0, stats.TotalRepaidAmount)
	assert.Equal(t, 32000.0, stats.TotalBalanceAmount)
	assert.Equal(t, 8500.08, stats.AverageLoanAmount)
	assert.Equal(t, 25.0, stats.OverdueRate)
	// 4300 / 36300
	assert.Equal(t, 11.85, stats.CollectionRate)

	require.Contains(t, stats.JewelTypeSummary, "gold")
	gold := stats.JewelTypeSummary["gold"]
	assert.Equal(t, 2, gold.Count)
	assert.Equal(t, 1, gold.ActiveCount)
	assert.Equal(t, 1, gold.OverdueCount)
	assert.Equal(t, 30000.30, gold.TotalAmount)
	assert.Equal(t, 32.5, gold.TotalNetWeight)

	silver := stats.JewelTypeSummary["silver"]
	assert.Equal(t, 2, silver.Count)
	assert.Equal(t, 1, silver.ClosedCount)
	assert.Equal(t, 105.0, silver.TotalNetWeight)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Zero(t, stats.TotalLoans)
	assert.Zero(t, stats.AverageLoanAmount)
	assert.Zero(t, stats.OverdueRate)
	assert.Zero(t, stats.CollectionRate)
	assert.NotNil(t, stats.JewelTypeSummary)
	assert.Empty(t, stats.JewelTypeSummary)
}
