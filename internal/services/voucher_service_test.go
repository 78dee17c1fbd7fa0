package services

import (
	"testing"
	"time"

	"pawn-backend/internal/models"
	"pawn-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherFromRequestDefaults(t *testing.T) {
	v, err := VoucherFromRequest(&models.VoucherRequest{BillNo: "GL-100", LoanAmount: 5000}, testNow)
	require.NoError(t, err)

	assert.True(t, v.Date.Equal(testNow), "date defaults to the clock")
	assert.True(t, v.DueDate.Equal(testNow.AddDate(0, 12, 0)))
	assert.Equal(t, models.StatusActive, v.Status)
	assert.Equal(t, "gold", v.JewelType)
	assert.Nil(t, v.ClosedDate)
}

func TestVoucherFromRequestExplicitDates(t *testing.T) {
	v, err := VoucherFromRequest(&models.VoucherRequest{
		BillNo: "GL-101", Date: "2024-01-10", DueDate: "2024-07-10", Status: models.StatusClosed,
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-10", timeutil.FormatIST(v.Date, timeutil.DateLayout))
	assert.Equal(t, time.July, v.DueDate.Month())
	require.NotNil(t, v.ClosedDate)
	assert.True(t, v.ClosedDate.Equal(testNow))
}

func TestVoucherFromRequestBadDate(t *testing.T) {
	_, err := VoucherFromRequest(&models.VoucherRequest{BillNo: "GL-102", Date: "10/01/2024"}, testNow)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestVoucherRequestValidation(t *testing.T) {
	err := validateStruct(&models.VoucherRequest{LoanAmount: -1, Status: "Lost"})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve.Fields["BillNo"])
	assert.Equal(t, "gte", ve.Fields["LoanAmount"])
	assert.Equal(t, "oneof", ve.Fields["Status"])
}
