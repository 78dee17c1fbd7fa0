package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pawn-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VoucherRepository struct {
	DB *pgxpool.Pool
}

func NewVoucherRepository(db *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{DB: db}
}

// voucherSelect joins the customer so readers get the resolved record and the local copies together
const voucherSelect = `
	SELECT v.id, v.bill_no, v.customer_id,
		COALESCE(v.customer_name, ''), COALESCE(v.customer_phone, ''), COALESCE(v.customer_address, ''),
		c.id, COALESCE(c.name, ''), COALESCE(c.phone, ''), COALESCE(c.address, ''),
		COALESCE(v.jewel_type, ''), COALESCE(v.gross_weight, 0)::float8, COALESCE(v.net_weight, 0)::float8,
		COALESCE(v.jewelry_items, '[]'::jsonb),
		COALESCE(v.loan_amount, 0)::float8, COALESCE(v.final_loan_amount, 0)::float8,
		COALESCE(v.overall_loan_amount, 0)::float8, COALESCE(v.interest_rate, 0)::float8,
		COALESCE(v.interest_amount, 0)::float8, COALESCE(v.repaid_amount, 0)::float8,
		COALESCE(v.balance_amount, 0)::float8, COALESCE(v.payment_progress, 0)::float8,
		COALESCE(v.total_interest_paid, 0)::float8, COALESCE(v.months_paid, 0),
		v.date, v.due_date, v.closed_date, v.last_payment_date, v.status,
		v.created_at, v.updated_at
	FROM vouchers v
	LEFT JOIN customers c ON c.id = v.customer_id
`

func scanVoucher(row pgx.Row) (*models.Voucher, error) {
	var v models.Voucher
	var items []byte
	var custID *int
	var custName, custPhone, custAddress string

	err := row.Scan(
		&v.ID, &v.BillNo, &v.CustomerID,
		&v.CustomerName, &v.CustomerPhone, &v.CustomerAddress,
		&custID, &custName, &custPhone, &custAddress,
		&v.JewelType, &v.GrossWeight, &v.NetWeight,
		&items,
		&v.LoanAmount, &v.FinalLoanAmount,
		&v.OverallLoanAmount, &v.InterestRate,
		&v.InterestAmount, &v.RepaidAmount,
		&v.BalanceAmount, &v.PaymentProgress,
		&v.TotalInterestPaid, &v.MonthsPaid,
		&v.Date, &v.DueDate, &v.ClosedDate, &v.LastPaymentDate, &v.Status,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if custID != nil {
		v.Customer = &models.VoucherCustomer{ID: *custID, Name: custName, Phone: custPhone, Address: custAddress}
	}
	if err := json.Unmarshal(items, &v.JewelryItems); err != nil {
		return nil, fmt.Errorf("voucher %s: jewelry_items: %w", v.BillNo, err)
	}
	return &v, nil
}

func marshalItems(items []models.JewelryItem) ([]byte, error) {
	if items == nil {
		items = []models.JewelryItem{}
	}
	return json.Marshal(items)
}

func (r *VoucherRepository) Create(ctx context.Context, v *models.Voucher) error {
	items, err := marshalItems(v.JewelryItems)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO vouchers (bill_no, customer_id, customer_name, customer_phone, customer_address,
			jewel_type, gross_weight, net_weight, jewelry_items,
			loan_amount, final_loan_amount, overall_loan_amount, interest_rate, interest_amount,
			repaid_amount, balance_amount, payment_progress, total_interest_paid, months_paid,
			date, due_date, closed_date, last_payment_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id, created_at, updated_at
	`
	err = r.DB.QueryRow(ctx, query, voucherArgs(v, items)...).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create voucher: %w", err)
	}
	return nil
}

// Upsert inserts or updates by bill number, the voucher's natural key
func (r *VoucherRepository) Upsert(ctx context.Context, v *models.Voucher) error {
	items, err := marshalItems(v.JewelryItems)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO vouchers (bill_no, customer_id, customer_name, customer_phone, customer_address,
			jewel_type, gross_weight, net_weight, jewelry_items,
			loan_amount, final_loan_amount, overall_loan_amount, interest_rate, interest_amount,
			repaid_amount, balance_amount, payment_progress, total_interest_paid, months_paid,
			date, due_date, closed_date, last_payment_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (bill_no) DO UPDATE SET
			customer_id = EXCLUDED.customer_id, customer_name = EXCLUDED.customer_name,
			customer_phone = EXCLUDED.customer_phone, customer_address = EXCLUDED.customer_address,
			jewel_type = EXCLUDED.jewel_type, gross_weight = EXCLUDED.gross_weight,
			net_weight = EXCLUDED.net_weight, jewelry_items = EXCLUDED.jewelry_items,
			loan_amount = EXCLUDED.loan_amount, final_loan_amount = EXCLUDED.final_loan_amount,
			overall_loan_amount = EXCLUDED.overall_loan_amount, interest_rate = EXCLUDED.interest_rate,
			interest_amount = EXCLUDED.interest_amount, repaid_amount = EXCLUDED.repaid_amount,
			balance_amount = EXCLUDED.balance_amount, payment_progress = EXCLUDED.payment_progress,
			total_interest_paid = EXCLUDED.total_interest_paid, months_paid = EXCLUDED.months_paid,
			date = EXCLUDED.date, due_date = EXCLUDED.due_date, closed_date = EXCLUDED.closed_date,
			last_payment_date = EXCLUDED.last_payment_date, status = EXCLUDED.status,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`
	err = r.DB.QueryRow(ctx, query, voucherArgs(v, items)...).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert voucher %s: %w", v.BillNo, err)
	}
	return nil
}

func voucherArgs(v *models.Voucher, items []byte) []interface{} {
	return []interface{}{
		v.BillNo, v.CustomerID, v.CustomerName, v.CustomerPhone, v.CustomerAddress,
		v.JewelType, v.GrossWeight, v.NetWeight, items,
		v.LoanAmount, v.FinalLoanAmount, v.OverallLoanAmount, v.InterestRate, v.InterestAmount,
		v.RepaidAmount, v.BalanceAmount, v.PaymentProgress, v.TotalInterestPaid, v.MonthsPaid,
		v.Date, v.DueDate, v.ClosedDate, v.LastPaymentDate, v.Status,
	}
}

func (r *VoucherRepository) Get(ctx context.Context, id int) (*models.Voucher, error) {
	v, err := scanVoucher(r.DB.QueryRow(ctx, voucherSelect+` WHERE v.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

// ListWithCustomers returns every voucher joined to its customer,
// newest disbursement first, ties broken by creation time.
func (r *VoucherRepository) ListWithCustomers(ctx context.Context) ([]*models.Voucher, error) {
	rows, err := r.DB.Query(ctx, voucherSelect+` ORDER BY v.date DESC, v.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []*models.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

func (r *VoucherRepository) Update(ctx context.Context, v *models.Voucher) error {
	items, err := marshalItems(v.JewelryItems)
	if err != nil {
		return err
	}

	query := `
		UPDATE vouchers SET bill_no=$1, customer_id=$2, customer_name=$3, customer_phone=$4,
			customer_address=$5, jewel_type=$6, gross_weight=$7, net_weight=$8, jewelry_items=$9,
			loan_amount=$10, final_loan_amount=$11, overall_loan_amount=$12, interest_rate=$13,
			interest_amount=$14, repaid_amount=$15, balance_amount=$16, payment_progress=$17,
			total_interest_paid=$18, months_paid=$19, date=$20, due_date=$21, closed_date=$22,
			last_payment_date=$23, status=$24, updated_at=CURRENT_TIMESTAMP
		WHERE id=$25
	`
	args := append(voucherArgs(v, items), v.ID)
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update voucher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VoucherRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM vouchers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
