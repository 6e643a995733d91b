package invoice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"invoice-desk/internal/logger"
	"invoice-desk/internal/numbering"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	Create(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	LatestForPeriod(ctx context.Context, prefix string) (*numbering.Number, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectInvoice = `
	SELECT
		id, invoice_number, period_prefix, serial, invoice_date, client_id,
		bill_to_name, bill_to_address, bill_to_email, bill_to_phone,
		items, discount_percent, subtotal, discount_amount, total,
		notes, created_at, updated_at
	FROM invoices
`

func scanInvoice(row interface{ Scan(...any) error }) (*Invoice, error) {
	var (
		inv      Invoice
		clientID uuid.NullUUID
		items    []byte
	)

	err := row.Scan(
		&inv.ID, &inv.Number, &inv.PeriodPrefix, &inv.Serial, &inv.InvoiceDate, &clientID,
		&inv.BillTo.Name, &inv.BillTo.Address, &inv.BillTo.Email, &inv.BillTo.Phone,
		&items, &inv.DiscountPercent, &inv.Subtotal, &inv.DiscountAmount, &inv.Total,
		&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		id := clientID.UUID
		inv.ClientID = &id
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	return &inv, nil
}

func nullClientID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func (r *repository) List(ctx context.Context) ([]*Invoice, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Invoice"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx, selectInvoice+` ORDER BY created_at DESC`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	res := []*Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, inv)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Invoice"),
		zap.String("method", "GetByID"),
		zap.String("invoice_id", id.String()),
	)

	inv, err := scanInvoice(r.db.QueryRowContext(ctx, selectInvoice+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return inv, nil
}

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Invoice"),
		zap.String("method", "Create"),
		zap.String("invoice_number", inv.Number),
	)

	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	const q = `
		INSERT INTO invoices (
			id, invoice_number, period_prefix, serial, invoice_date, client_id,
			bill_to_name, bill_to_address, bill_to_email, bill_to_phone,
			items, discount_percent, subtotal, discount_amount, total,
			notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14, $15,
			$16, $17, $18
		)
	`

	_, err = r.db.ExecContext(ctx, q,
		inv.ID, inv.Number, inv.PeriodPrefix, inv.Serial, inv.InvoiceDate, nullClientID(inv.ClientID),
		inv.BillTo.Name, inv.BillTo.Address, inv.BillTo.Email, inv.BillTo.Phone,
		items, inv.DiscountPercent, inv.Subtotal, inv.DiscountAmount, inv.Total,
		inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			log.Warn("invoice number already taken")
			return fmt.Errorf("%w: %s", numbering.ErrDuplicateNumber, inv.Number)
		}
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

// Update rewrites the editable columns. The number, period and serial are
// never touched.
func (r *repository) Update(ctx context.Context, inv *Invoice) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Invoice"),
		zap.String("method", "Update"),
		zap.String("invoice_id", inv.ID.String()),
	)

	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	const q = `
		UPDATE invoices
		SET invoice_date = $2, client_id = $3,
		    bill_to_name = $4, bill_to_address = $5, bill_to_email = $6, bill_to_phone = $7,
		    items = $8, discount_percent = $9, subtotal = $10, discount_amount = $11, total = $12,
		    notes = $13, updated_at = $14
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, q,
		inv.ID, inv.InvoiceDate, nullClientID(inv.ClientID),
		inv.BillTo.Name, inv.BillTo.Address, inv.BillTo.Email, inv.BillTo.Phone,
		items, inv.DiscountPercent, inv.Subtotal, inv.DiscountAmount, inv.Total,
		inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}

	return requireAffected(res)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Invoice"),
		zap.String("method", "Delete"),
		zap.String("invoice_id", id.String()),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		log.Error("delete failed", zap.Error(err))
		return err
	}

	return requireAffected(res)
}

// LatestForPeriod returns the highest serial issued under prefix. Serials are
// compared as integers, so the result does not depend on zero padding.
func (r *repository) LatestForPeriod(ctx context.Context, prefix string) (*numbering.Number, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Invoice"),
		zap.String("method", "LatestForPeriod"),
		zap.String("period_prefix", prefix),
	)

	const q = `
		SELECT period_prefix, serial
		FROM invoices
		WHERE period_prefix = $1
		ORDER BY serial DESC
		LIMIT 1
	`

	var n numbering.Number
	err := r.db.QueryRowContext(ctx, q, prefix).Scan(&n.Prefix, &n.Serial)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return &n, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
