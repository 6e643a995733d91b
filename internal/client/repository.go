package client

import (
	"context"
	"database/sql"
	"errors"

	"invoice-desk/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByName(ctx context.Context, name string) (*Client, error)
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectClient = `
	SELECT id, name, address, email, phone, created_at, updated_at
	FROM clients
`

func scanClient(row interface{ Scan(...any) error }) (*Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]*Client, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Client"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx, selectClient+` ORDER BY name ASC`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	res := []*Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, c)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Client"),
		zap.String("method", "GetByID"),
		zap.String("client_id", id.String()),
	)

	c, err := scanClient(r.db.QueryRowContext(ctx, selectClient+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return c, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*Client, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Client"),
		zap.String("method", "FindByName"),
	)

	c, err := scanClient(r.db.QueryRowContext(ctx,
		selectClient+` WHERE lower(name) = lower($1) LIMIT 1`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return c, nil
}

func (r *repository) Create(ctx context.Context, c *Client) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Client"),
		zap.String("method", "Create"),
		zap.String("client_id", c.ID.String()),
	)

	const q = `
		INSERT INTO clients (id, name, address, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, q,
		c.ID, c.Name, c.Address, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Client"),
		zap.String("method", "Update"),
		zap.String("client_id", c.ID.String()),
	)

	const q = `
		UPDATE clients
		SET name = $2, address = $3, email = $4, phone = $5, updated_at = $6
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.Address, c.Email, c.Phone, c.UpdatedAt)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}

	return requireAffected(res)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Client"),
		zap.String("method", "Delete"),
		zap.String("client_id", id.String()),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		log.Error("delete failed", zap.Error(err))
		return err
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrClientNotFound
	}
	return nil
}
