package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"invoice-desk/internal/client"
	"invoice-desk/internal/logger"
	"invoice-desk/internal/numbering"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Renderer turns an invoice into a downloadable document body.
type Renderer interface {
	Render(ctx context.Context, inv *Invoice) ([]byte, error)
}

type Service interface {
	NextNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, input Input) (*Invoice, error)
	List(ctx context.Context) ([]*Invoice, error)
	Get(ctx context.Context, id uuid.UUID) (*Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Render(ctx context.Context, id uuid.UUID) (*Document, error)
}

type service struct {
	repo     Repository
	seq      *numbering.Sequencer
	clients  client.Service
	renderer Renderer
	now      func() time.Time
}

type Option func(*service)

// WithClock sets the clock used for invoice dates. Pass the same clock to the
// sequencer so the number's period and the printed date agree.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(
	repo Repository,
	seq *numbering.Sequencer,
	clients client.Service,
	renderer Renderer,
	opts ...Option,
) Service {
	s := &service{
		repo:     repo,
		seq:      seq,
		clients:  clients,
		renderer: renderer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) NextNumber(ctx context.Context) (string, error) {
	n, err := s.seq.Peek(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to preview invoice number", zap.Error(err))
		return "", err
	}
	return n.String(), nil
}

func (s *service) Create(ctx context.Context, input Input) (*Invoice, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateInvoice"),
	)

	totals, err := ComputeTotals(input.Items, input.DiscountPercent)
	if err != nil {
		return nil, err
	}

	billTo, clientID, err := s.resolveBillTo(ctx, input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	inv := &Invoice{
		ID:              uuid.New(),
		InvoiceDate:     invoiceDate(input.InvoiceDate, now),
		ClientID:        clientID,
		BillTo:          billTo,
		Items:           totals.Items,
		DiscountPercent: input.DiscountPercent,
		Subtotal:        totals.Subtotal,
		DiscountAmount:  totals.DiscountAmount,
		Total:           totals.Total,
		Notes:           strings.TrimSpace(input.Notes),
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}

	_, err = s.seq.Next(ctx, func(ctx context.Context, n numbering.Number) error {
		inv.Number = n.String()
		inv.PeriodPrefix = n.Prefix
		inv.Serial = n.Serial
		return s.repo.Create(ctx, inv)
	})
	if err != nil {
		log.Error("failed to create invoice", zap.Error(err))
		return nil, err
	}

	log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.Number),
		zap.String("total", inv.Total.StringFixed(2)),
	)
	return inv, nil
}

func (s *service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the editable fields and recomputes totals. The invoice
// number assigned at creation is kept.
func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*Invoice, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateInvoice"),
		zap.String("invoice_id", id.String()),
	)

	totals, err := ComputeTotals(input.Items, input.DiscountPercent)
	if err != nil {
		return nil, err
	}

	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	billTo, clientID, err := s.resolveBillTo(ctx, input)
	if err != nil {
		return nil, err
	}

	inv.InvoiceDate = invoiceDate(input.InvoiceDate, inv.InvoiceDate)
	inv.ClientID = clientID
	inv.BillTo = billTo
	inv.Items = totals.Items
	inv.DiscountPercent = input.DiscountPercent
	inv.Subtotal = totals.Subtotal
	inv.DiscountAmount = totals.DiscountAmount
	inv.Total = totals.Total
	inv.Notes = strings.TrimSpace(input.Notes)
	inv.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, inv); err != nil {
		log.Error("failed to update invoice", zap.Error(err))
		return nil, err
	}

	log.Info("invoice updated", zap.String("invoice_number", inv.Number))
	return inv, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromCtx(ctx).Error("failed to delete invoice",
			zap.String("invoice_id", id.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Render(ctx context.Context, id uuid.UUID) (*Document, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RenderInvoice"),
		zap.String("invoice_id", id.String()),
	)

	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.renderer.Render(ctx, inv)
	if err != nil {
		log.Error("failed to render invoice", zap.Error(err))
		return nil, fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}

	return &Document{
		FileName:    fmt.Sprintf("invoice-%s.pdf", inv.Number),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// resolveBillTo fills the bill-to snapshot from a linked client, or saves the
// typed details as a new client when asked to. Saving the client is a separate
// write: if it fails the invoice is still created, unlinked.
func (s *service) resolveBillTo(ctx context.Context, input Input) (BillTo, *uuid.UUID, error) {
	billTo := BillTo{
		Name:    strings.TrimSpace(input.BillTo.Name),
		Address: strings.TrimSpace(input.BillTo.Address),
		Email:   strings.TrimSpace(input.BillTo.Email),
		Phone:   strings.TrimSpace(input.BillTo.Phone),
	}

	if input.ClientID != nil {
		c, err := s.clients.Get(ctx, *input.ClientID)
		if err != nil {
			return BillTo{}, nil, err
		}
		if billTo.Name == "" {
			billTo = BillTo{Name: c.Name, Address: c.Address, Email: c.Email, Phone: c.Phone}
		}
		id := c.ID
		return billTo, &id, nil
	}

	if billTo.Name == "" {
		return BillTo{}, nil, ErrBillToRequired
	}

	if !input.SaveClient {
		return billTo, nil, nil
	}

	c, err := s.clients.Remember(ctx, client.Input{
		Name:    billTo.Name,
		Address: billTo.Address,
		Email:   billTo.Email,
		Phone:   billTo.Phone,
	})
	if err != nil {
		if errors.Is(err, client.ErrInvalidClient) {
			return BillTo{}, nil, err
		}
		logger.FromCtx(ctx).Warn("failed to save bill-to as client", zap.Error(err))
		return billTo, nil, nil
	}

	id := c.ID
	return billTo, &id, nil
}

// invoiceDate keeps the requested date in its own zone; converting it could
// move the calendar day.
func invoiceDate(requested *time.Time, fallback time.Time) time.Time {
	if requested == nil || requested.IsZero() {
		return fallback
	}
	return *requested
}
