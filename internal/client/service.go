package client

import (
	"context"
	"errors"
	"time"

	"invoice-desk/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Client, error)
	Get(ctx context.Context, id uuid.UUID) (*Client, error)
	Create(ctx context.Context, input Input) (*Client, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Remember stores the bill-to details as a client unless one with the
	// same name already exists.
	Remember(ctx context.Context, input Input) (*Client, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input Input) (*Client, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateClient"),
	)

	input = input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &Client{
		ID:        uuid.New(),
		Name:      input.Name,
		Address:   input.Address,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error("failed to create client", zap.Error(err))
		return nil, err
	}

	log.Info("client created", zap.String("client_id", c.ID.String()))
	return c, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*Client, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateClient"),
		zap.String("client_id", id.String()),
	)

	input = input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = input.Name
	c.Address = input.Address
	c.Email = input.Email
	c.Phone = input.Phone
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		log.Error("failed to update client", zap.Error(err))
		return nil, err
	}

	return c, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromCtx(ctx).Error("failed to delete client",
			zap.String("client_id", id.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Remember(ctx context.Context, input Input) (*Client, error) {
	input = input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, input.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrClientNotFound) {
		return nil, err
	}

	return s.Create(ctx, input)
}
