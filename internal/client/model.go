package client

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is a saved "bill to" recipient.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Input struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

func (in Input) normalize() Input {
	return Input{
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
	}
}

func (in Input) validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}
