package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillTo is the recipient snapshot printed on the invoice.
type BillTo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type Item struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

type Invoice struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"invoice_number"`
	PeriodPrefix    string          `json:"-"`
	Serial          int             `json:"-"`
	InvoiceDate     time.Time       `json:"invoice_date"`
	ClientID        *uuid.UUID      `json:"client_id,omitempty"`
	BillTo          BillTo          `json:"bill_to"`
	Items           []Item          `json:"items"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ItemInput struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Input is the editable part of an invoice as submitted by the form.
type Input struct {
	ClientID        *uuid.UUID      `json:"client_id,omitempty"`
	BillTo          BillTo          `json:"bill_to"`
	Items           []ItemInput     `json:"items"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Notes           string          `json:"notes"`
	InvoiceDate     *time.Time      `json:"invoice_date,omitempty"`
	// SaveClient stores the bill-to details as a client when no client is linked.
	SaveClient bool `json:"save_client"`
}

// Document is a rendered invoice ready for download.
type Document struct {
	FileName    string
	ContentType string
	Content     []byte
}
