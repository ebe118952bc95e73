package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseEvent is the normalized form of an inbound order webhook. The
// ingestion boundary decodes and validates the raw JSON body into this
// struct before anything reaches the accrual engine; optional fields are
// pointers so "absent" and "empty" stay distinguishable.
type PurchaseEvent struct {
	OrderID      int64           `json:"id"`
	Email        *string         `json:"email"`
	ContactEmail *string         `json:"contact_email"`
	Phone        *string         `json:"phone"`
	Customer     *EventCustomer  `json:"customer"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Currency     string          `json:"currency"`
	LineItems    []LineItem      `json:"line_items"`
	CreatedAt    *time.Time      `json:"created_at"`
}

// EventCustomer is the nested customer block of an order webhook.
type EventCustomer struct {
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
}

// LineItem is one purchased item, recorded as entry metadata only.
type LineItem struct {
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CustomerName assembles a display name from the nested customer block,
// empty when no customer data was delivered.
func (e *PurchaseEvent) CustomerName() string {
	if e.Customer == nil {
		return ""
	}
	switch {
	case e.Customer.FirstName != "" && e.Customer.LastName != "":
		return e.Customer.FirstName + " " + e.Customer.LastName
	case e.Customer.FirstName != "":
		return e.Customer.FirstName
	default:
		return e.Customer.LastName
	}
}
