package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutLine struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	Images     []string        `json:"images"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Discount   int             `json:"discount"`
	FinalPrice decimal.Decimal `json:"final_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

type CheckoutTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

type CheckoutSummary struct {
	Items     []CheckoutLine `json:"items"`
	Summary   CheckoutTotals `json:"summary"`
	Addresses []Address      `json:"addresses"`
}
