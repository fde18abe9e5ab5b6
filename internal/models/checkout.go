package models

import "time"

// Shipping is the first checkout step's form.
type Shipping struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// Card is the raw payment form. It never leaves the checkout flow.
type Card struct {
	Name   string
	Number string
	Expiry string // MM/YY
	CVC    string
}

// PaymentMethod is what the flow keeps after a card passed validation.
type PaymentMethod struct {
	Method   string `json:"method"`
	CardName string `json:"cardName"`
	Last4    string `json:"last4"`
}

// OrderSummary is recomputed from the cart every time it is shown.
type OrderSummary struct {
	Items    []LineItem
	Subtotal float64
	Shipping float64
	Total    float64
}

// Receipt is returned by a successful payment.
type Receipt struct {
	TransactionID string
	Amount        float64
	Timestamp     time.Time
}
