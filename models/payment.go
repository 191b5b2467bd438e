package models

// OrderDescriptor is what the external checkout widget needs to open.
type OrderDescriptor struct {
	OrderID       string  `json:"order_id"`
	Amount        int64   `json:"amount"` // minor units
	Currency      string  `json:"currency"`
	KeyID         string  `json:"key_id,omitempty"`
	TripID        string  `json:"trip_id"`
	BookingNumber string  `json:"booking_number"`
	Email         string  `json:"email,omitempty"`
	Contact       string  `json:"contact,omitempty"`
	PaymentMode   string  `json:"payment_mode,omitempty"` // "live" or "mock"
	DisplayAmount float64 `json:"-"`
}

// PaymentProof is the signed result the checkout widget hands back.
type PaymentProof struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// PaymentReceipt is the verified booking outcome.
type PaymentReceipt struct {
	BookingNumber   string  `json:"booking_number"`
	TripID          string  `json:"trip_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	ReceiptDocument string  `json:"receipt_document,omitempty"` // e.g. ticket HTML
}
