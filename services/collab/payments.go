package collab

import (
	"context"

	"travelorbit/models"

	"go.uber.org/zap"
)

// DefaultPaymentsService talks to the payment processor over HTTP. The
// processor owns gateway mechanics (signatures, mock fallback); this
// adapter only creates orders and verifies proofs.
type DefaultPaymentsService struct {
	api *apiClient
}

func NewPaymentsService(baseURL string, logger *zap.Logger) *DefaultPaymentsService {
	return &DefaultPaymentsService{api: newAPIClient(baseURL, logger)}
}

func (s *DefaultPaymentsService) CreateOrder(ctx context.Context, tripID string) (*models.OrderDescriptor, error) {
	var order models.OrderDescriptor
	if err := s.api.doJSON(ctx, "POST", "/trips/"+tripID+"/payment/create-order", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *DefaultPaymentsService) VerifyPayment(ctx context.Context, tripID string, proof models.PaymentProof) (*models.PaymentReceipt, error) {
	body := map[string]string{
		"trip_id":    tripID,
		"order_id":   proof.OrderID,
		"payment_id": proof.PaymentID,
		"signature":  proof.Signature,
	}
	var resp struct {
		Status        string  `json:"status"`
		BookingNumber string  `json:"booking_number"`
		TripID        string  `json:"trip_id"`
		Amount        float64 `json:"amount"`
		Currency      string  `json:"currency"`
		TicketHTML    string  `json:"ticket_html"`
	}
	if err := s.api.doJSON(ctx, "POST", "/trips/"+tripID+"/payment/verify", body, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "" && resp.Status != "success" {
		return nil, NewError(Unauthorized, "POST /payment/verify", "payment not verified")
	}
	return &models.PaymentReceipt{
		BookingNumber:   resp.BookingNumber,
		TripID:          resp.TripID,
		Amount:          resp.Amount,
		Currency:        resp.Currency,
		ReceiptDocument: resp.TicketHTML,
	}, nil
}
