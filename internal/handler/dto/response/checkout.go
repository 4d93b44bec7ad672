package response

import (
	"course-checkout/internal/usecase/commands"
)

type CheckoutResponse struct {
	OrderNumber string `json:"orderNumber"`
	SessionID   string `json:"sessionId"`
	SessionURL  string `json:"sessionUrl"`
	Token       string `json:"token,omitempty"`
	NewAccount  bool   `json:"newAccount"`
	TotalCents  int64  `json:"totalCents"`
	Currency    string `json:"currency"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		OrderNumber: r.OrderNumber,
		SessionID:   r.SessionID,
		SessionURL:  r.SessionURL,
		Token:       r.Token,
		NewAccount:  r.NewAccount,
		TotalCents:  r.TotalCents,
		Currency:    r.Currency,
	}
}

type SessionResponse struct {
	SessionID     string         `json:"sessionId"`
	PaymentStatus string         `json:"paymentStatus"`
	Order         *OrderResponse `json:"order,omitempty"`
}

func FromSessionVerification(v *commands.SessionVerification) (*SessionResponse, error) {
	resp := &SessionResponse{SessionID: v.SessionID, PaymentStatus: v.PaymentStatus}
	if v.Order != nil {
		o, err := FromOrderView(v.Order)
		if err != nil {
			return nil, err
		}
		resp.Order = o
	}
	return resp, nil
}

type WebhookResponse struct {
	Received bool   `json:"received"`
	EventID  string `json:"eventId,omitempty"`
	Outcome  string `json:"outcome,omitempty"`
}

type ParticipantCancelResponse struct {
	OrderNumber string `json:"orderNumber"`
	Cancelled   bool   `json:"cancelled"`
}
