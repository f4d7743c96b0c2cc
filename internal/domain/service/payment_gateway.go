package service

import "context"

// ChargeRequest is what the payment flow needs from a gateway to open a
// hosted checkout. Amount is in the gateway's minor unit.
type ChargeRequest struct {
	Email       string
	Amount      int64
	CallbackURL string
	Metadata    map[string]interface{}
}

type ChargeSession struct {
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
	Reference        string `json:"reference"`
}

// ChargeStatus is a gateway's view of a charge. Successful reports a settled
// charge; anything else (abandoned, failed, pending) is not successful.
type ChargeStatus struct {
	Reference  string                 `json:"reference"`
	Status     string                 `json:"status"`
	Amount     int64                  `json:"amount"`
	Currency   string                 `json:"currency"`
	PaidAt     string                 `json:"paidAt,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Successful bool                   `json:"-"`
}

type PaymentGatewayService interface {
	InitializeCharge(ctx context.Context, req ChargeRequest) (*ChargeSession, error)
	VerifyCharge(ctx context.Context, reference string) (*ChargeStatus, error)
	// VerifyWebhookSignature authenticates a raw webhook body.
	VerifyWebhookSignature(body []byte, signature string) bool
}
