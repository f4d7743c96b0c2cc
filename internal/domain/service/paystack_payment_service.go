package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hairconnect/pkg/logger"
)

const defaultPaystackBaseURL = "https://api.paystack.co"

// PaystackPaymentService talks to the Paystack transaction API over HTTP.
type PaystackPaymentService struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewPaystackPaymentService(secretKey, baseURL string) *PaystackPaymentService {
	if baseURL == "" {
		baseURL = defaultPaystackBaseURL
	}

	return &PaystackPaymentService{
		secretKey:  secretKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type paystackInitializeRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// paystackEnvelope is the shape every Paystack response shares.
type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackVerifyData struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	PaidAt    string          `json:"paid_at"`
	Metadata  json.RawMessage `json:"metadata"`
}

// metadataMap decodes Paystack metadata, which may arrive as an object, an
// empty string or null.
func metadataMap(raw json.RawMessage) map[string]interface{} {
	var out map[string]interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &out) != nil {
		return nil
	}
	return out
}

func (s *PaystackPaymentService) InitializeCharge(ctx context.Context, req ChargeRequest) (*ChargeSession, error) {
	logger.Info("Initializing Paystack charge: email=%s, amount=%d", req.Email, req.Amount)

	payload, err := json.Marshal(paystackInitializeRequest{
		Email:       req.Email,
		Amount:      req.Amount,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var data paystackInitializeData
	if err := s.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(payload), &data); err != nil {
		return nil, err
	}

	return &ChargeSession{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (s *PaystackPaymentService) VerifyCharge(ctx context.Context, reference string) (*ChargeStatus, error) {
	logger.Info("Verifying Paystack charge: reference=%s", reference)

	var data paystackVerifyData
	if err := s.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &data); err != nil {
		return nil, err
	}

	return &ChargeStatus{
		Reference:  data.Reference,
		Status:     data.Status,
		Amount:     data.Amount,
		Currency:   data.Currency,
		PaidAt:     data.PaidAt,
		Metadata:   metadataMap(data.Metadata),
		Successful: data.Status == "success",
	}, nil
}

// VerifyWebhookSignature checks x-paystack-signature: hex HMAC-SHA512 of the
// raw body keyed with the secret.
func (s *PaystackPaymentService) VerifyWebhookSignature(body []byte, signature string) bool {
	if signature == "" || s.secretKey == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(s.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

func (s *PaystackPaymentService) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("Paystack API error: path=%s status=%d body=%s", path, resp.StatusCode, string(raw))
		return fmt.Errorf("paystack API error: status %d", resp.StatusCode)
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !envelope.Status {
		return fmt.Errorf("paystack rejected request: %s", envelope.Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}
