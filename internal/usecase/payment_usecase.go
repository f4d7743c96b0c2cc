package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/internal/domain/service"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

const (
	ChargeSuccessEvent = "charge.success"
	gatewayErrorCode   = "PAYMENT_GATEWAY_ERROR"
)

type PaymentUseCase struct {
	hairdresserRepo repository.HairdresserRepository
	gateway         service.PaymentGatewayService
	clientBaseURL   string
	now             func() time.Time
}

func NewPaymentUseCase(
	hairdresserRepo repository.HairdresserRepository,
	gateway service.PaymentGatewayService,
	clientBaseURL string,
) *PaymentUseCase {
	return &PaymentUseCase{
		hairdresserRepo: hairdresserRepo,
		gateway:         gateway,
		clientBaseURL:   strings.TrimRight(clientBaseURL, "/"),
		now:             time.Now,
	}
}

type InitiatePaymentInput struct {
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
}

type InitiatePaymentResult struct {
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
	Reference        string `json:"reference"`
	Amount           int64  `json:"amount"`
}

func (uc *PaymentUseCase) Initiate(ctx context.Context, hairdresserID string, input InitiatePaymentInput) (*InitiatePaymentResult, error) {
	h, err := uc.hairdresserRepo.GetByID(ctx, hairdresserID)
	if err != nil {
		return nil, err
	}

	amount := h.Plan().MinorUnitFee()

	email := strings.TrimSpace(input.Email)
	if email == "" {
		email = strings.TrimSpace(h.Email)
	}
	if email == "" {
		email = fmt.Sprintf("no-reply+%s@sweetheart.local", h.ID)
	}

	phone := strings.TrimSpace(input.PhoneNumber)
	if phone == "" {
		phone = h.PhoneNumber
	}

	session, err := uc.gateway.InitializeCharge(ctx, service.ChargeRequest{
		Email:       email,
		Amount:      amount,
		CallbackURL: fmt.Sprintf("%s/paystack-callback?hairdresserId=%s", uc.clientBaseURL, url.QueryEscape(h.ID)),
		Metadata: map[string]interface{}{
			"hairdresserId": h.ID,
			"phoneNumber":   phone,
		},
	})
	if err != nil {
		logger.Error("Payment initialization failed for hairdresser %s: %v", h.ID, err)
		return nil, errors.BadGateway(gatewayErrorCode, "Failed to initialize payment", err)
	}

	if h.PaymentStatus != entity.PaymentStatusPaid {
		if err := uc.hairdresserRepo.Merge(ctx, h.ID, map[string]interface{}{
			"paymentStatus": entity.PaymentStatusInitiated,
		}); err != nil {
			return nil, err
		}
	}

	return &InitiatePaymentResult{
		AuthorizationURL: session.AuthorizationURL,
		AccessCode:       session.AccessCode,
		Reference:        session.Reference,
		Amount:           amount,
	}, nil
}

type VerifyPaymentInput struct {
	Reference string `json:"reference" validate:"required"`
}

// Verify confirms a charge with the gateway and, if it covers the plan fee,
// marks the profile paid.
func (uc *PaymentUseCase) Verify(ctx context.Context, hairdresserID, reference string) (*entity.Hairdresser, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errors.BadRequest("Payment reference is required", nil)
	}

	h, err := uc.hairdresserRepo.GetByID(ctx, hairdresserID)
	if err != nil {
		return nil, err
	}

	status, err := uc.gateway.VerifyCharge(ctx, reference)
	if err != nil {
		logger.Error("Payment verification failed for hairdresser %s ref %s: %v", h.ID, reference, err)
		return nil, errors.BadGateway(gatewayErrorCode, "Failed to verify payment", err)
	}

	if !status.Successful {
		return nil, errors.BadRequest("Payment is not successful", nil)
	}

	expected := h.Plan().MinorUnitFee()
	if status.Amount < expected {
		return nil, errors.BadRequest("Paid amount is less than required registration fee", nil).
			WithDetails(map[string]int64{"expected": expected, "received": status.Amount})
	}

	if err := uc.markPaid(ctx, h, reference); err != nil {
		return nil, err
	}
	return h, nil
}

// markPaid applies the paid transition in one write and mirrors it onto h.
func (uc *PaymentUseCase) markPaid(ctx context.Context, h *entity.Hairdresser, reference string) error {
	paidAt := uc.now()
	next := entity.AddOneMonth(paidAt)

	if err := uc.hairdresserRepo.Merge(ctx, h.ID, map[string]interface{}{
		"isPaid":           true,
		"paymentStatus":    entity.PaymentStatusPaid,
		"paymentReference": reference,
		"paymentDate":      paidAt,
		"nextPaymentDate":  next,
	}); err != nil {
		return err
	}

	h.IsPaid = true
	h.PaymentStatus = entity.PaymentStatusPaid
	h.PaymentReference = reference
	h.PaymentDate = &paidAt
	h.NextPaymentDate = &next
	h.UpdatedAt = &paidAt

	logger.With("hairdresserId", h.ID, "reference", reference).Info("payment confirmed")
	return nil
}

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string          `json:"reference"`
		Status    string          `json:"status"`
		Amount    int64           `json:"amount"`
		Metadata  json.RawMessage `json:"metadata"`
	} `json:"data"`
}

// webhookHairdresserID reads metadata.hairdresserId. Metadata may be an
// object or a JSON string holding one.
func webhookHairdresserID(raw json.RawMessage) string {
	var meta map[string]interface{}
	if err := json.Unmarshal(raw, &meta); err != nil {
		var encoded string
		if json.Unmarshal(raw, &encoded) != nil || json.Unmarshal([]byte(encoded), &meta) != nil {
			return ""
		}
	}
	id, _ := meta["hairdresserId"].(string)
	return id
}

// HandleWebhook authenticates and applies a gateway event. Only charge.success
// changes state.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !uc.gateway.VerifyWebhookSignature(body, signature) {
		return errors.Unauthorized("invalid signature", nil)
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return errors.BadRequest("Invalid webhook payload", err)
	}

	if payload.Event != ChargeSuccessEvent {
		logger.Debug("Ignoring payment webhook event %s", payload.Event)
		return nil
	}

	hairdresserID := webhookHairdresserID(payload.Data.Metadata)
	if hairdresserID == "" {
		logger.Warn("Payment webhook %s carried no hairdresserId", payload.Data.Reference)
		return nil
	}

	h, err := uc.hairdresserRepo.GetByID(ctx, hairdresserID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			logger.Warn("Payment webhook for unknown hairdresser %s", hairdresserID)
			return nil
		}
		return err
	}

	return uc.markPaid(ctx, h, payload.Data.Reference)
}
