package usecase

import (
	"context"
	"strings"
	"time"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/internal/domain/service"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

type VerificationUseCase struct {
	hairdresserRepo repository.HairdresserRepository
	uploader        service.FileUploadService
	now             func() time.Time
}

func NewVerificationUseCase(hairdresserRepo repository.HairdresserRepository, uploader service.FileUploadService) *VerificationUseCase {
	return &VerificationUseCase{
		hairdresserRepo: hairdresserRepo,
		uploader:        uploader,
		now:             time.Now,
	}
}

type SubmitVerificationInput struct {
	HairdresserID string
	Country       string
	IDType        string
	IDNumber      string

	IDFront *Upload
	IDBack  *Upload
	Selfie  *Upload
}

func (uc *VerificationUseCase) Submit(ctx context.Context, input SubmitVerificationInput) (*entity.Verification, error) {
	if strings.TrimSpace(input.HairdresserID) == "" {
		return nil, errors.BadRequest("hairdresserId is required", nil)
	}

	files := []struct {
		field  string
		upload *Upload
	}{
		{"idFront", input.IDFront},
		{"idBack", input.IDBack},
		{"selfie", input.Selfie},
	}
	for _, f := range files {
		if f.upload == nil {
			continue
		}
		if err := validateImage(f.field, f.upload); err != nil {
			return nil, err
		}
	}

	if _, err := uc.hairdresserRepo.GetByID(ctx, input.HairdresserID); err != nil {
		return nil, err
	}

	urls := make(map[string]*string, len(files))
	for _, f := range files {
		if f.upload == nil {
			continue
		}
		url, err := uploadImage(ctx, uc.uploader, FolderVerification, f.upload)
		if err != nil {
			return nil, err
		}
		urls[f.field] = &url
	}

	submittedAt := uc.now()
	verification := &entity.Verification{
		Country:     optionalString(input.Country),
		IDType:      optionalString(input.IDType),
		IDNumber:    optionalString(input.IDNumber),
		IDFront:     urls["idFront"],
		IDBack:      urls["idBack"],
		Selfie:      urls["selfie"],
		Status:      entity.VerificationPending,
		SubmittedAt: &submittedAt,
	}

	if err := uc.hairdresserRepo.Merge(ctx, input.HairdresserID, map[string]interface{}{
		"verification": verification,
	}); err != nil {
		return nil, err
	}

	logger.With("hairdresserId", input.HairdresserID).Info("verification submitted")
	return verification, nil
}

type ReviewVerificationInput struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Notes  string `json:"notes"`
}

// Review records an admin decision; isVerified follows the status in the same write.
func (uc *VerificationUseCase) Review(ctx context.Context, hairdresserID, reviewerUID string, input ReviewVerificationInput) (*entity.Verification, error) {
	if input.Status != entity.VerificationApproved && input.Status != entity.VerificationRejected {
		return nil, errors.BadRequest("status must be approved or rejected", nil)
	}

	h, err := uc.hairdresserRepo.GetByID(ctx, hairdresserID)
	if err != nil {
		return nil, err
	}

	verification := h.Verification
	if verification == nil {
		verification = entity.PendingVerification()
	}
	reviewedAt := uc.now()
	verification.Status = input.Status
	verification.ReviewedAt = &reviewedAt
	verification.ReviewedBy = reviewerUID
	verification.Notes = input.Notes

	if err := uc.hairdresserRepo.Merge(ctx, hairdresserID, map[string]interface{}{
		"verification": verification,
		"isVerified":   input.Status == entity.VerificationApproved,
	}); err != nil {
		return nil, err
	}

	logger.With("hairdresserId", hairdresserID, "status", input.Status, "reviewer", reviewerUID).Info("verification reviewed")
	return verification, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
