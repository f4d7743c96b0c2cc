package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/internal/domain/service"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

type HairdresserUseCase struct {
	hairdresserRepo repository.HairdresserRepository
	locations       repository.LocationResolver
	uploader        service.FileUploadService
	linkSecret      []byte
	linkTTL         time.Duration
}

func NewHairdresserUseCase(
	hairdresserRepo repository.HairdresserRepository,
	locations repository.LocationResolver,
	uploader service.FileUploadService,
	linkSecret string,
	linkTTL time.Duration,
) *HairdresserUseCase {
	return &HairdresserUseCase{
		hairdresserRepo: hairdresserRepo,
		locations:       locations,
		uploader:        uploader,
		linkSecret:      []byte(linkSecret),
		linkTTL:         linkTTL,
	}
}

type CreateHairdresserInput struct {
	FullName       string
	NickName       string
	Age            string
	Gender         string
	Orientation    string
	PhoneNumber    string
	WhatsappNumber string
	Email          string
	MembershipPlan string
	TownID         int
	EstateID       int
	SubEstateID    int
	FirebaseUID    string
	Services       []string

	ProfilePhoto  *Upload
	ServiceImages []*Upload
}

type CreateHairdresserResult struct {
	Hairdresser *entity.HairdresserWithLocation `json:"hairdresser"`
	// LinkToken authorizes the follow-up link-auth call for this profile only.
	LinkToken string `json:"linkToken"`
}

func (uc *HairdresserUseCase) Create(ctx context.Context, input CreateHairdresserInput) (*CreateHairdresserResult, error) {
	if len(input.ServiceImages) > MaxServiceImages {
		return nil, errors.BadRequest("A maximum of 10 service images is allowed", nil)
	}
	if input.ProfilePhoto != nil {
		if err := validateImage("profilePhoto", input.ProfilePhoto); err != nil {
			return nil, err
		}
	}
	for _, img := range input.ServiceImages {
		if err := validateImage("serviceImages", img); err != nil {
			return nil, err
		}
	}

	plan := entity.PlanRegular
	if strings.TrimSpace(input.MembershipPlan) != "" {
		plan = entity.ParsePlan(input.MembershipPlan)
	}

	notVerified := false
	h := &entity.Hairdresser{
		FirebaseUID:     strings.TrimSpace(input.FirebaseUID),
		FullName:        strings.TrimSpace(input.FullName),
		NickName:        strings.TrimSpace(input.NickName),
		Age:             input.Age,
		Gender:          input.Gender,
		Orientation:     input.Orientation,
		PhoneNumber:     strings.TrimSpace(input.PhoneNumber),
		WhatsappNumber:  strings.TrimSpace(input.WhatsappNumber),
		Email:           strings.TrimSpace(input.Email),
		IsAdult:         true,
		MembershipPlan:  string(plan),
		TownID:          input.TownID,
		EstateID:        input.EstateID,
		SubEstateID:     input.SubEstateID,
		Services:        entity.NormalizeServices(input.Services),
		ServiceImages:   []string{},
		IsPaid:          false,
		IsVerified:      &notVerified,
		PaymentStatus:   entity.PaymentStatusUnpaid,
		NextPaymentFee:  plan.Fee(),
		RegistrationFee: entity.DefaultRegistrationFee,
		Verification:    entity.PendingVerification(),
	}

	if input.ProfilePhoto != nil {
		url, err := uploadImage(ctx, uc.uploader, FolderProfile, input.ProfilePhoto)
		if err != nil {
			return nil, err
		}
		h.ProfilePhoto = &url
	}
	for _, img := range input.ServiceImages {
		url, err := uploadImage(ctx, uc.uploader, FolderServices, img)
		if err != nil {
			return nil, err
		}
		h.ServiceImages = append(h.ServiceImages, url)
	}

	if err := uc.hairdresserRepo.Create(ctx, h); err != nil {
		return nil, err
	}

	token, err := uc.IssueLinkToken(h.ID)
	if err != nil {
		return nil, errors.Internal("Failed to issue link token", err)
	}

	logger.With("hairdresserId", h.ID, "plan", h.MembershipPlan).Info("hairdresser registered")

	return &CreateHairdresserResult{
		Hairdresser: withLocation(uc.locations, h),
		LinkToken:   token,
	}, nil
}

// GetByID looks up by document id, then by owner uid.
func (uc *HairdresserUseCase) GetByID(ctx context.Context, id string) (*entity.HairdresserWithLocation, error) {
	h, err := uc.hairdresserRepo.GetByID(ctx, id)
	if errors.Is(err, "NOT_FOUND") {
		h, err = uc.hairdresserRepo.GetByFirebaseUID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return withLocation(uc.locations, h), nil
}

func (uc *HairdresserUseCase) GetByUID(ctx context.Context, uid string) (*entity.HairdresserWithLocation, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, errors.BadRequest("uid is required", nil)
	}
	h, err := uc.hairdresserRepo.GetByFirebaseUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return withLocation(uc.locations, h), nil
}

// ShouldCountView decides whether a read of h counts as a view. Owners never
// count; a session counts once.
func ShouldCountView(h *entity.Hairdresser, viewerUID, sessionID string) bool {
	if h == nil || !h.IsPaid {
		return false
	}
	if viewerUID != "" && viewerUID == h.FirebaseUID {
		return false
	}
	if sessionID != "" && h.ViewSessions[sessionID] {
		return false
	}
	return true
}

// RecordView counts a view of profileID at most once per session.
func (uc *HairdresserUseCase) RecordView(ctx context.Context, profileID, viewerUID, sessionID string) (bool, error) {
	return uc.hairdresserRepo.IncrementViews(ctx, profileID, sessionID, func(h *entity.Hairdresser) bool {
		return ShouldCountView(h, viewerUID, sessionID)
	})
}

type LinkAuthInput struct {
	FirebaseUID string `json:"firebaseUid" validate:"required"`
	LinkToken   string `json:"linkToken" validate:"required"`
}

// LinkAuth attaches the verified uid to a freshly registered profile.
func (uc *HairdresserUseCase) LinkAuth(ctx context.Context, id, tokenUID string, input LinkAuthInput) (*entity.HairdresserWithLocation, error) {
	if tokenUID == "" || tokenUID != input.FirebaseUID {
		return nil, errors.Forbidden("Forbidden: UID mismatch", nil)
	}

	linkedID, err := uc.ParseLinkToken(input.LinkToken)
	if err != nil || linkedID != id {
		return nil, errors.Unauthorized("Invalid link token", err)
	}

	h, err := uc.hairdresserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if h.FirebaseUID == tokenUID {
		return withLocation(uc.locations, h), nil
	}
	if h.FirebaseUID != "" {
		return nil, errors.Conflict("Profile is already linked to another account")
	}

	if existing, err := uc.hairdresserRepo.GetByFirebaseUID(ctx, tokenUID); err == nil && existing.ID != id {
		return nil, errors.Conflict("Account is already linked to another profile")
	} else if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if err := uc.hairdresserRepo.Merge(ctx, id, map[string]interface{}{"firebaseUid": tokenUID}); err != nil {
		return nil, err
	}
	h.FirebaseUID = tokenUID

	return withLocation(uc.locations, h), nil
}

type linkClaims struct {
	HairdresserID string `json:"hairdresserId"`
	jwt.RegisteredClaims
}

func (uc *HairdresserUseCase) IssueLinkToken(hairdresserID string) (string, error) {
	now := time.Now()
	claims := linkClaims{
		HairdresserID: hairdresserID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.linkTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.linkSecret)
}

// ParseLinkToken returns the profile id a valid, unexpired token was issued for.
func (uc *HairdresserUseCase) ParseLinkToken(token string) (string, error) {
	claims := &linkClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return uc.linkSecret, nil
	})
	if err != nil {
		return "", err
	}
	if claims.HairdresserID == "" {
		return "", errors.Unauthorized("Invalid link token", nil)
	}
	return claims.HairdresserID, nil
}
