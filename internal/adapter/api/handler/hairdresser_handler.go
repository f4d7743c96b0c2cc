package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"hairconnect/internal/adapter/api/middleware"
	"hairconnect/internal/domain/entity"
	"hairconnect/internal/usecase"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
	"hairconnect/pkg/response"
	"hairconnect/pkg/utils"
)

type HairdresserHandler struct {
	hairdresserUseCase *usecase.HairdresserUseCase
	listingUseCase     *usecase.ListingUseCase
}

func NewHairdresserHandler(hairdresserUseCase *usecase.HairdresserUseCase, listingUseCase *usecase.ListingUseCase) *HairdresserHandler {
	return &HairdresserHandler{
		hairdresserUseCase: hairdresserUseCase,
		listingUseCase:     listingUseCase,
	}
}

type createHairdresserRequest struct {
	FullName       string `form:"fullName" validate:"required"`
	NickName       string `form:"nickName"`
	Age            string `form:"age" validate:"required"`
	Gender         string `form:"gender"`
	Orientation    string `form:"orientation"`
	PhoneNumber    string `form:"phoneNumber" validate:"required"`
	WhatsappNumber string `form:"whatsappNumber"`
	Email          string `form:"email" validate:"omitempty,email"`
	MembershipPlan string `form:"membershipPlan"`
	TownID         string `form:"townId" validate:"required,number"`
	EstateID       string `form:"estateId" validate:"required,number"`
	SubEstateID    string `form:"subEstateId" validate:"required,number"`
	FirebaseUID    string `form:"firebaseUid"`
}

// List serves the public directory.
func (h *HairdresserHandler) List(c echo.Context) error {
	var filter usecase.ListingFilter
	var err error

	if filter.TownID, err = optionalIntQuery(c, "townId"); err != nil {
		return response.Error(c, err)
	}
	if filter.EstateID, err = optionalIntQuery(c, "estateId"); err != nil {
		return response.Error(c, err)
	}
	if filter.SubEstateID, err = optionalIntQuery(c, "subEstateId"); err != nil {
		return response.Error(c, err)
	}

	filter.Services = splitServices(c.QueryParams()["services"])
	filter.Search = strings.TrimSpace(c.QueryParam("search"))

	list, err := h.listingUseCase.List(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, utils.PageOf(c, list))
}

// splitServices accepts ?services=a&services=b as well as ?services=a,b.
func splitServices(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *HairdresserHandler) GetMe(c echo.Context) error {
	profile, err := h.hairdresserUseCase.GetByUID(c.Request().Context(), authUID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

func (h *HairdresserHandler) GetByUID(c echo.Context) error {
	profile, err := h.hairdresserUseCase.GetByUID(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

// GetByID returns a profile and records the view for this session.
func (h *HairdresserHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.hairdresserUseCase.GetByID(ctx, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	counted, err := h.hairdresserUseCase.RecordView(ctx, profile.ID, authUID(c), middleware.SessionID(c))
	if err != nil {
		logger.Error("Failed to record view for hairdresser %s: %v", profile.ID, err)
	} else if counted {
		profile.Views++
	}

	return response.Success(c, profile)
}

// Create registers a profile from a multipart form.
func formInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.BadRequest(field+" must be an integer", err)
	}
	return n, nil
}

func (h *HairdresserHandler) Create(c echo.Context) error {
	form, err := parseMultipart(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req createHairdresserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid form data", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	townID, err := formInt("townId", req.TownID)
	if err != nil {
		return response.Error(c, err)
	}
	estateID, err := formInt("estateId", req.EstateID)
	if err != nil {
		return response.Error(c, err)
	}
	subEstateID, err := formInt("subEstateId", req.SubEstateID)
	if err != nil {
		return response.Error(c, err)
	}

	profilePhoto, closePhoto, err := singleFile(form, "profilePhoto")
	if err != nil {
		return response.Error(c, err)
	}
	defer closePhoto()

	serviceImages, closeImages, err := multipartFiles(form, "serviceImages")
	if err != nil {
		return response.Error(c, err)
	}
	defer closeImages()

	services := make([]interface{}, 0, len(form.Value["services"]))
	for _, s := range form.Value["services"] {
		services = append(services, s)
	}

	result, err := h.hairdresserUseCase.Create(c.Request().Context(), usecase.CreateHairdresserInput{
		FullName:       req.FullName,
		NickName:       req.NickName,
		Age:            req.Age,
		Gender:         req.Gender,
		Orientation:    req.Orientation,
		PhoneNumber:    req.PhoneNumber,
		WhatsappNumber: req.WhatsappNumber,
		Email:          req.Email,
		MembershipPlan: req.MembershipPlan,
		TownID:         townID,
		EstateID:       estateID,
		SubEstateID:    subEstateID,
		FirebaseUID:    req.FirebaseUID,
		Services:       entity.NormalizeServices(services),
		ProfilePhoto:   profilePhoto,
		ServiceImages:  serviceImages,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *HairdresserHandler) LinkAuth(c echo.Context) error {
	var req usecase.LinkAuthInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	profile, err := h.hairdresserUseCase.LinkAuth(c.Request().Context(), c.Param("id"), authUID(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}
