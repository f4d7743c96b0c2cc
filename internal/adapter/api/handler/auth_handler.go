package handler

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/usecase"
	"hairconnect/pkg/response"
)

type AuthHandler struct {
	chatUserUseCase *usecase.ChatUserUseCase
}

func NewAuthHandler(chatUserUseCase *usecase.ChatUserUseCase) *AuthHandler {
	return &AuthHandler{
		chatUserUseCase: chatUserUseCase,
	}
}

type chatUserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func toChatUserResponse(u *entity.ChatUser) chatUserResponse {
	return chatUserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.RegisterChatUserInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.chatUserUseCase.Register(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, toChatUserResponse(user))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.LoginChatUserInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.chatUserUseCase.Login(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, toChatUserResponse(user))
}

func (h *AuthHandler) GetChatUser(c echo.Context) error {
	user, err := h.chatUserUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, toChatUserResponse(user))
}
