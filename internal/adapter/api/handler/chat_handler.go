package handler

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/usecase"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/response"
	"hairconnect/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startChatRequest struct {
	RecipientID string `json:"recipientId"`
	UserID      string `json:"userId"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

type viewerRequest struct {
	UserID string `json:"userId"`
}

func requireCaller(c echo.Context, bodyUserID string) (string, error) {
	id := callerID(c, bodyUserID)
	if id == "" {
		return "", errors.BadRequest("Missing user identity", nil)
	}
	return id, nil
}

// Start opens, or returns the existing, conversation with a recipient.
func (h *ChatHandler) Start(c echo.Context) error {
	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	conversation, err := h.chatUseCase.StartConversation(c.Request().Context(), callerID(c, req.UserID), req.RecipientID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, conversation)
}

func (h *ChatHandler) List(c echo.Context) error {
	userID, err := requireCaller(c, "")
	if err != nil {
		return response.Error(c, err)
	}

	conversations, err := h.chatUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, conversations)
}

// Inbox returns the reconciled, one-row-per-person conversation list.
func (h *ChatHandler) Inbox(c echo.Context) error {
	userID, err := requireCaller(c, "")
	if err != nil {
		return response.Error(c, err)
	}

	entries, err := h.chatUseCase.Inbox(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, entries)
}

func (h *ChatHandler) Messages(c echo.Context) error {
	messages, err := h.chatUseCase.ListMessages(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, utils.PageOf(c, messages))
}

func (h *ChatHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	senderID, err := requireCaller(c, req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), c.Param("id"), senderID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *ChatHandler) Unread(c echo.Context) error {
	viewerID, err := requireCaller(c, "")
	if err != nil {
		return response.Error(c, err)
	}

	count, err := h.chatUseCase.UnreadCount(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"count": count})
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	var req viewerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	viewerID, err := requireCaller(c, req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	marked, err := h.chatUseCase.MarkRead(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"marked": marked})
}
