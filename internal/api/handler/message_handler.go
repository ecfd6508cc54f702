package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nocturnal/nocturnal-api/internal/core/ports"
)

// IdempotencyKeyHeader lets clients retry message creation safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// MessageHandler handles message creation.
type MessageHandler struct {
	service ports.MessageService
}

// NewMessageHandler creates a MessageHandler backed by the given service.
func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Create handles POST /admin/messages. A replayed Idempotency-Key returns
// the original id with 200 instead of 201; the same key with another payload
// is 422, and 409 while the first request is still running.
//
// @Summary      Post a message
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Client-chosen retry key"
// @Param        body             body      createMessageRequest  true   "Message"
// @Success      200              {object}  createdResponse
// @Success      201              {object}  createdResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /admin/messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.service.CreateMessage(c.Request().Context(), ports.CreateMessageInput{
		Author:         req.Author,
		Content:        req.Content,
		IdempotencyKey: c.Request().Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, createdResponse{ID: res.ID})
}
