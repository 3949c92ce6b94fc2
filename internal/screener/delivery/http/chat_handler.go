package http

import (
	"errors"
	"net/http"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/internal/screener/service"
	"golang-stock-screener/pkg/common"
	"golang-stock-screener/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ChatHandler handles HTTP requests for natural language screening.
type ChatHandler struct {
	chatService service.ChatService
	logger      *logger.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// RegisterRoutes registers the chat routes to the Echo group.
func (h *ChatHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/chat", h.Chat)
	g.GET("/symbols", h.ListSymbols)
}

// Chat godoc
// @Summary Screen stocks with a natural language query
// @Description Translates the query, screens the matching datasets and ranks the result
// @Tags chat
// @Accept  json
// @Produce  json
// @Param   request  body    dto.ChatRequest   true    "Query"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	ctx := c.Request().Context()
	resp, err := h.chatService.Chat(ctx, &req)
	if err == nil {
		return c.JSON(http.StatusOK, resp)
	}

	var notFound *service.NoSymbolsFoundError
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Query is required"})
	case errors.Is(err, service.ErrTranslationFailure):
		return c.JSON(http.StatusOK, softResponse(req.Text(), service.NotUnderstoodMessage, common.StatusNotUnderstood))
	case errors.As(err, &notFound):
		return c.JSON(http.StatusOK, softResponse(req.Text(), service.NotFoundMessage(notFound.Keywords), common.StatusNotFound))
	case errors.Is(err, service.ErrNoResults):
		return c.JSON(http.StatusOK, softResponse(req.Text(), service.NoResultsMessage, common.StatusNoResults))
	}

	h.logger.ErrorContext(ctx, "Failed to process chat query", logger.ErrorField(err))
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "An internal error occurred.",
		Details: err.Error(),
	})
}

// ListSymbols godoc
// @Summary List the screenable symbols
// @Tags chat
// @Produce  json
// @Success 200 {object} dto.SymbolsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /symbols [get]
func (h *ChatHandler) ListSymbols(c echo.Context) error {
	resp, err := h.chatService.ListSymbols(c.Request().Context())
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to list symbols", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "An internal error occurred.",
			Details: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func softResponse(query, message, status string) *dto.ChatResponse {
	return &dto.ChatResponse{
		Message: message,
		Query:   query,
		Status:  status,
		Data:    []dto.ScreenerResult{},
	}
}
