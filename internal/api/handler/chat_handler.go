package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mindmate/mindmate-api/internal/core/domain"
	"github.com/mindmate/mindmate-api/internal/core/ports"
)

type chatMessageRequest struct {
	Role    string `json:"role"    validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=8000"`
}

type chatRequest struct {
	Messages []chatMessageRequest `json:"messages" validate:"required,min=1,max=50,dive"`
}

// chatDelta is one server-sent event carrying a reply fragment.
type chatDelta struct {
	Content string `json:"content"`
}

// ChatHandler exposes the streaming assistant endpoint.
type ChatHandler struct {
	chat ports.ChatService
	log  zerolog.Logger
}

func NewChatHandler(chat ports.ChatService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, log: log}
}

// Chat streams an assistant reply as server-sent events. Each event is a
// JSON fragment `{"content": "..."}`; the stream is terminated by a final
// `[DONE]` event. Errors raised before the first fragment produce a normal
// JSON error response; once streaming has begun the connection is closed.
//
// @Summary      Chat with the assistant
// @Tags         chat
// @Accept       json
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Conversation so far"
// @Success      200   {string}  string  "SSE stream of reply fragments"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	messages := make([]domain.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, domain.ChatMessage{Role: m.Role, Content: m.Content})
	}

	res := c.Response()
	flusher, ok := res.Writer.(http.Flusher)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "streaming unsupported")
	}

	started := false
	onDelta := func(delta string) error {
		if !started {
			res.Header().Set(echo.HeaderContentType, "text/event-stream")
			res.Header().Set(echo.HeaderCacheControl, "no-cache")
			res.Header().Set("Connection", "keep-alive")
			res.WriteHeader(http.StatusOK)
			started = true
		}
		payload, err := json.Marshal(chatDelta{Content: delta})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if _, err := h.chat.Chat(c.Request().Context(), userID, messages, onDelta); err != nil {
		if !started {
			if errors.Is(err, domain.ErrProviderUnavailable) {
				return echo.NewHTTPError(http.StatusBadGateway, "assistant is unavailable")
			}
			return err
		}
		// Headers are already on the wire; all we can do is log and drop
		// the connection without the terminator event.
		h.log.Error().Err(err).Str("user_id", userID).Msg("chat stream aborted")
		return nil
	}

	if !started {
		// Empty reply from the provider still yields a valid stream.
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.WriteHeader(http.StatusOK)
	}
	_, _ = fmt.Fprint(res, "data: [DONE]\n\n")
	flusher.Flush()
	return nil
}
