package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shipdesk/internal/port"
)

// ChatHandler passes questions through to the chat collaborator.
type ChatHandler struct {
	chat port.ChatDelegate
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat port.ChatDelegate) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Question string `json:"question" form:"question"`
}

// Ask handles POST /api/v1/chat
// @Summary Ask a question about the extracted data
// @Description The collaborator's error text is returned as data, not as a failed request
// @Tags chat
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body chatRequest true "Question"
// @Success 200 {object} APIResponse{data=domain.ChatReply} "Answer or collaborator error"
// @Failure 400 {object} APIResponse "Missing question"
// @Failure 502 {object} APIResponse "Chat service unavailable"
// @Router /chat [post]
func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBind(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "question is required")
		return
	}

	reply, err := h.chat.Ask(c.Request.Context(), strings.TrimSpace(req.Question))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, reply)
}
