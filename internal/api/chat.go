package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahay-labs/sahay/internal/clients"
	"github.com/sahay-labs/sahay/internal/middleware"
	"github.com/sahay-labs/sahay/internal/service"
	"go.uber.org/zap"
)

// maxUploadBytes caps chat attachments at 10 MB.
const maxUploadBytes = 10 << 20

// ChatHandler serves the session message thread plus the AI tutor
// endpoints. The bucket client may be nil when file storage is not
// configured; uploads then return 503.
type ChatHandler struct {
	chat   *service.ChatService
	bucket clients.BucketClient
	logger *zap.Logger
}

func NewChatHandler(chat *service.ChatService, bucket clients.BucketClient, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, bucket: bucket, logger: logger}
}

type createMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// Create handles POST /v1/matches/:id/messages
func (h *ChatHandler) Create(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chat.Append(c.Request.Context(),
		c.Param("id"), middleware.GetUserID(c), middleware.GetName(c),
		req.Body, "", "")
	if err != nil {
		respondServiceError(c, h.logger, err, "create message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// List handles GET /v1/matches/:id/messages
//
// Clients poll this. An empty array after the thread had content means
// the partner ended the session.
func (h *ChatHandler) List(c *gin.Context) {
	msgs, err := h.chat.List(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, h.logger, err, "list messages")
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// UploadFile handles POST /v1/matches/:id/files (multipart form,
// field "file"). The attachment goes to the bucket and a message with
// the public URL lands on the thread.
func (h *ChatHandler) UploadFile(c *gin.Context) {
	if h.bucket == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file sharing is not configured"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10 MB limit"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Random object key so two uploads of "notes.pdf" never collide.
	key := fmt.Sprintf("chat/%s/%s%s", c.Param("id"), uuid.NewString(),
		strings.ToLower(filepath.Ext(header.Filename)))

	url, err := h.bucket.Upload(c.Request.Context(), key, contentType, f)
	if err != nil {
		h.logger.Error("file upload failed", zap.Error(err), zap.String("key", key))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable, please retry"})
		return
	}

	body := c.PostForm("body")
	if body == "" {
		body = "Sent a file"
	}

	msg, err := h.chat.Append(c.Request.Context(),
		c.Param("id"), middleware.GetUserID(c), middleware.GetName(c),
		body, url, contentType)
	if err != nil {
		respondServiceError(c, h.logger, err, "record file message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Hint handles POST /v1/matches/:id/hint
func (h *ChatHandler) Hint(c *gin.Context) {
	msg, err := h.chat.Hint(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, h.logger, err, "generate hint")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Quiz handles POST /v1/matches/:id/quiz
func (h *ChatHandler) Quiz(c *gin.Context) {
	quiz, err := h.chat.Quiz(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, h.logger, err, "generate quiz")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": quiz})
}
