// Package stubserver is a development backend that speaks the /chat/
// contract: a multipart POST answered with the caller's whole history. It
// stores history in SQLite and answers with canned replies instead of a
// language model.
package stubserver

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/cazelabs/cazechat/internal/backend"
	"github.com/cazelabs/cazechat/internal/logger"
)

// Roles as stored and sent on the wire.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

const (
	defaultUserID = "default_user"
	uploadsRoute  = "/uploads"
)

type Handler struct {
	Repo       *Repo
	UploadsDir string
	Version    string
}

func NewHandler(db *gorm.DB, uploadsDir, version string) *Handler {
	return &Handler{Repo: NewRepo(db), UploadsDir: uploadsDir, Version: version}
}

// NewRouter builds the engine. uploadsDir must exist.
func NewRouter(db *gorm.DB, uploadsDir, version string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
	})

	h := NewHandler(db, uploadsDir, version)

	r.GET("/", h.Status)
	r.POST("/chat/", h.Chat)
	r.Static(uploadsRoute, uploadsDir)
	return r
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "cazechat stub backend is running",
		"version": h.Version,
	})
}

// Chat records the prompt and a reply for the user and returns the user's
// history, oldest first.
func (h *Handler) Chat(c *gin.Context) {
	log := logger.WithComponent("stubserver")
	ctx := c.Request.Context()

	prompt, ok := c.GetPostForm(backend.FieldPrompt)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "field required: prompt"})
		return
	}
	userID := c.DefaultPostForm(backend.FieldUserID, defaultUserID)
	if userID == "" {
		userID = defaultUserID
	}

	var upload *Upload
	var fileURL string
	fh, err := c.FormFile(backend.FieldFile)
	switch {
	case err == nil:
		stored := ulid.Make().String() + "_" + filepath.Base(fh.Filename)
		dst := filepath.Join(h.UploadsDir, stored)
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			log.Error("failed to store upload", "name", fh.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not store upload"})
			return
		}
		upload = &Upload{Name: filepath.Base(fh.Filename), Size: fh.Size, MIMEType: "application/octet-stream"}
		if mt, err := mimetype.DetectFile(dst); err == nil {
			upload.MIMEType = mt.String()
		}
		fileURL = uploadsRoute + "/" + stored
		log.Info("stored upload", "name", upload.Name, "mime", upload.MIMEType, "size", upload.Size)
	case errors.Is(err, http.ErrMissingFile):
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "malformed multipart body"})
		return
	}

	now := time.Now()
	userMsg := &Message{
		MessageID: ulid.Make().String(),
		UserID:    userID,
		Role:      RoleUser,
		Text:      prompt,
		FileURL:   fileURL,
		CreatedAt: now,
	}
	if err := h.Repo.InsertMessage(ctx, userMsg); err != nil {
		log.Error("failed to store message", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "db error"})
		return
	}

	botMsg := &Message{
		MessageID: ulid.Make().String(),
		UserID:    userID,
		Role:      RoleBot,
		Text:      Reply(prompt, upload),
		CreatedAt: time.Now(),
	}
	if err := h.Repo.InsertMessage(ctx, botMsg); err != nil {
		log.Error("failed to store reply", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "db error"})
		return
	}

	history, err := h.Repo.History(ctx, userID)
	if err != nil {
		log.Error("failed to load history", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "db error"})
		return
	}

	resp := make([]messageResp, 0, len(history))
	for _, m := range history {
		resp = append(resp, toResp(m))
	}
	log.Debug("answered", "user", userID, "history_len", len(resp))
	c.JSON(http.StatusOK, resp)
}

// EnsureUploadsDir creates dir if it does not exist.
func EnsureUploadsDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
