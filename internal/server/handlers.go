package server

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/genai"
	"github.com/alkime/teeshot/internal/images"
	"github.com/alkime/teeshot/internal/render"
	"github.com/alkime/teeshot/internal/session"
	"github.com/alkime/teeshot/internal/sheet"
	"github.com/alkime/teeshot/internal/studio"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

type sessionResponse struct {
	ID          string              `json:"id"`
	Format      content.Format      `json:"format"`
	Model       string              `json:"model,omitempty"`
	Content     string              `json:"content"`
	Suggestions []string            `json:"suggestions"`
	Citations   []content.Citation  `json:"citations"`
	Prompts     []string            `json:"prompts"`
	Images      images.Statuses     `json:"images"`
	Descriptors []render.Descriptor `json:"descriptors"`
}

func newSessionResponse(s *session.Session) sessionResponse {
	return sessionResponse{
		ID:          s.ID,
		Format:      s.Format,
		Model:       s.Generated.Model,
		Content:     s.Generated.Content,
		Suggestions: s.Suggestions(),
		Citations:   s.Generated.Citations,
		Prompts:     s.Prompts(),
		Images:      s.Images().Snapshot(),
		Descriptors: s.Descriptors(),
	}
}

type importRequest struct {
	Input   content.Input `json:"input"`
	Content string        `json:"content" binding:"required"`
}

type promptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type videoRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	AspectRatio string `json:"aspect_ratio"`
	Resolution  string `json:"resolution"`
}

func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats": content.AllFormats(),
		"catalog": s.catalog,
	})
}

func (s *Server) handleQuickInput(c *gin.Context) {
	format, err := content.ParseFormat(c.DefaultQuery("format", string(content.Card)))
	if err != nil {
		badRequest(c, err)
		return
	}

	//nolint:gosec // keyword picking does not need a secure source
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	c.JSON(http.StatusOK, s.catalog.Quick(rng, format))
}

func (s *Server) handleGenerate(c *gin.Context) {
	var in content.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := in.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, s.config.GenerateTimeout)
	defer cancel()

	sess, err := s.studio.Generate(ctx, in)
	if err != nil {
		s.upstreamError(c, "Content generation failed", err)
		return
	}

	c.JSON(http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleImport(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Input.Format == "" {
		req.Input.Format = content.Detect(req.Content, "")
	}

	sess, err := s.studio.Import(req.Input, req.Content)
	if err != nil {
		s.logger.Error("Failed to import content", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) loadSession(c *gin.Context) {
	sess, ok := s.studio.Sessions().Get(c.Param("id"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Set(sessionKey, sess)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	sess, _ := c.MustGet(sessionKey).(*session.Session)
	return sess
}

func (s *Server) handleSession(c *gin.Context) {
	c.JSON(http.StatusOK, newSessionResponse(currentSession(c)))
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	s.studio.Sessions().Delete(currentSession(c).ID)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSessionHTML(c *gin.Context) {
	out, err := render.HTML(currentSession(c).Descriptors())
	if err != nil {
		s.logger.Error("Failed to render HTML", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (s *Server) handleExport(c *gin.Context) {
	row := currentSession(c).Row()
	if row == nil {
		c.Status(http.StatusNoContent)
		return
	}

	if c.Query("as") == "json" {
		c.JSON(http.StatusOK, gin.H{"row": row, "columns": len(row)})
		return
	}
	c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", []byte(sheet.EncodeTSV(row)))
}

func (s *Server) handleImageStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Images().Snapshot())
}

func (s *Server) handleGenerateImage(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, s.config.GenerateTimeout)
	defer cancel()

	st, err := s.studio.GenerateImage(ctx, currentSession(c), req.Prompt)
	switch {
	case errors.Is(err, studio.ErrUnknownPrompt), errors.Is(err, images.ErrEmptyPrompt):
		badRequest(c, err)
	case err != nil:
		s.upstreamError(c, "Image generation failed", err)
	default:
		c.JSON(http.StatusOK, gin.H{"prompt": strings.TrimSpace(req.Prompt), "status": st})
	}
}

func (s *Server) handleGenerateAllImages(c *gin.Context) {
	sess := currentSession(c)
	err := s.studio.StartAllImages(s.background, sess, func(err error) {
		if err != nil {
			s.logger.Warn("Image batch finished with errors", "session", sess.ID, "error", err)
		}
	})
	if errors.Is(err, studio.ErrBatchRunning) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"prompts": sess.Prompts()})
}

func (s *Server) handleDeleteImage(c *gin.Context) {
	prompt := c.Query("prompt")
	if strings.TrimSpace(prompt) == "" {
		badRequest(c, images.ErrEmptyPrompt)
		return
	}

	if err := s.studio.DeleteImage(c.Request.Context(), currentSession(c), prompt); err != nil {
		s.logger.Error("Failed to delete image", "prompt", prompt, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDownloadImage(c *gin.Context) {
	prompt := c.Query("prompt")
	st := currentSession(c).Images().Status(prompt)
	if st.State != images.Ready {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not ready"})
		return
	}

	data, err := images.DecodeDataURL(st.LocalURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+images.DownloadName(prompt)+`"`)
	c.Data(http.StatusOK, images.MIMEType(data), data)
}

func (s *Server) handleVideo(c *gin.Context) {
	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, s.config.GenerateTimeout)
	defer cancel()

	data, err := s.studio.GenerateVideo(ctx, req.Prompt, genai.VideoOptions{
		AspectRatio: req.AspectRatio,
		Resolution:  req.Resolution,
	})
	switch {
	case errors.Is(err, studio.ErrNoVideo):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, images.ErrEmptyPrompt):
		badRequest(c, err)
	case err != nil:
		s.upstreamError(c, "Video generation failed", err)
	default:
		c.Data(http.StatusOK, "video/mp4", data)
	}
}
