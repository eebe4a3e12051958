package server

import (
	"bytes"
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/publisher"
	"github.com/shouni/go-pixetale/pkg/state"
)

const controllerKey = "controller"

type heroRequest struct {
	Name     string `json:"name" binding:"max=80"`
	Gender   string `json:"gender" binding:"max=40"`
	Hair     string `json:"hair" binding:"max=120"`
	Eyes     string `json:"eyes" binding:"max=120"`
	Clothing string `json:"clothing" binding:"max=200"`
}

type startRequest struct {
	Topic    string       `json:"topic" binding:"max=500"`
	Language string       `json:"language"`
	Hero     *heroRequest `json:"hero"`
}

func (h *heroRequest) traits() *domain.HeroTraits {
	if h == nil {
		return nil
	}
	return &domain.HeroTraits{
		Name:     h.Name,
		Gender:   domain.Gender(h.Gender),
		Hair:     h.Hair,
		Eyes:     h.Eyes,
		Clothing: h.Clothing,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func abortWithError(c *gin.Context, code int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, errorResponse{Error: err.Error()})
}

// withSession は :id のセッションを解決してからハンドラーを呼ぶのだ。
func (s *Server) withSession(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := s.sessions.Get(c.Param("id"))
		if !ok {
			abortWithError(c, http.StatusNotFound, errors.New("session not found"))
			return
		}
		c.Set(controllerKey, ctrl)
		next(c)
	}
}

func controllerFrom(c *gin.Context) *state.Controller {
	return c.MustGet(controllerKey).(*state.Controller)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	id := s.sessions.Create(s.newController())
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) handleGetSession(c *gin.Context) {
	c.JSON(http.StatusOK, controllerFrom(c).Snapshot())
}

func (s *Server) handleStart(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	ctrl := controllerFrom(c)
	if _, err := ctrl.Start(c.Request.Context(), req.Topic, lang, req.Hero.traits()); err != nil {
		switch {
		case errors.Is(err, state.ErrEmptyTopic):
			abortWithError(c, http.StatusBadRequest, err)
		case errors.Is(err, state.ErrBusy):
			abortWithError(c, http.StatusConflict, err)
		default:
			abortWithError(c, http.StatusInternalServerError, err)
		}
		return
	}
	c.JSON(http.StatusAccepted, ctrl.Snapshot())
}

func (s *Server) handleRestart(c *gin.Context) {
	ctrl := controllerFrom(c)
	ctrl.Restart()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func (s *Server) handleExport(c *gin.Context) {
	format, err := publisher.ParseFormat(c.Param("format"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, err)
		return
	}
	snap := controllerFrom(c).Snapshot()
	if snap.Status != domain.StatusReady || snap.Story == nil {
		abortWithError(c, http.StatusConflict, errors.New("the storybook is not ready yet"))
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, format, snap.Story); err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": publisher.FileName(snap.Story, format),
	})
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
