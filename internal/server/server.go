package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shouni/go-pixetale/pkg/publisher"
	"github.com/shouni/go-pixetale/pkg/state"
)

// ControllerFactory は新しいセッション用の Controller を作るのだ。
type ControllerFactory func() *state.Controller

// Server は絵本生成の HTTP API なのだ。
type Server struct {
	sessions      *SessionStore
	newController ControllerFactory
	renderer      *publisher.Renderer
}

// New は Server を生成するのだ。
func New(sessions *SessionStore, factory ControllerFactory, renderer *publisher.Renderer) *Server {
	return &Server{
		sessions:      sessions,
		newController: factory,
		renderer:      renderer,
	}
}

// Router はルーティング済みの gin.Engine を返すのだ。
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/sessions")
	api.POST("", s.handleCreateSession)
	api.GET("/:id", s.withSession(s.handleGetSession))
	api.POST("/:id/start", s.withSession(s.handleStart))
	api.POST("/:id/restart", s.withSession(s.handleRestart))
	api.GET("/:id/exports/:format", s.withSession(s.handleExport))
	return r
}
