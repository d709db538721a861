// Package api wires the gin engine, session store and routes.
package api

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yuzuhara/betbook/api/auth"
	"github.com/yuzuhara/betbook/api/handler"
	"github.com/yuzuhara/betbook/config"
	"github.com/yuzuhara/betbook/database"
	"github.com/yuzuhara/betbook/web"
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	db        *database.Client
}

func New(cfg *config.Config, db *database.Client, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		db:        db,
	}
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.ginEngine.SetHTMLTemplate(web.Templates())
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupSession() {
	sessionKey := s.cfg.SessionKey
	if sessionKey == "" {
		sessionKey = uuid.New().String()
		log.Warn("no session_key configured, sessions won't survive a restart")
	}
	store := cookie.NewStore([]byte(sessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("betbook_session", store))
}

func (s *Server) setupRoutes() {
	s.setupSession()

	h := handler.New(s.db)

	s.ginEngine.GET("/register", h.RegisterPage)
	s.ginEngine.POST("/register", h.Register)
	s.ginEngine.GET("/login", h.LoginPage)
	s.ginEngine.POST("/login", h.Login)

	protected := s.ginEngine.Group("/")
	protected.Use(auth.RequireAuth())

	protected.GET("/", h.Home)
	protected.GET("/logout", h.Logout)
	protected.GET("/bait", h.Bait)
	protected.POST("/bait", h.RecordBait)
	protected.GET("/koinushi", h.Koinushi)

	// Invite actions are plain GETs for compatibility with the existing
	// pages, even though they mutate state.
	employer := protected.Group("/employer")
	employer.GET("/history", h.EmployerHistory)
	employer.GET("/invite", h.EmployerInvite)
	employer.GET("/send_invite/:id", h.SendInvite)

	employee := protected.Group("/employee")
	employee.GET("/invitations", h.EmployeeInvitations)
	employee.GET("/accept_invite/:id", h.AcceptInvite)
	employee.GET("/reject_invite/:id", h.RejectInvite)
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.ginEngine
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
