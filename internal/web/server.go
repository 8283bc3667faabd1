// Package web serves the portfolio over HTTP. Every page load opens a view
// that owns its own section tracker, journey carousel and skills panel; the
// browser drives them with HTMX requests and renders the returned fragments.
package web

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/clock"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const sweepInterval = time.Minute

// Server is the portfolio web host.
type Server struct {
	cfg       *config.Config
	portfolio *content.Portfolio
	store     *analytics.Store
	mailer    Mailer
	scheduler clock.Scheduler
	views     *Registry
	engine    *gin.Engine

	adminToken string
	page       pageContent
	bg         sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables visitor and section analytics.
func WithStore(store *analytics.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithMailer replaces the SMTP contact mailer.
func WithMailer(m Mailer) Option {
	return func(s *Server) {
		s.mailer = m
	}
}

// WithScheduler replaces the timer used by carousel and skills transitions.
func WithScheduler(sched clock.Scheduler) Option {
	return func(s *Server) {
		s.scheduler = sched
	}
}

// New builds the router and the view registry.
func New(cfg *config.Config, portfolio *content.Portfolio, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:       cfg,
		portfolio: portfolio,
		scheduler: clock.Real{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mailer == nil {
		s.mailer = NewSMTPMailer(cfg.SMTP)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	s.adminToken = token

	page, err := buildPageContent(portfolio)
	if err != nil {
		return nil, err
	}
	s.page = page

	s.views = NewRegistry(cfg.ViewTTL, s.buildView)

	gin.SetMode(cfg.Mode)
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, errors.Wrap(err, "static assets")
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))
	r.Use(s.visitorTrackingMiddleware())
	s.engine = r
	s.routes()
	s.setupAdminRoutes()
	return s, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "generating admin token")
	}
	return hex.EncodeToString(b), nil
}

// buildView wires a fresh tracker onto the view's measured layout.
func (s *Server) buildView(v *view) {
	v.tracker = nav.New(v.layout, v.scroller,
		nav.WithThresholds(nav.Thresholds{
			ScrolledAfter: s.cfg.Nav.ScrolledAfter,
			BottomSlack:   s.cfg.Nav.BottomSlack,
			LookAhead:     s.cfg.Nav.LookAhead,
			PreTrigger:    s.cfg.Nav.PreTrigger,
		}),
		nav.WithOnChange(func(_, next nav.SectionID) {
			s.recordSection(v.clientIP, next)
		}),
	)
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.engine
}

// Views returns the open view registry.
func (s *Server) Views() *Registry {
	return s.views
}

// background runs fn detached from the request, bounded by a timeout.
func (s *Server) background(fn func(ctx context.Context)) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		fn(ctx)
	}()
}

// Wait blocks until background analytics writes finish.
func (s *Server) Wait() {
	s.bg.Wait()
}

func (s *Server) recordSection(ip string, section nav.SectionID) {
	if s.store == nil || section == nav.None {
		return
	}
	s.background(func(ctx context.Context) {
		if err := s.store.RecordSectionView(ctx, ip, string(section)); err != nil {
			log.Printf("Error recording section view: %v", err)
		}
	})
}

// Run serves until ctx is cancelled, then shuts down and closes every view.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.views.Run(sweepCtx, sweepInterval)

	if s.store != nil {
		s.background(func(ctx context.Context) {
			if _, err := s.store.Cleanup(ctx, analytics.Retention); err != nil {
				log.Printf("Error cleaning up old visitor data: %v", err)
			}
		})
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Portfolio listening on :%s", s.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = errors.Wrap(err, "serving http")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			runErr = errors.Wrap(err, "shutting down")
		}
	}

	s.views.CloseAll()
	s.Wait()
	return runErr
}
