// Package http serves the server-rendered dashboard and the small JSON API
// on top of the session store.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"golang.org/x/text/language"

	"pocket/internal/log"
	"pocket/internal/middleware/ratelimit"
	"pocket/internal/middleware/security"
	"pocket/internal/middleware/trace"
	"pocket/internal/session"
	appweb "pocket/web"
)

const (
	sessionCookie = "pocket_session"
	langCookie    = "pocket_lang"

	// recentLimit is how many transactions the dashboard lists.
	recentLimit = 20

	maxBodyBytes = 64 << 10
)

// Options configures NewServer.
type Options struct {
	Addr               string
	DefaultLanguage    language.Tag
	RateLimitPerMinute int
	// SecureCookies marks the session cookie Secure; enable behind TLS.
	SecureCookies bool
}

type Server struct {
	http.Server
	templates *template.Template
	sessions  *session.Store
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	tracer    *trace.Middleware
	logger    *log.Logger
	opts      Options
	started   time.Time

	shutdownOnce sync.Once
}

// NewServer parses the embedded templates and wires routes and middleware.
func NewServer(opts Options, sessions *session.Store, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Nop()
	}
	if opts.DefaultLanguage == language.Und {
		opts.DefaultLanguage = language.English
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: t,
		sessions:  sessions,
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:  security.NewDetector(),
		logger:    logger.WithComponent(log.ComponentHTTP),
		opts:      opts,
		started:   time.Now(),
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ClientIP)

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("POST /transactions", s.handleAction(log.OpCreate, createTransaction))
	mux.HandleFunc("POST /transactions/{id}", s.handleAction(log.OpUpdate, editTransaction))
	mux.HandleFunc("POST /goals", s.handleAction(log.OpCreate, createGoal))
	mux.HandleFunc("POST /goals/{id}", s.handleAction(log.OpUpdate, editGoal))
	mux.HandleFunc("POST /recurring", s.handleAction(log.OpCreate, createRecurring))
	mux.HandleFunc("POST /currency", s.handleAction(log.OpCurrency, setCurrency))

	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/series", s.handleSeries)

	var h http.Handler = mux
	h = security.NoStore(h)
	h = s.limiter.Middleware(s.detector.ClientIP, s.onRateLimited)(h)
	h = s.flagProbes(h)
	h = security.Headers(security.DefaultHeadersConfig())(h)
	h = s.tracer.Middleware(h)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Shutdown stops background goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).Warn("Rate limit exceeded",
		log.FieldClientIP, s.detector.ClientIP(r),
		log.FieldPath, r.URL.Path)
	http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
}

// flagProbes logs scanner-looking requests. They are still served.
func (s *Server) flagProbes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.Suspicious(r) {
			log.FromContext(r.Context()).Warn("Suspicious request",
				log.FieldClientIP, s.detector.ClientIP(r),
				log.FieldPath, r.URL.Path,
				log.FieldUserAgent, r.UserAgent())
		}
		next.ServeHTTP(w, r)
	})
}
