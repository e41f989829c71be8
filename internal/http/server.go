// Package http serves the funding dashboard: server-rendered views over the
// loaded dataset plus a small JSON API mirroring each view's numbers.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/analysis"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/cache"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/config"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
	applog "github.com/hbarsaiyan/indian-startup-funding-analysis/internal/log"
	appweb "github.com/hbarsaiyan/indian-startup-funding-analysis/web"
)

type Server struct {
	http.Server
	templates   *template.Template
	snapshot    *analysis.Snapshot
	topNDefault int
	rateLimiter *rateLimiter
	requestLog  *applog.StructuredLogger

	// Rendered profiles are cached per entity name. The dataset is immutable
	// so entries only ever age out, never go stale.
	startupCache  *cache.LRUCache[core.StartupProfile]
	investorCache *cache.LRUCache[core.InvestorProfile]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(cfg *config.Config, snapshot *analysis.Snapshot) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    ":" + cfg.Port,
			Handler: mux,
		},
		snapshot:      snapshot,
		topNDefault:   cfg.TopNDefault,
		rateLimiter:   newRateLimiter(),
		requestLog:    applog.NewStructuredLogger(applog.Default()),
		startupCache:  cache.NewLRUCache[core.StartupProfile](cfg.CacheSize, cfg.CacheTTL),
		investorCache: cache.NewLRUCache[core.InvestorProfile](cfg.CacheSize, cfg.CacheTTL),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.startupCache)
	s.cacheManager.Register(s.investorCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	// UI partials
	mux.HandleFunc("/ui/overall", s.withSecurityHeaders(s.handleOverallView))
	mux.HandleFunc("/ui/startup", s.withSecurityHeaders(s.handleStartupView))
	mux.HandleFunc("/ui/investor", s.withSecurityHeaders(s.handleInvestorView))
	// JSON API
	mux.HandleFunc("/api/overall", s.withSecurityHeaders(s.handleAPIOverall))
	mux.HandleFunc("/api/monthly", s.withSecurityHeaders(s.handleAPIMonthly))
	mux.HandleFunc("/api/top", s.withSecurityHeaders(s.handleAPITop))
	mux.HandleFunc("/api/startups", s.withSecurityHeaders(s.handleAPIStartupNames))
	mux.HandleFunc("/api/startup", s.withSecurityHeaders(s.handleAPIStartup))
	mux.HandleFunc("/api/investors", s.withSecurityHeaders(s.handleAPIInvestorNames))
	mux.HandleFunc("/api/investor", s.withSecurityHeaders(s.handleAPIInvestor))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.requestLog.LogHTTPStart(ctx, r, clientIP, requestID)

		if !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.requestLog.LogHTTPEnd(ctx, r.Method, r.URL.Path, rw.statusCode, time.Since(start), clientIP, requestID)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusServiceUnavailable)
		return
	}
	if s.snapshot == nil || s.snapshot.Len() == 0 {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// getStartup resolves a startup profile through the per-name cache.
func (s *Server) getStartup(name string) core.StartupProfile {
	if profile, found := s.startupCache.Get(name); found {
		return profile
	}
	profile := s.snapshot.Startup(name)
	s.startupCache.Set(name, profile)
	return profile
}

// getInvestor resolves an investor profile through the per-name cache.
func (s *Server) getInvestor(name string) core.InvestorProfile {
	if profile, found := s.investorCache.Get(name); found {
		return profile
	}
	profile := s.snapshot.Investor(name)
	s.investorCache.Set(name, profile)
	return profile
}
