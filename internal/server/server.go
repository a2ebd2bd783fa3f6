package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/cloudflex/assistant/internal/chat"
	"github.com/cloudflex/assistant/internal/chatbot"
	"github.com/cloudflex/assistant/internal/config"
	"github.com/cloudflex/assistant/internal/db"
	"github.com/cloudflex/assistant/internal/interview"
	"github.com/cloudflex/assistant/internal/knowledge"
	"github.com/cloudflex/assistant/internal/server/middleware"
	"github.com/cloudflex/assistant/internal/server/ratelimit"
	"github.com/go-playground/validator/v10"
)

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	shutdownTimeout time.Duration
	allowedOrigins  []string

	tables     *knowledge.Tables
	responder  *chatbot.Responder
	chats      *chat.Manager
	interviews *interview.Manager
	store      db.Store

	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	admin       *config.AdminConfig
	passwords   *config.PasswordConfig
	validator   *validator.Validate

	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Config holds server configuration. Only Addr is required; a nil Store
// disables the lead endpoints and a nil Admin disables the admin endpoints.
type Config struct {
	Addr            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	Tables    *knowledge.Tables
	Store     db.Store
	Chat      config.ChatConfig
	Admin     *config.AdminConfig
	Passwords *config.PasswordConfig
	RateLimit *ratelimit.Config
}

// New creates a new server instance. Background work stops on Close or Start's return.
func New(cfg Config) (*Server, error) {
	if cfg.Tables == nil {
		cfg.Tables = knowledge.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}
	if cfg.Admin != nil && cfg.Passwords == nil {
		return nil, fmt.Errorf("admin access requires a password config")
	}

	ctx, cancel := context.WithCancel(context.Background())

	responder := chatbot.NewResponder(cfg.Tables, chatbot.DefaultRules())
	s := &Server{
		shutdownTimeout: cfg.ShutdownTimeout,
		allowedOrigins:  cfg.AllowedOrigins,
		tables:          cfg.Tables,
		responder:       responder,
		chats: chat.NewManager(ctx, responder, chat.ManagerConfig{
			TTL:         cfg.Chat.SessionTTL,
			MaxSessions: cfg.Chat.MaxSessions,
			Options:     chat.Options{MinDelay: cfg.Chat.ReplyMinDelay, MaxDelay: cfg.Chat.ReplyMaxDelay},
		}),
		interviews:  interview.NewManager(cfg.Chat.SessionTTL, cfg.Chat.MaxSessions),
		store:       cfg.Store,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		admin:       cfg.Admin,
		passwords:   cfg.Passwords,
		validator:   validator.New(),
		cancel:      cancel,
	}
	if cfg.Admin != nil {
		s.jwtService = NewJWTService(cfg.Admin)
	}

	if cfg.Chat.SweepInterval > 0 {
		go s.chats.Run(ctx, cfg.Chat.SweepInterval)
		go s.sweepInterviews(ctx, cfg.Chat.SweepInterval)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Chat
	mux.HandleFunc("POST /chat/sessions", s.handleCreateChat)
	mux.HandleFunc("GET /chat/sessions/{id}", s.handleGetChat)
	mux.HandleFunc("POST /chat/sessions/{id}/messages", s.handlePostMessage)
	mux.HandleFunc("GET /chat/sessions/{id}/events", s.handleChatEvents)
	mux.HandleFunc("DELETE /chat/sessions/{id}", s.handleDeleteChat)
	mux.HandleFunc("POST /chat/answer", s.handleAnswer)

	// Resumes and interviews
	mux.HandleFunc("POST /resumes/score", s.handleScoreResume)
	mux.HandleFunc("POST /interviews", s.handleCreateInterview)
	mux.HandleFunc("GET /interviews/{id}", s.handleGetInterview)
	mux.HandleFunc("POST /interviews/{id}/answers", s.handleAnswerInterview)

	// Knowledge
	mux.HandleFunc("GET /knowledge/company", s.handleCompany)
	mux.HandleFunc("GET /knowledge/jobs", s.handleListJobs)
	mux.HandleFunc("GET /knowledge/jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /knowledge/services", s.handleListServices)
	mux.HandleFunc("GET /knowledge/faq", s.handleFAQ)
	mux.HandleFunc("GET /knowledge/visas", s.handleVisas)
	mux.HandleFunc("GET /knowledge/news", s.handleNews)
	mux.HandleFunc("GET /knowledge/pricing", s.handlePricing)
	mux.HandleFunc("GET /knowledge/training", s.handleTraining)

	// Leads
	mux.HandleFunc("POST /leads/contact", s.handleContactLead)
	mux.HandleFunc("POST /leads/applications", s.handleApplicationLead)
	mux.HandleFunc("POST /leads/resume-reviews", s.handleResumeReviewLead)

	// Admin
	mux.HandleFunc("POST /admin/login", s.handleAdminLogin)
	mux.Handle("GET /admin/leads", s.requireAdmin(http.HandlerFunc(s.handleListLeads)))
	mux.Handle("GET /admin/leads/{id}", s.requireAdmin(http.HandlerFunc(s.handleGetLead)))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// No WriteTimeout: chat event streams stay open.
		IdleTimeout: 60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	defer s.Close()

	// Closing sessions first ends their event streams so Shutdown can finish.
	s.cancel()
	s.chats.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Close stops background work, closes live sessions and the lead store.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.chats.CloseAll()
		s.rateLimiter.Stop()
		if s.store != nil {
			s.store.Close()
		}
	})
}

func (s *Server) sweepInterviews(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.interviews.Sweep(now); n > 0 {
				log.Printf("[interview] evicted %d idle interviews", n)
			}
		}
	}
}

// withCORS adds CORS headers for allowed origins
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or "".
// No configured origins means any origin is allowed.
func (s *Server) allowOrigin(origin string) string {
	if len(s.allowedOrigins) == 0 || slices.Contains(s.allowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(s.allowedOrigins, origin) {
		return origin
	}
	return ""
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// requireAdmin guards admin routes with the JWT middleware.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.errorFrom(w, &ErrAdminDisabled{})
		})
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"chat_sessions": s.chats.Len(),
		"interviews":    s.interviews.Len(),
		"lead_store":    s.store != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom maps err to a status and client-safe message.
func (s *Server) errorFrom(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[server] internal error: %v", err)
	}
	s.errorResponse(w, status, publicMessage(err))
}

// extractClientID uses the IP from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// decodeJSON decodes the body into v and validates it, writing the error response on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validator.Struct(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return false
	}
	return true
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return (&ErrValidation{Field: ve.Field(), Message: ve.Tag()}).Error()
	}
	return "validation error: invalid request"
}
