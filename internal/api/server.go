package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/khanhnv2901/headercheck/internal/api/middleware"
	"github.com/khanhnv2901/headercheck/internal/auditor"
	consts "github.com/khanhnv2901/headercheck/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/headercheck/internal/shared/errors"
	"go.uber.org/zap"
)

// Auditor is the single operation the presentation layer binds to.
type Auditor interface {
	Check(ctx context.Context, rawURL string) (*auditor.CheckResult, error)
}

// CheckRequest is the JSON body accepted by POST /api/v1/check.
type CheckRequest struct {
	URL string `json:"url"`
}

type Config struct {
	Auditor     Auditor
	Logger      *zap.Logger
	CORSOrigins []string // Allowed CORS origins (empty = same-origin only)
	Version     string
}

type Server struct {
	cfg  Config
	mux  *http.ServeMux
	form *formRenderer
}

func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	srv := &Server{
		cfg:  cfg,
		mux:  http.NewServeMux(),
		form: newFormRenderer(),
	}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Middleware chain: RequestID -> Logging -> CORS -> Handler
	handler := middleware.RequestID(s.withLogging(s.withCORS(s.mux)))
	handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleForm)

	s.mux.HandleFunc("/api/v1/check", s.handleCheck)
	s.mux.HandleFunc("/api/v1/headers", s.handleHeaders)
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)

	// Unversioned aliases
	s.mux.HandleFunc("/api/check", s.handleCheck)
	s.mux.HandleFunc("/api/headers", s.handleHeaders)
	s.mux.HandleFunc("/api/health", s.handleHealth)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	resp := map[string]string{"status": "ok"}
	if s.cfg.Version != "" {
		resp["version"] = s.cfg.Version
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeaders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	writeJSON(w, http.StatusOK, auditor.Headers())
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var target string
	switch r.Method {
	case http.MethodGet:
		target = r.URL.Query().Get("url")
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, consts.MaxRequestBodyBytes)
		var req CheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		target = req.URL
	default:
		s.methodNotAllowed(w, r)
		return
	}

	doc := s.runCheck(r, target)
	writeJSON(w, statusForDocument(doc), doc)
}

// runCheck invokes the auditor and folds its return values into one document.
func (s *Server) runCheck(r *http.Request, target string) auditor.Document {
	start := time.Now()
	res, err := s.cfg.Auditor.Check(r.Context(), target)
	doc := auditor.Outcome(res, err)

	logger := s.requestLogger(r)
	switch d := doc.(type) {
	case *auditor.CheckResult:
		logger.Info("audit_completed",
			zap.String("final_url", d.FinalURL),
			zap.Int("target_status", d.StatusCode),
			zap.String("score", d.Score),
			zap.Duration("duration", time.Since(start)),
		)
	case *auditor.ErrorResult:
		logger.Info("audit_failed",
			zap.String("kind", string(d.Kind)),
			zap.String("error", d.Message),
			zap.Duration("duration", time.Since(start)),
		)
	}
	return doc
}

func statusForDocument(doc auditor.Document) int {
	er, ok := doc.(*auditor.ErrorResult)
	if !ok {
		return http.StatusOK
	}
	if er.Kind == auditor.KindValidation {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Only configured origins are echoed; with none, no CORS headers are sent.
		allowOrigin := ""
		if origin != "" {
			for _, allowedOrigin := range s.cfg.CORSOrigins {
				if allowedOrigin == origin {
					allowOrigin = origin
					break
				}
			}
		}

		if allowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		requestID := middleware.GetRequestID(r.Context())
		s.cfg.Logger.Info("http_request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", lrw.statusCode),
			zap.Duration("duration", time.Since(start)),
			zap.Int64("bytes", lrw.bytesWritten),
		)
	})
}

// loggingResponseWriter wraps http.ResponseWriter to capture status code and bytes written
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(b)
	lrw.bytesWritten += int64(n)
	return n, err
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	msg := err.Error()

	// 5xx details stay in the server log.
	if status >= 500 {
		s.requestLogger(r).Error("internal_server_error",
			zap.Error(err),
			zap.Int("status", status),
		)
		msg = "internal server error"
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger returns a logger carrying request ID, method and path.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	requestID := middleware.GetRequestID(r.Context())
	return s.cfg.Logger.With(
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed, sharedErrors.ErrMethodNotAllowed)
}
