package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/metrics"
	"github.com/Kerhoff/rentbook/internal/repository"
	"github.com/Kerhoff/rentbook/internal/service"
	"github.com/Kerhoff/rentbook/internal/validation"
)

// Server provides the JSON HTTP API.
type Server struct {
	svc       *service.Service
	logger    *logrus.Logger
	metrics   *metrics.Metrics
	jwtSecret []byte
	webhooks  map[string]http.Handler
	router    chi.Router
}

// Option configures a Server
type Option func(*Server)

// WithMetrics records request metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithJWTSecret requires an HS256 bearer token on /api routes
func WithJWTSecret(secret string) Option {
	return func(s *Server) {
		if secret != "" {
			s.jwtSecret = []byte(secret)
		}
	}
}

// WithWebhook mounts h for POST requests on path, outside bearer auth
func WithWebhook(path string, h http.Handler) Option {
	return func(s *Server) {
		if s.webhooks == nil {
			s.webhooks = make(map[string]http.Handler)
		}
		s.webhooks[path] = h
	}
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, logger *logrus.Logger, opts ...Option) *Server {
	s := &Server{svc: svc, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.observe)
	}

	r.Get("/health", s.handleHealth)
	for path, h := range s.webhooks {
		r.Method(http.MethodPost, path, h)
	}

	r.Route("/api", func(r chi.Router) {
		if s.jwtSecret != nil {
			r.Use(s.bearerAuth)
		}

		r.Get("/dashboard", s.handleDashboard)

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", s.handleListProperties)
			r.Post("/", s.handleCreateProperty)
			r.Get("/stats", s.handlePropertyStats)
			r.Get("/{id}", s.handleGetProperty)
			r.Patch("/{id}", s.handleUpdateProperty)
			r.Delete("/{id}", s.handleDeleteProperty)
			r.Get("/{id}/rooms", s.handlePropertyRooms)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", s.handleListRooms)
			r.Post("/", s.handleCreateRoom)
			r.Get("/stats", s.handleRoomStats)
			r.Get("/{id}", s.handleGetRoom)
			r.Patch("/{id}", s.handleUpdateRoom)
			r.Delete("/{id}", s.handleDeleteRoom)
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Get("/", s.handleListTenants)
			r.Post("/", s.handleCreateTenant)
			r.Get("/stats", s.handleTenantStats)
			r.Get("/{id}", s.handleGetTenant)
			r.Patch("/{id}", s.handleUpdateTenant)
			r.Delete("/{id}", s.handleDeleteTenant)
			r.Post("/{id}/vacate", s.handleVacateTenant)
			r.Post("/{id}/members", s.handleAddMember)
			r.Delete("/{id}/members/{memberID}", s.handleRemoveMember)
			r.Post("/{id}/documents", s.handleAddDocument)
			r.Delete("/{id}/documents/{documentID}", s.handleRemoveDocument)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", s.handleListPayments)
			r.Post("/", s.handleCreatePayment)
			r.Get("/stats", s.handlePaymentStats)
			r.Post("/record", s.handleRecordPayment)
			r.Get("/{id}", s.handleGetPayment)
			r.Patch("/{id}", s.handleUpdatePayment)
			r.Delete("/{id}", s.handleDeletePayment)
			r.Post("/{id}/paid", s.handleMarkPaid)
		})
	})

	s.router = r
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

type validationResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields"`
}

// respondServiceError maps service and store errors onto status codes.
// Anything unrecognised is logged and reported as a 500 naming the action.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case validation.IsValidationError(err):
		s.respondJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  "validation failed",
			Fields: validation.Fields(err),
		})
	case errors.Is(err, repository.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrMemberNotFound), errors.Is(err, service.ErrDocumentNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMemberLimit):
		s.respondError(w, http.StatusConflict, err.Error())
	default:
		s.logger.WithError(err).WithField("request_id", middleware.GetReqID(r.Context())).Errorf("failed to %s", action)
		s.respondError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil || r.Body == http.NoBody {
		return false, "request body is empty"
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return false, fmt.Sprintf("failed to read body: %v", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return false, "request body is empty"
	}
	if err := json.Unmarshal(expandDates(body), dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// dateFields may be sent as plain YYYY-MM-DD form dates
var dateFields = []string{"move_in_date", "move_out_date", "due_date", "paid_date"}

// expandDates rewrites top-level date-only values to midnight UTC timestamps.
// Anything that is not a JSON object is returned unchanged.
func expandDates(body []byte) []byte {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return body
	}
	changed := false
	for _, key := range dateFields {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		day, err := time.Parse(time.DateOnly, value)
		if err != nil {
			continue
		}
		obj[key], _ = json.Marshal(day.UTC())
		changed = true
	}
	if !changed {
		return body
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return body
	}
	return out
}

// searchFields parses the comma separated fields parameter, falling back to defaults
func searchFields(r *http.Request, defaults []string) []string {
	raw := strings.TrimSpace(r.URL.Query().Get("fields"))
	if raw == "" {
		return defaults
	}
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
