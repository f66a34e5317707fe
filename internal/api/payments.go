package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Kerhoff/rentbook/internal/dashboard"
	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/validation"
)

type recordPaymentRequest struct {
	TenantID string          `json:"tenant_id"`
	Amount   decimal.Decimal `json:"amount"`
	PaidDate *time.Time      `json:"paid_date,omitempty"`
	Notes    *string         `json:"notes,omitempty"`
}

// markPaidRequest is the optional body of POST /api/payments/{id}/paid
type markPaidRequest struct {
	PaidDate *time.Time `json:"paid_date,omitempty"`
}

// handleListPayments supports tenant_id, room_id, property_id, status, overdue and q query parameters
func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fields, err := dashboard.SelectFields(dashboard.PaymentFields, searchFields(r, dashboard.DefaultPaymentFields))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	status := models.PaymentStatus(query.Get("status"))
	if status != "" && !status.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid status: "+string(status))
		return
	}
	overdue := false
	if raw := query.Get("overdue"); raw != "" {
		if overdue, err = strconv.ParseBool(raw); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid overdue flag: "+raw)
			return
		}
	}

	var payments []*models.RentPayment
	if overdue {
		payments, err = s.svc.OverduePayments(r.Context())
	} else {
		payments, err = s.svc.ListPayments(r.Context())
	}
	if err != nil {
		s.respondServiceError(w, r, err, "list payments")
		return
	}
	if id := query.Get("tenant_id"); id != "" {
		payments = dashboard.PaymentsByTenant(payments, id)
	}
	if id := query.Get("room_id"); id != "" {
		payments = dashboard.PaymentsByRoom(payments, id)
	}
	propertyID := query.Get("property_id")
	out := make([]*models.RentPayment, 0, len(payments))
	for _, p := range dashboard.Search(payments, query.Get("q"), fields...) {
		if status != "" && p.Status != status {
			continue
		}
		if propertyID != "" && p.PropertyID != propertyID {
			continue
		}
		out = append(out, p)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var p models.RentPayment
	if ok, msg := s.decodeJSON(r, &p); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	validation.SanitizePayment(&p)
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}
	if err := validation.ValidatePayment(&p); err != nil {
		s.respondServiceError(w, r, err, "create payment")
		return
	}
	created, err := s.svc.AddPayment(r.Context(), &p)
	if err != nil {
		s.respondServiceError(w, r, err, "create payment")
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

// handleRecordPayment stores a payment against the tenant's room, paid now unless paid_date is given
func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	validation.SanitizePtr(req.Notes)
	check := models.RentPayment{TenantID: req.TenantID, Amount: req.Amount, Status: models.PaymentStatusPaid, Notes: req.Notes}
	if err := validation.ValidatePayment(&check); err != nil {
		s.respondServiceError(w, r, err, "record payment")
		return
	}
	created, err := s.svc.RecordPayment(r.Context(), req.TenantID, req.Amount, req.PaidDate, req.Notes)
	if err != nil {
		s.respondServiceError(w, r, err, "record payment")
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, r, err, "get payment")
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var patch models.RentPaymentPatch
	if ok, msg := s.decodeJSON(r, &patch); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	validation.SanitizePtr(patch.Notes)
	if err := validation.ValidatePaymentPatch(patch); err != nil {
		s.respondServiceError(w, r, err, "update payment")
		return
	}
	updated, err := s.svc.UpdatePayment(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.respondServiceError(w, r, err, "update payment")
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	var req markPaidRequest
	if r.Body != nil && r.Body != http.NoBody {
		if ok, msg := s.decodeJSON(r, &req); !ok {
			s.respondError(w, http.StatusBadRequest, msg)
			return
		}
	}
	p, err := s.svc.MarkPaymentPaid(r.Context(), chi.URLParam(r, "id"), req.PaidDate)
	if err != nil {
		s.respondServiceError(w, r, err, "mark payment paid")
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondServiceError(w, r, err, "delete payment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePaymentStats(w http.ResponseWriter, r *http.Request) {
	payments, err := s.svc.ListPayments(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list payments")
		return
	}
	s.respondJSON(w, http.StatusOK, dashboard.CalculateRentStats(payments))
}
