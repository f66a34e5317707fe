package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Kerhoff/rentbook/internal/dashboard"
	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/validation"
)

// createTenantRequest lets is_active default to true when omitted
type createTenantRequest struct {
	models.Tenant
	IsActive *bool `json:"is_active"`
}

// handleListTenants supports q, fields, active, property_id and room_id query parameters
func (s *Server) handleListTenants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fields, err := dashboard.SelectFields(dashboard.TenantFields, searchFields(r, dashboard.DefaultTenantFields))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var active *bool
	if raw := query.Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid active flag: "+raw)
			return
		}
		active = &v
	}

	tenants, err := s.svc.ListTenants(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list tenants")
		return
	}
	if propertyID := query.Get("property_id"); propertyID != "" {
		tenants = dashboard.TenantsByProperty(tenants, propertyID)
	}
	roomID := query.Get("room_id")
	out := make([]*models.Tenant, 0, len(tenants))
	for _, t := range dashboard.Search(tenants, query.Get("q"), fields...) {
		if active != nil && t.IsActive != *active {
			continue
		}
		if roomID != "" && t.RoomID != roomID {
			continue
		}
		out = append(out, t)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	t := req.Tenant
	t.IsActive = req.IsActive == nil || *req.IsActive
	validation.SanitizeTenant(&t)
	if err := validation.ValidateTenant(&t); err != nil {
		s.respondServiceError(w, r, err, "create tenant")
		return
	}
	created, err := s.svc.AddTenant(r.Context(), &t)
	if err != nil {
		s.respondServiceError(w, r, err, "create tenant")
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.GetTenant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, r, err, "get tenant")
		return
	}
	s.respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	var patch models.TenantPatch
	if ok, msg := s.decodeJSON(r, &patch); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	validation.SanitizeTenantPatch(&patch)
	if err := validation.ValidateTenantPatch(patch); err != nil {
		s.respondServiceError(w, r, err, "update tenant")
		return
	}
	updated, err := s.svc.UpdateTenant(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.respondServiceError(w, r, err, "update tenant")
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTenant(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondServiceError(w, r, err, "delete tenant")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVacateTenant(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.VacateTenant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, r, err, "vacate tenant")
		return
	}
	s.respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleTenantStats(w http.ResponseWriter, r *http.Request) {
	tenants, err := s.svc.ListTenants(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list tenants")
		return
	}
	s.respondJSON(w, http.StatusOK, dashboard.CalculateTenantStats(tenants))
}

// ---------------------------------------------------------------------------
// Household members and documents
// ---------------------------------------------------------------------------

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var m models.HouseholdMember
	if ok, msg := s.decodeJSON(r, &m); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	validation.SanitizeMember(&m)
	if err := validation.ValidateMember(&m); err != nil {
		s.respondServiceError(w, r, err, "add household member")
		return
	}
	t, err := s.svc.AddHouseholdMember(r.Context(), chi.URLParam(r, "id"), m)
	if err != nil {
		s.respondServiceError(w, r, err, "add household member")
		return
	}
	s.respondJSON(w, http.StatusCreated, t)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.RemoveHouseholdMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "memberID"))
	if err != nil {
		s.respondServiceError(w, r, err, "remove household member")
		return
	}
	s.respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	var d models.Document
	if ok, msg := s.decodeJSON(r, &d); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	d.Name = validation.Sanitize(d.Name)
	if err := validation.ValidateDocument(&d); err != nil {
		s.respondServiceError(w, r, err, "add document")
		return
	}
	t, err := s.svc.AddDocument(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		s.respondServiceError(w, r, err, "add document")
		return
	}
	s.respondJSON(w, http.StatusCreated, t)
}

func (s *Server) handleRemoveDocument(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.RemoveDocument(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "documentID"))
	if err != nil {
		s.respondServiceError(w, r, err, "remove document")
		return
	}
	s.respondJSON(w, http.StatusOK, t)
}
