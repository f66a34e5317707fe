package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kerhoff/rentbook/internal/dashboard"
	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/validation"
)

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	fields, err := dashboard.SelectFields(dashboard.PropertyFields, searchFields(r, dashboard.DefaultPropertyFields))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	properties, err := s.svc.ListProperties(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list properties")
		return
	}
	s.respondJSON(w, http.StatusOK, dashboard.Search(properties, r.URL.Query().Get("q"), fields...))
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var p models.Property
	if ok, msg := s.decodeJSON(r, &p); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	validation.SanitizeProperty(&p)
	if err := validation.ValidateProperty(&p); err != nil {
		s.respondServiceError(w, r, err, "create property")
		return
	}
	created, err := s.svc.AddProperty(r.Context(), &p)
	if err != nil {
		s.respondServiceError(w, r, err, "create property")
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, r, err, "get property")
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	var patch models.PropertyPatch
	if ok, msg := s.decodeJSON(r, &patch); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	validation.SanitizePropertyPatch(&patch)
	if err := validation.ValidatePropertyPatch(patch); err != nil {
		s.respondServiceError(w, r, err, "update property")
		return
	}
	updated, err := s.svc.UpdateProperty(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.respondServiceError(w, r, err, "update property")
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.DeleteProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, r, err, "delete property")
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handlePropertyStats(w http.ResponseWriter, r *http.Request) {
	properties, err := s.svc.ListProperties(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list properties")
		return
	}
	s.respondJSON(w, http.StatusOK, dashboard.CalculatePropertyStats(properties))
}

// handlePropertyRooms lists the rooms of one property, 404 when the property is unknown
func (s *Server) handlePropertyRooms(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.svc.GetProperty(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err, "get property")
		return
	}
	rooms, err := s.svc.ListRooms(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list rooms")
		return
	}
	s.respondJSON(w, http.StatusOK, nonNil(dashboard.RoomsByProperty(rooms, id)))
}

// nonNil keeps empty results encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
