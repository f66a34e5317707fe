package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kerhoff/rentbook/internal/dashboard"
	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/validation"
)

// handleListRooms supports q, fields, status and property_id query parameters
func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fields, err := dashboard.SelectFields(dashboard.RoomFields, searchFields(r, dashboard.DefaultRoomFields))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	status := models.RoomStatus(query.Get("status"))
	if status != "" && !status.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid status: "+string(status))
		return
	}

	rooms, err := s.svc.ListRooms(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list rooms")
		return
	}
	if propertyID := query.Get("property_id"); propertyID != "" {
		rooms = dashboard.RoomsByProperty(rooms, propertyID)
	}
	rooms = dashboard.Search(rooms, query.Get("q"), fields...)
	rooms = dashboard.FilterRooms(rooms, "", status)
	s.respondJSON(w, http.StatusOK, nonNil(rooms))
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var room models.Room
	if ok, msg := s.decodeJSON(r, &room); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	validation.SanitizeRoom(&room)
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	if err := validation.ValidateRoom(&room); err != nil {
		s.respondServiceError(w, r, err, "create room")
		return
	}
	created, err := s.svc.AddRoom(r.Context(), &room)
	if err != nil {
		s.respondServiceError(w, r, err, "create room")
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.svc.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, r, err, "get room")
		return
	}
	s.respondJSON(w, http.StatusOK, room)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	var patch models.RoomPatch
	if ok, msg := s.decodeJSON(r, &patch); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	validation.SanitizePtr(patch.Number)
	if err := validation.ValidateRoomPatch(patch); err != nil {
		s.respondServiceError(w, r, err, "update room")
		return
	}
	updated, err := s.svc.UpdateRoom(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.respondServiceError(w, r, err, "update room")
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondServiceError(w, r, err, "delete room")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRoomStats(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.svc.ListRooms(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "list rooms")
		return
	}
	s.respondJSON(w, http.StatusOK, dashboard.CalculateRoomStats(rooms))
}
