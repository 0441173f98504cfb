package http

import (
	"net/http"

	"github.com/cossmil/asistencia-backend/internal/domain/zone"
	"github.com/cossmil/asistencia-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ZoneHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type zoneHandlerImpl struct {
	zoneService zone.ZoneService
}

func NewZoneHandler(zoneService zone.ZoneService) ZoneHandler {
	return &zoneHandlerImpl{
		zoneService: zoneService,
	}
}

// List implements ZoneHandler.
func (h *zoneHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.zoneService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get implements ZoneHandler.
func (h *zoneHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.zoneService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements ZoneHandler.
func (h *zoneHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req zone.CreateZoneRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.zoneService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Zone created successfully", result)
}

// Update implements ZoneHandler.
func (h *zoneHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req zone.UpdateZoneRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.zoneService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Zone updated successfully", result)
}

// Delete implements ZoneHandler. Zones are deactivated, not removed.
func (h *zoneHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.zoneService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Zone deleted successfully", nil)
}
