package http

import (
	"net/http"

	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/master/role"
	"github.com/cossmil/asistencia-backend/internal/handler/http/response"
	"github.com/cossmil/asistencia-backend/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	// Area handlers
	CreateArea(w http.ResponseWriter, r *http.Request)
	GetArea(w http.ResponseWriter, r *http.Request)
	ListAreas(w http.ResponseWriter, r *http.Request)
	UpdateArea(w http.ResponseWriter, r *http.Request)
	DeleteArea(w http.ResponseWriter, r *http.Request)

	// Role handlers
	CreateRole(w http.ResponseWriter, r *http.Request)
	GetRole(w http.ResponseWriter, r *http.Request)
	ListRoles(w http.ResponseWriter, r *http.Request)
	ListRolesByArea(w http.ResponseWriter, r *http.Request)
	ListRolesBySupervisor(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	DeleteRole(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== AREA HANDLERS ====================

func (h *masterHandlerImpl) CreateArea(w http.ResponseWriter, r *http.Request) {
	var req area.CreateAreaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateArea(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Area created successfully", result)
}

func (h *masterHandlerImpl) GetArea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.masterService.GetArea(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListAreas(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListAreas(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateArea(w http.ResponseWriter, r *http.Request) {
	var req area.UpdateAreaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateArea(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Area updated successfully", result)
}

func (h *masterHandlerImpl) DeleteArea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteArea(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Area deleted successfully", nil)
}

// ==================== ROLE HANDLERS ====================

func (h *masterHandlerImpl) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req role.CreateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.masterService.CreateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Role created successfully", result)
}

func (h *masterHandlerImpl) GetRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.masterService.GetRole(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListRoles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) ListRolesByArea(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListRolesByArea(r.Context(), chi.URLParam(r, "areaId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) ListRolesBySupervisor(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListRolesBySupervisor(r.Context(), chi.URLParam(r, "personalAreaId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req role.UpdateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated successfully", result)
}

func (h *masterHandlerImpl) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteRole(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role deleted successfully", nil)
}
