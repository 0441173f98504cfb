package http

import (
	"net/http"

	"github.com/cossmil/asistencia-backend/internal/domain/admin"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/handler/http/response"
	"github.com/cossmil/asistencia-backend/internal/service/personnel"
	"github.com/go-chi/chi/v5"
)

type PersonnelHandler interface {
	// Supervisor (personal de area) handlers
	ListSupervisors(w http.ResponseWriter, r *http.Request)
	ListSupervisorsByArea(w http.ResponseWriter, r *http.Request)
	GetSupervisor(w http.ResponseWriter, r *http.Request)
	CreateSupervisor(w http.ResponseWriter, r *http.Request)
	UpdateSupervisor(w http.ResponseWriter, r *http.Request)
	DeleteSupervisor(w http.ResponseWriter, r *http.Request)

	// Worker (trabajador) handlers
	ListWorkers(w http.ResponseWriter, r *http.Request)
	ListWorkersByArea(w http.ResponseWriter, r *http.Request)
	ListWorkersBySupervisor(w http.ResponseWriter, r *http.Request)
	GetWorker(w http.ResponseWriter, r *http.Request)
	CreateWorker(w http.ResponseWriter, r *http.Request)
	UpdateWorker(w http.ResponseWriter, r *http.Request)
	DeleteWorker(w http.ResponseWriter, r *http.Request)
	ChangeWorkerPassword(w http.ResponseWriter, r *http.Request)

	// Admin handlers
	ListAdmins(w http.ResponseWriter, r *http.Request)
	GetAdmin(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	CreateAdmin(w http.ResponseWriter, r *http.Request)
	UpdateAdmin(w http.ResponseWriter, r *http.Request)
	DeleteAdmin(w http.ResponseWriter, r *http.Request)
}

type personnelHandlerImpl struct {
	supervisorService personnel.SupervisorService
	workerService     personnel.WorkerService
	adminService      personnel.AdminService
}

func NewPersonnelHandler(
	supervisorService personnel.SupervisorService,
	workerService personnel.WorkerService,
	adminService personnel.AdminService,
) PersonnelHandler {
	return &personnelHandlerImpl{
		supervisorService: supervisorService,
		workerService:     workerService,
		adminService:      adminService,
	}
}

// ==================== SUPERVISOR HANDLERS ====================

func (h *personnelHandlerImpl) ListSupervisors(w http.ResponseWriter, r *http.Request) {
	results, err := h.supervisorService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *personnelHandlerImpl) ListSupervisorsByArea(w http.ResponseWriter, r *http.Request) {
	results, err := h.supervisorService.ListByArea(r.Context(), chi.URLParam(r, "areaId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *personnelHandlerImpl) GetSupervisor(w http.ResponseWriter, r *http.Request) {
	result, err := h.supervisorService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *personnelHandlerImpl) CreateSupervisor(w http.ResponseWriter, r *http.Request) {
	var req supervisor.CreateSupervisorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.supervisorService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Supervisor created successfully", result)
}

func (h *personnelHandlerImpl) UpdateSupervisor(w http.ResponseWriter, r *http.Request) {
	var req supervisor.UpdateSupervisorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.supervisorService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supervisor updated successfully", result)
}

func (h *personnelHandlerImpl) DeleteSupervisor(w http.ResponseWriter, r *http.Request) {
	if err := h.supervisorService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supervisor deleted successfully", nil)
}

// ==================== WORKER HANDLERS ====================

func (h *personnelHandlerImpl) listWorkers(w http.ResponseWriter, r *http.Request, filter worker.ListFilter) {
	results, err := h.workerService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *personnelHandlerImpl) ListWorkers(w http.ResponseWriter, r *http.Request) {
	h.listWorkers(w, r, worker.ListFilter{
		AreaID:       optionalQuery(r, "areaId"),
		SupervisorID: optionalQuery(r, "personalAreaId"),
	})
}

func (h *personnelHandlerImpl) ListWorkersByArea(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaId")
	h.listWorkers(w, r, worker.ListFilter{AreaID: &areaID})
}

func (h *personnelHandlerImpl) ListWorkersBySupervisor(w http.ResponseWriter, r *http.Request) {
	supervisorID := chi.URLParam(r, "personalAreaId")
	h.listWorkers(w, r, worker.ListFilter{SupervisorID: &supervisorID})
}

func (h *personnelHandlerImpl) GetWorker(w http.ResponseWriter, r *http.Request) {
	result, err := h.workerService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *personnelHandlerImpl) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req worker.CreateWorkerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.workerService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created successfully", result)
}

func (h *personnelHandlerImpl) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	var req worker.UpdateWorkerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.workerService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated successfully", result)
}

func (h *personnelHandlerImpl) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	if err := h.workerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker deleted successfully", nil)
}

func (h *personnelHandlerImpl) ChangeWorkerPassword(w http.ResponseWriter, r *http.Request) {
	var req worker.ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.workerService.ChangePassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password updated successfully", nil)
}

// ==================== ADMIN HANDLERS ====================

func (h *personnelHandlerImpl) ListAdmins(w http.ResponseWriter, r *http.Request) {
	results, err := h.adminService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *personnelHandlerImpl) GetAdmin(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *personnelHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *personnelHandlerImpl) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req admin.CreateAdminRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.adminService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Admin created successfully", result)
}

func (h *personnelHandlerImpl) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req admin.UpdateAdminRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.adminService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Admin updated successfully", result)
}

func (h *personnelHandlerImpl) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Admin deleted successfully", nil)
}
