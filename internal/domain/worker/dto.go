package worker

import (
	"strings"
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

type WorkerResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"nombre_completo"`
	SupervisorID    string    `json:"id_personal_area"`
	SupervisorName  string    `json:"personal_area_nombre,omitempty"`
	AreaID          string    `json:"id_area_laboral"`
	AreaDescription string    `json:"area_descripcion,omitempty"`
	Roles           []RoleRef `json:"roles"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewWorkerResponse(w Worker) WorkerResponse {
	roles := w.Roles
	if roles == nil {
		roles = []RoleRef{}
	}
	return WorkerResponse{
		ID:              w.ID,
		Username:        w.Username,
		FullName:        w.FullName,
		SupervisorID:    w.SupervisorID,
		SupervisorName:  w.SupervisorName,
		AreaID:          w.AreaID,
		AreaDescription: w.AreaDescription,
		Roles:           roles,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

// CreateWorkerRequest creates a worker. SupervisorID and AreaID default to the
// calling supervisor and their area.
type CreateWorkerRequest struct {
	Username     string   `json:"username" validate:"required,username"`
	Password     string   `json:"password" validate:"required,min=6,bcryptlen"`
	FullName     string   `json:"nombre_completo" validate:"notblank,max=150"`
	SupervisorID string   `json:"id_personal_area"`
	AreaID       string   `json:"id_area_laboral"`
	RoleIDs      []string `json:"roles_ids" validate:"omitempty,dive,required"`
}

func (r *CreateWorkerRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	return validator.Struct(r)
}

// UpdateWorkerRequest replaces the profile. Password changes only when
// provided and roles are replaced only when RoleIDs is not nil.
type UpdateWorkerRequest struct {
	ID           string    `json:"-"`
	Username     string    `json:"username" validate:"required,username"`
	Password     *string   `json:"password,omitempty" validate:"omitempty,min=6,bcryptlen"`
	FullName     string    `json:"nombre_completo" validate:"notblank,max=150"`
	SupervisorID string    `json:"id_personal_area" validate:"required"`
	AreaID       string    `json:"id_area_laboral" validate:"required"`
	RoleIDs      *[]string `json:"roles_ids,omitempty" validate:"omitempty,dive,required"`
}

func (r *UpdateWorkerRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Password != nil && *r.Password == "" {
		r.Password = nil
	}
	return validator.Struct(r)
}

type ChangePasswordRequest struct {
	ID              string `json:"id"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,bcryptlen"`
}

func (r *ChangePasswordRequest) Validate() error {
	return validator.Struct(r)
}
