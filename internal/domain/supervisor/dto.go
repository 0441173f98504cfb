package supervisor

import (
	"strings"
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

type SupervisorResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"nombre_completo"`
	AreaID          string    `json:"id_area_laboral"`
	AreaDescription string    `json:"area_descripcion,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewSupervisorResponse(s Supervisor) SupervisorResponse {
	return SupervisorResponse{
		ID:              s.ID,
		Username:        s.Username,
		FullName:        s.FullName,
		AreaID:          s.AreaID,
		AreaDescription: s.AreaDescription,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type CreateSupervisorRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=6,bcryptlen"`
	FullName string `json:"nombre_completo" validate:"notblank,max=150"`
	AreaID   string `json:"id_area_laboral" validate:"required"`
}

func (r *CreateSupervisorRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	return validator.Struct(r)
}

// UpdateSupervisorRequest replaces the profile. Password is changed only when
// provided.
type UpdateSupervisorRequest struct {
	ID       string  `json:"-"`
	Username string  `json:"username" validate:"required,username"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,bcryptlen"`
	FullName string  `json:"nombre_completo" validate:"notblank,max=150"`
	AreaID   string  `json:"id_area_laboral" validate:"required"`
}

func (r *UpdateSupervisorRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Password != nil && *r.Password == "" {
		r.Password = nil
	}
	return validator.Struct(r)
}
