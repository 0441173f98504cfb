package role

import (
	"strings"
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

type RoleResponse struct {
	ID              string    `json:"id"`
	Description     string    `json:"descripcion"`
	AreaID          string    `json:"id_area_laboral"`
	AreaDescription string    `json:"area_descripcion,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewRoleResponse(r Role) RoleResponse {
	return RoleResponse{
		ID:              r.ID,
		Description:     r.Description,
		AreaID:          r.AreaID,
		AreaDescription: r.AreaDescription,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type CreateRoleRequest struct {
	Description string `json:"descripcion" validate:"notblank,max=150"`
	AreaID      string `json:"id_area_laboral" validate:"required"`
}

func (r *CreateRoleRequest) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	return validator.Struct(r)
}

type UpdateRoleRequest struct {
	ID          string `json:"-"`
	Description string `json:"descripcion" validate:"notblank,max=150"`
	AreaID      string `json:"id_area_laboral" validate:"required"`
}

func (r *UpdateRoleRequest) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	return validator.Struct(r)
}
