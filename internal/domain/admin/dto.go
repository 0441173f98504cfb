package admin

import (
	"strings"
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"nombre_completo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAdminResponse(a Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		Username:  a.Username,
		FullName:  a.FullName,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=8,bcryptlen"`
	FullName string `json:"nombre_completo" validate:"notblank,max=150"`
}

func (r *CreateAdminRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	return validator.Struct(r)
}

type UpdateAdminRequest struct {
	ID       string  `json:"-"`
	Username string  `json:"username" validate:"required,username"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,bcryptlen"`
	FullName string  `json:"nombre_completo" validate:"notblank,max=150"`
}

func (r *UpdateAdminRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Password != nil && *r.Password == "" {
		r.Password = nil
	}
	return validator.Struct(r)
}
