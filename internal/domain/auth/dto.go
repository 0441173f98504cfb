package auth

import "github.com/cossmil/asistencia-backend/internal/pkg/validator"

type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r)
}

// UserResponse is the public profile returned on login.
type UserResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"nombre_completo"`
	Role         Kind    `json:"role"`
	AreaID       *string `json:"id_area_laboral,omitempty"`
	SupervisorID *string `json:"id_personal_area,omitempty"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	User      UserResponse `json:"user"`
}
