package area

import (
	"strings"
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

type AreaResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"descripcion"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewAreaResponse(a Area) AreaResponse {
	return AreaResponse{
		ID:          a.ID,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type CreateAreaRequest struct {
	Description string `json:"descripcion" validate:"notblank,max=150"`
}

func (r *CreateAreaRequest) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	return validator.Struct(r)
}

type UpdateAreaRequest struct {
	ID          string `json:"-"`
	Description string `json:"descripcion" validate:"notblank,max=150"`
}

func (r *UpdateAreaRequest) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	return validator.Struct(r)
}
