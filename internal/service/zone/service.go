package zone

import (
	"context"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/zone"
)

type zoneServiceImpl struct {
	zoneRepo zone.ZoneRepository
}

func NewZoneService(zoneRepo zone.ZoneRepository) zone.ZoneService {
	return &zoneServiceImpl{zoneRepo: zoneRepo}
}

// requireEditor allows admins and supervisors.
func requireEditor(ctx context.Context) (auth.Principal, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return auth.Principal{}, err
	}
	if p.IsWorker() {
		return auth.Principal{}, auth.ErrForbidden
	}
	return p, nil
}

// List implements zone.ZoneService.
func (s *zoneServiceImpl) List(ctx context.Context) ([]zone.ZoneResponse, error) {
	zones, err := s.zoneRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	responses := make([]zone.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		responses = append(responses, zone.NewZoneResponse(z))
	}
	return responses, nil
}

// Get implements zone.ZoneService.
func (s *zoneServiceImpl) Get(ctx context.Context, id string) (zone.ZoneResponse, error) {
	z, err := s.zoneRepo.GetByID(ctx, id)
	if err != nil {
		return zone.ZoneResponse{}, err
	}
	return zone.NewZoneResponse(z), nil
}

// Create implements zone.ZoneService.
func (s *zoneServiceImpl) Create(ctx context.Context, req zone.CreateZoneRequest) (zone.ZoneResponse, error) {
	p, err := requireEditor(ctx)
	if err != nil {
		return zone.ZoneResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return zone.ZoneResponse{}, err
	}

	created, err := s.zoneRepo.Create(ctx, zone.Zone{
		Name:        req.Name,
		Description: req.Description,
		Geometry:    req.Geometry.Zone(),
		CreatedBy:   &p.ID,
	})
	if err != nil {
		return zone.ZoneResponse{}, err
	}
	return zone.NewZoneResponse(created), nil
}

// Update implements zone.ZoneService.
func (s *zoneServiceImpl) Update(ctx context.Context, req zone.UpdateZoneRequest) (zone.ZoneResponse, error) {
	if _, err := requireEditor(ctx); err != nil {
		return zone.ZoneResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return zone.ZoneResponse{}, err
	}

	updated, err := s.zoneRepo.Update(ctx, zone.Zone{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Geometry:    req.Geometry.Zone(),
	})
	if err != nil {
		return zone.ZoneResponse{}, err
	}
	return zone.NewZoneResponse(updated), nil
}

// Delete implements zone.ZoneService. Zones are deactivated, never removed.
func (s *zoneServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := requireEditor(ctx); err != nil {
		return err
	}
	return s.zoneRepo.Deactivate(ctx, id)
}
