package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/zone"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/geo"
	"github.com/jackc/pgx/v5"
)

type zoneRepositoryImpl struct {
	db *database.DB
}

func NewZoneRepository(db *database.DB) zone.ZoneRepository {
	return &zoneRepositoryImpl{db: db}
}

const zoneColumns = `
	id, name, description, kind,
	center_lat, center_lng, radius_m,
	corner1_lat, corner1_lng, corner2_lat, corner2_lng,
	created_by, active, created_at, updated_at
`

// geometryColumns flattens a zone into nullable columns.
type geometryColumns struct {
	centerLat, centerLng, radius                   *float64
	corner1Lat, corner1Lng, corner2Lat, corner2Lng *float64
}

func flattenGeometry(z geo.Zone) geometryColumns {
	var c geometryColumns
	if z.Center != nil {
		c.centerLat, c.centerLng = &z.Center.Lat, &z.Center.Lng
	}
	c.radius = z.RadiusMeters
	if z.Corner1 != nil {
		c.corner1Lat, c.corner1Lng = &z.Corner1.Lat, &z.Corner1.Lng
	}
	if z.Corner2 != nil {
		c.corner2Lat, c.corner2Lng = &z.Corner2.Lat, &z.Corner2.Lng
	}
	return c
}

func pointFromColumns(lat, lng *float64) *geo.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &geo.Point{Lat: *lat, Lng: *lng}
}

func (c geometryColumns) zone(kind string) geo.Zone {
	return geo.Zone{
		Kind:         geo.Kind(kind),
		Center:       pointFromColumns(c.centerLat, c.centerLng),
		RadiusMeters: c.radius,
		Corner1:      pointFromColumns(c.corner1Lat, c.corner1Lng),
		Corner2:      pointFromColumns(c.corner2Lat, c.corner2Lng),
	}
}

func scanZone(row pgx.Row) (zone.Zone, error) {
	var (
		z    zone.Zone
		kind string
		g    geometryColumns
	)
	err := row.Scan(
		&z.ID, &z.Name, &z.Description, &kind,
		&g.centerLat, &g.centerLng, &g.radius,
		&g.corner1Lat, &g.corner1Lng, &g.corner2Lat, &g.corner2Lng,
		&z.CreatedBy, &z.Active, &z.CreatedAt, &z.UpdatedAt,
	)
	if err != nil {
		return zone.Zone{}, err
	}
	z.Geometry = g.zone(kind)
	return z, nil
}

// Create implements zone.ZoneRepository.
func (r *zoneRepositoryImpl) Create(ctx context.Context, z zone.Zone) (zone.Zone, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return zone.Zone{}, err
	}

	g := flattenGeometry(z.Geometry)
	query := `
		INSERT INTO zones (
			id, name, description, kind,
			center_lat, center_lng, radius_m,
			corner1_lat, corner1_lng, corner2_lat, corner2_lng,
			created_by, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, TRUE, NOW(), NOW())
		RETURNING ` + zoneColumns

	created, err := scanZone(q.QueryRow(ctx, query,
		id, z.Name, z.Description, string(z.Geometry.Kind),
		g.centerLat, g.centerLng, g.radius,
		g.corner1Lat, g.corner1Lng, g.corner2Lat, g.corner2Lng,
		z.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return zone.Zone{}, zone.ErrZoneNameExists
		}
		return zone.Zone{}, fmt.Errorf("failed to create zone: %w", err)
	}

	return created, nil
}

// GetByID implements zone.ZoneRepository.
func (r *zoneRepositoryImpl) GetByID(ctx context.Context, id string) (zone.Zone, error) {
	q := GetQuerier(ctx, r.db)

	z, err := scanZone(q.QueryRow(ctx, `SELECT `+zoneColumns+` FROM zones WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return zone.Zone{}, zone.ErrZoneNotFound
		}
		return zone.Zone{}, fmt.Errorf("failed to get zone: %w", err)
	}

	return z, nil
}

// ListActive implements zone.ZoneRepository.
func (r *zoneRepositoryImpl) ListActive(ctx context.Context) ([]zone.Zone, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+zoneColumns+` FROM zones WHERE active ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	defer rows.Close()

	zones := []zone.Zone{}
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		zones = append(zones, z)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return zones, nil
}

// Update implements zone.ZoneRepository. Only active zones can be edited.
func (r *zoneRepositoryImpl) Update(ctx context.Context, z zone.Zone) (zone.Zone, error) {
	q := GetQuerier(ctx, r.db)

	g := flattenGeometry(z.Geometry)
	query := `
		UPDATE zones
		SET name = $1, description = $2, kind = $3,
			center_lat = $4, center_lng = $5, radius_m = $6,
			corner1_lat = $7, corner1_lng = $8, corner2_lat = $9, corner2_lng = $10,
			updated_at = NOW()
		WHERE id = $11 AND active
		RETURNING ` + zoneColumns

	updated, err := scanZone(q.QueryRow(ctx, query,
		z.Name, z.Description, string(z.Geometry.Kind),
		g.centerLat, g.centerLng, g.radius,
		g.corner1Lat, g.corner1Lng, g.corner2Lat, g.corner2Lng,
		z.ID,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), isInvalidID(err):
			return zone.Zone{}, zone.ErrZoneNotFound
		case isUniqueViolation(err):
			return zone.Zone{}, zone.ErrZoneNameExists
		}
		return zone.Zone{}, fmt.Errorf("failed to update zone: %w", err)
	}

	return updated, nil
}

// Deactivate implements zone.ZoneRepository.
func (r *zoneRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE zones SET active = FALSE, updated_at = NOW() WHERE id = $1 AND active`, id)
	if err != nil {
		if isInvalidID(err) {
			return zone.ErrZoneNotFound
		}
		return fmt.Errorf("failed to deactivate zone: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return zone.ErrZoneNotFound
	}

	return nil
}
