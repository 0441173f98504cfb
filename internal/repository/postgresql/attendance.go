package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cossmil/asistencia-backend/internal/domain/attendance"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT r.id, r.assignment_id, r.worker_id, r.marked_at, r.lat, r.lng,
		   r.status, r.in_zone, r.in_window, r.distance_m, r.reported_status, r.comment,
		   r.created_at,
		   a.days, a.entry_time, a.exit_time, a.created_by,
		   w.full_name, z.name, z.description
	FROM attendance_records r
	JOIN assignments a ON a.id = r.assignment_id
	JOIN workers w ON w.id = r.worker_id
	JOIN zones z ON z.id = a.zone_id
`

const attendanceFrom = `
	FROM attendance_records r
	JOIN assignments a ON a.id = r.assignment_id
	JOIN workers w ON w.id = r.worker_id
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		rec         attendance.Record
		status      string
		days        int16
		entry, exit pgtype.Time
	)
	err := row.Scan(
		&rec.ID, &rec.AssignmentID, &rec.WorkerID, &rec.MarkedAt, &rec.Lat, &rec.Lng,
		&status, &rec.InZone, &rec.InWindow, &rec.DistanceMeters, &rec.ReportedStatus, &rec.Comment,
		&rec.CreatedAt,
		&days, &entry, &exit, &rec.CreatorID,
		&rec.WorkerName, &rec.ZoneName, &rec.ZoneDescription,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	rec.Status = attendance.Status(status)
	rec.Days = schedule.DaySet(days)
	rec.EntryTime = clockFromPg(entry)
	rec.ExitTime = clockFromPg(exit)
	return rec, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return attendance.Record{}, err
	}

	query := `
		INSERT INTO attendance_records (
			id, assignment_id, worker_id, marked_at, lat, lng,
			status, in_zone, in_window, distance_m, reported_status, comment, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
	`

	_, err = q.Exec(ctx, query,
		id, rec.AssignmentID, rec.WorkerID, rec.MarkedAt, rec.Lat, rec.Lng,
		string(rec.Status), rec.InZone, rec.InWindow, rec.DistanceMeters, rec.ReportedStatus, rec.Comment,
	)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidID(err) {
			return attendance.Record{}, attendance.ErrAssignmentNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, attendanceSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	args := []interface{}{}
	argIdx := 1

	addCondition := func(format string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(format, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.AssignmentID != nil {
		addCondition("r.assignment_id = $%d", *filter.AssignmentID)
	}
	if filter.WorkerID != nil {
		addCondition("r.worker_id = $%d", *filter.WorkerID)
	}
	if filter.CreatorID != nil {
		addCondition("a.created_by = $%d", *filter.CreatorID)
	}
	if filter.SupervisorID != nil {
		addCondition("w.supervisor_id = $%d", *filter.SupervisorID)
	}
	if filter.Status != nil {
		addCondition("r.status = $%d", *filter.Status)
	}
	if filter.From != nil {
		addCondition("r.marked_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		addCondition("r.marked_at <= $%d", *filter.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*)`+attendanceFrom+where, args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return []attendance.Record{}, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	selectQuery := attendanceSelect + where + fmt.Sprintf(`
		ORDER BY r.marked_at DESC, r.id DESC
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, total, nil
}
