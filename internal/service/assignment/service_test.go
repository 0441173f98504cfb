package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/cossmil/asistencia-backend/internal/domain/assignment"
	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/domain/zone"
	"github.com/cossmil/asistencia-backend/internal/pkg/geo"
	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
	"github.com/cossmil/asistencia-backend/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *servicetest.Store
	svc      assignment.AssignmentService
	boss     supervisor.Supervisor
	stranger supervisor.Supervisor
	worker   worker.Worker
	zone     zone.Zone
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := servicetest.NewStore()

	a, err := store.Areas().Create(ctx, area.Area{Description: "Laboratorio"})
	require.NoError(t, err)
	boss, err := store.Supervisors().Create(ctx, supervisor.Supervisor{Username: "jefe", FullName: "Carlos Jefe", AreaID: a.ID})
	require.NoError(t, err)
	stranger, err := store.Supervisors().Create(ctx, supervisor.Supervisor{Username: "otro", FullName: "Otro Jefe", AreaID: a.ID})
	require.NoError(t, err)
	w, err := store.Workers().Create(ctx, worker.Worker{Username: "jperez", FullName: "Juan Perez", SupervisorID: boss.ID, AreaID: a.ID})
	require.NoError(t, err)

	radius := 50.0
	z, err := store.Zones().Create(ctx, zone.Zone{
		Name:     "Sede central",
		Geometry: geo.Zone{Kind: geo.KindCircle, Center: &geo.Point{Lat: -17.78, Lng: -63.18}, RadiusMeters: &radius},
	})
	require.NoError(t, err)

	return fixture{
		store:    store,
		svc:      NewAssignmentService(&servicetest.Tx{}, store.Assignments(), store.Workers(), store.Zones()),
		boss:     boss,
		stranger: stranger,
		worker:   w,
		zone:     z,
	}
}

func as(kind auth.Kind, id string) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{Kind: kind, ID: id, AreaID: "area"})
}

func (f fixture) createRequest() assignment.CreateAssignmentRequest {
	days := schedule.NewDaySet(time.Monday, time.Wednesday, time.Friday)
	entry := schedule.NewClockTime(8, 0, 0)
	exit := schedule.NewClockTime(16, 0, 0)
	return assignment.CreateAssignmentRequest{
		WorkerID:  f.worker.ID,
		ZoneID:    f.zone.ID,
		Days:      &days,
		EntryTime: &entry,
		ExitTime:  &exit,
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(as(auth.KindSupervisor, f.boss.ID), f.createRequest())
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Equal(t, "Juan Perez", resp.WorkerName)
	assert.Equal(t, "Sede central", resp.ZoneName)
	assert.Equal(t, "circle", resp.ZoneType)
	require.NotNil(t, resp.Geometry)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, f.boss.ID, *resp.CreatedBy)
	require.NotNil(t, resp.CreatorName)
	assert.Equal(t, "Carlos Jefe", *resp.CreatorName)
	assert.Equal(t, "monday,wednesday,friday", resp.Days.String())
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bossCtx := as(auth.KindSupervisor, f.boss.ID)

	_, err := f.svc.Create(as(auth.KindSupervisor, f.stranger.ID), f.createRequest())
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.svc.Create(as(auth.KindWorker, f.worker.ID), f.createRequest())
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.svc.Create(ctx, f.createRequest())
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	req := f.createRequest()
	req.WorkerID = "missing"
	_, err = f.svc.Create(bossCtx, req)
	assert.ErrorIs(t, err, assignment.ErrWorkerNotFound)

	req = f.createRequest()
	req.ZoneID = "missing"
	_, err = f.svc.Create(bossCtx, req)
	assert.ErrorIs(t, err, assignment.ErrZoneNotFound)

	require.NoError(t, f.store.Zones().Deactivate(ctx, f.zone.ID))
	_, err = f.svc.Create(bossCtx, f.createRequest())
	assert.ErrorIs(t, err, assignment.ErrZoneNotFound)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	bossCtx := as(auth.KindSupervisor, f.boss.ID)
	empty := schedule.DaySet(0)
	same := schedule.NewClockTime(8, 0, 0)
	windowStart := schedule.NewClockTime(7, 0, 0)

	tests := []struct {
		name   string
		mutate func(*assignment.CreateAssignmentRequest)
		field  string
	}{
		{"missing days", func(r *assignment.CreateAssignmentRequest) { r.Days = nil }, "dias"},
		{"empty days", func(r *assignment.CreateAssignmentRequest) { r.Days = &empty }, "dias"},
		{"missing entry", func(r *assignment.CreateAssignmentRequest) { r.EntryTime = nil }, "hora_entrada"},
		{"entry equals exit", func(r *assignment.CreateAssignmentRequest) { r.ExitTime = &same }, "hora_salida"},
		{"half window", func(r *assignment.CreateAssignmentRequest) { r.WindowStart = &windowStart }, "ventana_hasta"},
		{"missing worker", func(r *assignment.CreateAssignmentRequest) { r.WorkerID = "" }, "id_personal_trabajador"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.createRequest()
			tt.mutate(&req)

			_, err := f.svc.Create(bossCtx, req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestUpdate_KeepsActiveWhenOmitted(t *testing.T) {
	f := newFixture(t)
	bossCtx := as(auth.KindSupervisor, f.boss.ID)

	created, err := f.svc.Create(bossCtx, f.createRequest())
	require.NoError(t, err)

	c := f.createRequest()
	exit := schedule.NewClockTime(18, 30, 0)
	req := assignment.UpdateAssignmentRequest{
		ID: created.ID, WorkerID: c.WorkerID, ZoneID: c.ZoneID,
		Days: c.Days, EntryTime: c.EntryTime, ExitTime: &exit,
	}
	updated, err := f.svc.Update(bossCtx, req)
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, "18:30:00", updated.ExitTime.String())

	inactive := false
	req.Active = &inactive
	updated, err = f.svc.Update(bossCtx, req)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	_, err = f.svc.Update(as(auth.KindSupervisor, f.stranger.ID), req)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	req.ID = "missing"
	_, err = f.svc.Update(bossCtx, req)
	assert.ErrorIs(t, err, assignment.ErrAssignmentNotFound)
}

func TestDelete_Deactivates(t *testing.T) {
	f := newFixture(t)
	bossCtx := as(auth.KindSupervisor, f.boss.ID)

	created, err := f.svc.Create(bossCtx, f.createRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(as(auth.KindSupervisor, f.stranger.ID), created.ID), auth.ErrForbidden)
	require.NoError(t, f.svc.Delete(bossCtx, created.ID))

	list, err := f.svc.List(bossCtx, assignment.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.svc.List(bossCtx, assignment.ListFilter{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Active)

	got, err := f.svc.Get(bossCtx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestListAndGet_Scope(t *testing.T) {
	f := newFixture(t)
	bossCtx := as(auth.KindSupervisor, f.boss.ID)
	workerCtx := as(auth.KindWorker, f.worker.ID)

	created, err := f.svc.Create(bossCtx, f.createRequest())
	require.NoError(t, err)

	other := "someone-else"
	mine, err := f.svc.List(workerCtx, assignment.ListFilter{WorkerID: &other})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)

	none, err := f.svc.List(as(auth.KindSupervisor, f.stranger.ID), assignment.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := f.svc.List(as(auth.KindAdmin, "admin"), assignment.ListFilter{CreatorID: &f.boss.ID})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.svc.Get(workerCtx, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(as(auth.KindWorker, "another-worker"), created.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)
	_, err = f.svc.Get(as(auth.KindSupervisor, f.stranger.ID), created.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}
