package personnel

import (
	"context"
	"strings"
	"testing"

	"github.com/cossmil/asistencia-backend/internal/domain/admin"
	"github.com/cossmil/asistencia-backend/internal/domain/assignment"
	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/master/role"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/domain/zone"
	"github.com/cossmil/asistencia-backend/internal/pkg/geo"
	"github.com/cossmil/asistencia-backend/internal/pkg/password"
	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
	"github.com/cossmil/asistencia-backend/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type personnelFixture struct {
	store       *servicetest.Store
	hasher      *password.Hasher
	workers     WorkerService
	supervisors SupervisorService
	admins      AdminService
	area        area.Area
	otherArea   area.Area
	role        role.Role
	boss        supervisor.Supervisor
	otherBoss   supervisor.Supervisor
}

func newPersonnelFixture(t *testing.T) personnelFixture {
	t.Helper()
	ctx := context.Background()
	store := servicetest.NewStore()
	hasher := password.NewHasher(bcrypt.MinCost)
	tx := &servicetest.Tx{}

	a, err := store.Areas().Create(ctx, area.Area{Description: "Enfermeria"})
	require.NoError(t, err)
	other, err := store.Areas().Create(ctx, area.Area{Description: "Cocina"})
	require.NoError(t, err)
	r, err := store.Roles().Create(ctx, role.Role{Description: "Enfermera", AreaID: a.ID})
	require.NoError(t, err)
	boss, err := store.Supervisors().Create(ctx, supervisor.Supervisor{Username: "jefa", FullName: "Ana Jefa", AreaID: a.ID})
	require.NoError(t, err)
	otherBoss, err := store.Supervisors().Create(ctx, supervisor.Supervisor{Username: "chef", FullName: "Luis Chef", AreaID: other.ID})
	require.NoError(t, err)

	return personnelFixture{
		store:       store,
		hasher:      hasher,
		workers:     NewWorkerService(tx, store.Workers(), store.Supervisors(), store.Areas(), store.Roles(), hasher),
		supervisors: NewSupervisorService(tx, store.Supervisors(), store.Areas(), hasher),
		admins:      NewAdminService(store.Admins(), hasher),
		area:        a,
		otherArea:   other,
		role:        r,
		boss:        boss,
		otherBoss:   otherBoss,
	}
}

func asAdmin(id string) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{Kind: auth.KindAdmin, ID: id})
}

func asSupervisor(s supervisor.Supervisor) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{Kind: auth.KindSupervisor, ID: s.ID, AreaID: s.AreaID})
}

func asWorker(w worker.WorkerResponse) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{
		Kind: auth.KindWorker, ID: w.ID, AreaID: w.AreaID, SupervisorID: w.SupervisorID,
	})
}

func TestWorkerCreate_SupervisorDefaults(t *testing.T) {
	f := newPersonnelFixture(t)

	created, err := f.workers.Create(asSupervisor(f.boss), worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan Perez", RoleIDs: []string{f.role.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, f.boss.ID, created.SupervisorID)
	assert.Equal(t, f.area.ID, created.AreaID)
	assert.Equal(t, "Ana Jefa", created.SupervisorName)
	require.Len(t, created.Roles, 1)
	assert.Equal(t, "Enfermera", created.Roles[0].Description)

	stored, err := f.store.Workers().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NoError(t, f.hasher.Compare(stored.PasswordHash, "secret1"))
}

func TestWorkerCreate_Rejections(t *testing.T) {
	f := newPersonnelFixture(t)

	_, err := f.workers.Create(asSupervisor(f.boss), worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan", SupervisorID: f.otherBoss.ID,
	})
	assert.ErrorIs(t, err, auth.ErrForbidden, "supervisor cannot create for another supervisor")

	_, err = f.workers.Create(asAdmin("a"), worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "id_personal_area")

	_, err = f.workers.Create(asAdmin("a"), worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan",
		SupervisorID: f.otherBoss.ID, AreaID: f.otherArea.ID, RoleIDs: []string{f.role.ID},
	})
	assert.ErrorIs(t, err, role.ErrRoleAreaMismatch)

	_, err = f.workers.Create(asAdmin("a"), worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan",
		SupervisorID: "missing", AreaID: f.area.ID,
	})
	assert.ErrorIs(t, err, supervisor.ErrSupervisorNotFound)

	_, err = f.workers.Create(asSupervisor(f.boss), worker.CreateWorkerRequest{
		Username: "jperez", Password: strings.Repeat("ñ", 40), FullName: "Juan",
	})
	require.ErrorAs(t, err, &verrs, "80 bytes do not fit bcrypt")
	assert.Contains(t, verrs.ToMap(), "password")

	workerCtx := auth.WithPrincipal(context.Background(), auth.Principal{Kind: auth.KindWorker, ID: "w"})
	_, err = f.workers.Create(workerCtx, worker.CreateWorkerRequest{Username: "x", Password: "secret1", FullName: "X"})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestWorkerUpdate_ReplacesRolesOnlyWhenSent(t *testing.T) {
	f := newPersonnelFixture(t)
	ctx := asSupervisor(f.boss)

	created, err := f.workers.Create(ctx, worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan Perez", RoleIDs: []string{f.role.ID},
	})
	require.NoError(t, err)

	updated, err := f.workers.Update(ctx, worker.UpdateWorkerRequest{
		ID: created.ID, Username: "jperez", FullName: "Juan P. Perez",
		SupervisorID: f.boss.ID, AreaID: f.area.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Juan P. Perez", updated.FullName)
	assert.Len(t, updated.Roles, 1)

	empty := []string{}
	updated, err = f.workers.Update(ctx, worker.UpdateWorkerRequest{
		ID: created.ID, Username: "jperez", FullName: "Juan P. Perez",
		SupervisorID: f.boss.ID, AreaID: f.area.ID, RoleIDs: &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Roles)

	_, err = f.workers.Update(asSupervisor(f.otherBoss), worker.UpdateWorkerRequest{
		ID: created.ID, Username: "jperez", FullName: "Juan",
		SupervisorID: f.otherBoss.ID, AreaID: f.otherArea.ID,
	})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestWorkerDelete_WithAssignments(t *testing.T) {
	f := newPersonnelFixture(t)
	ctx := context.Background()

	created, err := f.workers.Create(asAdmin("a"), worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan",
		SupervisorID: f.boss.ID, AreaID: f.area.ID,
	})
	require.NoError(t, err)

	center, radius := geo.Point{Lat: -17.78, Lng: -63.18}, 50.0
	z, err := f.store.Zones().Create(ctx, zone.Zone{
		Name: "Hospital", Geometry: geo.Zone{Kind: geo.KindCircle, Center: &center, RadiusMeters: &radius},
	})
	require.NoError(t, err)
	_, err = f.store.Assignments().Create(ctx, assignment.Assignment{
		WorkerID: created.ID, ZoneID: z.ID,
		Plan: schedule.Plan{Days: schedule.AllDays, Entry: schedule.NewClockTime(8, 0, 0), Exit: schedule.NewClockTime(17, 0, 0)},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.workers.Delete(asAdmin("a"), created.ID), worker.ErrWorkerInUse)
}

func TestWorkerChangePassword(t *testing.T) {
	f := newPersonnelFixture(t)

	created, err := f.workers.Create(asAdmin("a"), worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan",
		SupervisorID: f.boss.ID, AreaID: f.area.ID,
	})
	require.NoError(t, err)
	self := asWorker(created)

	err = f.workers.ChangePassword(self, worker.ChangePasswordRequest{NewPassword: "secret2"})
	assert.ErrorIs(t, err, worker.ErrCurrentPasswordRequired)

	err = f.workers.ChangePassword(self, worker.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "secret2"})
	assert.ErrorIs(t, err, worker.ErrCurrentPasswordInvalid)

	err = f.workers.ChangePassword(self, worker.ChangePasswordRequest{ID: f.boss.ID, CurrentPassword: "secret1", NewPassword: "secret2"})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	require.NoError(t, f.workers.ChangePassword(self, worker.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))

	require.NoError(t, f.workers.ChangePassword(asAdmin("a"), worker.ChangePasswordRequest{ID: created.ID, NewPassword: "reset99"}))
	stored, err := f.store.Workers().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NoError(t, f.hasher.Compare(stored.PasswordHash, "reset99"))

	err = f.workers.ChangePassword(asSupervisor(f.boss), worker.ChangePasswordRequest{ID: created.ID, NewPassword: "secret3"})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestWorkerGet_WorkerSeesOnlySelf(t *testing.T) {
	f := newPersonnelFixture(t)

	created, err := f.workers.Create(asAdmin("a"), worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan",
		SupervisorID: f.boss.ID, AreaID: f.area.ID,
	})
	require.NoError(t, err)

	_, err = f.workers.Get(asWorker(created), created.ID)
	assert.NoError(t, err)

	other := created
	other.ID = "someone-else"
	_, err = f.workers.Get(asWorker(other), created.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestSupervisorLifecycle(t *testing.T) {
	f := newPersonnelFixture(t)
	ctx := asAdmin("a")

	created, err := f.supervisors.Create(ctx, supervisor.CreateSupervisorRequest{
		Username: "nuevo", Password: "secret1", FullName: "Nuevo Jefe", AreaID: f.area.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Enfermeria", created.AreaDescription)

	_, err = f.supervisors.Create(ctx, supervisor.CreateSupervisorRequest{
		Username: "nuevo", Password: "secret1", FullName: "Otro", AreaID: f.area.ID,
	})
	assert.ErrorIs(t, err, supervisor.ErrUsernameExists)

	before, err := f.store.Supervisors().GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	empty := ""
	updated, err := f.supervisors.Update(ctx, supervisor.UpdateSupervisorRequest{
		ID: created.ID, Username: "nuevo", Password: &empty, FullName: "Nuevo Jefe II", AreaID: f.otherArea.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.otherArea.ID, updated.AreaID)

	after, err := f.store.Supervisors().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash, "empty password keeps the hash")

	_, err = f.supervisors.Create(asSupervisor(f.boss), supervisor.CreateSupervisorRequest{
		Username: "x", Password: "secret1", FullName: "X", AreaID: f.area.ID,
	})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	require.NoError(t, f.supervisors.Delete(ctx, created.ID))

	_, err = f.workers.Create(ctx, worker.CreateWorkerRequest{
		Username: "jperez", Password: "secret1", FullName: "Juan", SupervisorID: f.boss.ID, AreaID: f.area.ID,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, f.supervisors.Delete(ctx, f.boss.ID), supervisor.ErrSupervisorInUse)
}

func TestAdminService(t *testing.T) {
	f := newPersonnelFixture(t)

	root, err := f.store.Admins().Create(context.Background(), admin.Admin{Username: "root", FullName: "Root"})
	require.NoError(t, err)
	ctx := asAdmin(root.ID)

	me, err := f.admins.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "root", me.Username)

	created, err := f.admins.Create(ctx, admin.CreateAdminRequest{Username: "second", Password: "longpass1", FullName: "Second"})
	require.NoError(t, err)

	_, err = f.admins.Create(ctx, admin.CreateAdminRequest{Username: "third", Password: "short", FullName: "Third"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	assert.ErrorIs(t, f.admins.Delete(ctx, root.ID), admin.ErrCannotDeleteSelf)
	require.NoError(t, f.admins.Delete(ctx, created.ID))

	_, err = f.admins.List(asSupervisor(f.boss))
	assert.ErrorIs(t, err, auth.ErrForbidden)
}
