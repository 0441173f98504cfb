// Package servicetest provides an in-memory implementation of the repository
// interfaces with the same constraint semantics as the PostgreSQL schema, for
// service and handler tests.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cossmil/asistencia-backend/internal/domain/admin"
	"github.com/cossmil/asistencia-backend/internal/domain/assignment"
	"github.com/cossmil/asistencia-backend/internal/domain/attendance"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/master/role"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/domain/zone"
	"github.com/google/uuid"
)

// Tx runs fn directly and counts the transactions opened.
type Tx struct {
	mu    sync.Mutex
	Calls int
}

func (t *Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(ctx)
}

// Store holds every table in memory.
type Store struct {
	mu    sync.Mutex
	clock time.Time

	areas       map[string]area.Area
	roles       map[string]role.Role
	admins      map[string]admin.Admin
	supervisors map[string]supervisor.Supervisor
	workers     map[string]worker.Worker
	zones       map[string]zone.Zone
	assignments map[string]assignment.Assignment
	records     map[string]attendance.Record
}

func NewStore() *Store {
	return &Store{
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		areas:       map[string]area.Area{},
		roles:       map[string]role.Role{},
		admins:      map[string]admin.Admin{},
		supervisors: map[string]supervisor.Supervisor{},
		workers:     map[string]worker.Worker{},
		zones:       map[string]zone.Zone{},
		assignments: map[string]assignment.Assignment{},
		records:     map[string]attendance.Record{},
	}
}

// tick returns a strictly increasing timestamp so newest-first ordering is stable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (s *Store) Areas() area.AreaRepository                   { return areaRepo{s} }
func (s *Store) Roles() role.RoleRepository                   { return roleRepo{s} }
func (s *Store) Admins() admin.AdminRepository                { return adminRepo{s} }
func (s *Store) Supervisors() supervisor.SupervisorRepository { return supervisorRepo{s} }
func (s *Store) Workers() worker.WorkerRepository             { return workerRepo{s} }
func (s *Store) Zones() zone.ZoneRepository                   { return zoneRepo{s} }
func (s *Store) Assignments() assignment.AssignmentRepository { return assignmentRepo{s} }
func (s *Store) Attendance() attendance.AttendanceRepository  { return attendanceRepo{s} }

func sortedBy[T any](m map[string]T, less func(a, b T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// ==================== AREAS ====================

type areaRepo struct{ s *Store }

func (r areaRepo) Create(_ context.Context, a area.Area) (area.Area, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.areas {
		if existing.Description == a.Description {
			return area.Area{}, area.ErrAreaDescriptionExists
		}
	}
	a.ID = newID()
	a.CreatedAt = r.s.tick()
	a.UpdatedAt = a.CreatedAt
	r.s.areas[a.ID] = a
	return a, nil
}

func (r areaRepo) GetByID(_ context.Context, id string) (area.Area, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.areas[id]
	if !ok {
		return area.Area{}, area.ErrAreaNotFound
	}
	return a, nil
}

func (r areaRepo) List(_ context.Context) ([]area.Area, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedBy(r.s.areas, func(a, b area.Area) bool { return a.Description < b.Description }), nil
}

func (r areaRepo) Update(_ context.Context, a area.Area) (area.Area, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.areas[a.ID]
	if !ok {
		return area.Area{}, area.ErrAreaNotFound
	}
	for id, existing := range r.s.areas {
		if id != a.ID && existing.Description == a.Description {
			return area.Area{}, area.ErrAreaDescriptionExists
		}
	}
	current.Description = a.Description
	current.UpdatedAt = r.s.tick()
	r.s.areas[a.ID] = current
	return current, nil
}

func (r areaRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.areas[id]; !ok {
		return area.ErrAreaNotFound
	}
	roles, supervisors := r.s.areaDependents(id)
	if roles+supervisors > 0 {
		return area.ErrAreaInUse
	}
	for _, w := range r.s.workers {
		if w.AreaID == id {
			return area.ErrAreaInUse
		}
	}
	delete(r.s.areas, id)
	return nil
}

func (r areaRepo) CountDependents(_ context.Context, id string) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	roles, supervisors := r.s.areaDependents(id)
	return roles, supervisors, nil
}

func (s *Store) areaDependents(id string) (roles int, supervisors int) {
	for _, rl := range s.roles {
		if rl.AreaID == id {
			roles++
		}
	}
	for _, sp := range s.supervisors {
		if sp.AreaID == id {
			supervisors++
		}
	}
	return roles, supervisors
}

// ==================== ROLES ====================

type roleRepo struct{ s *Store }

func (s *Store) joinRole(rl role.Role) role.Role {
	rl.AreaDescription = s.areas[rl.AreaID].Description
	return rl
}

func (r roleRepo) checkUnique(rl role.Role) error {
	for id, existing := range r.s.roles {
		if id != rl.ID && existing.AreaID == rl.AreaID && existing.Description == rl.Description {
			return role.ErrRoleDescriptionExists
		}
	}
	if _, ok := r.s.areas[rl.AreaID]; !ok {
		return area.ErrAreaNotFound
	}
	return nil
}

func (r roleRepo) Create(_ context.Context, rl role.Role) (role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(rl); err != nil {
		return role.Role{}, err
	}
	rl.ID = newID()
	rl.CreatedAt = r.s.tick()
	rl.UpdatedAt = rl.CreatedAt
	r.s.roles[rl.ID] = rl
	return r.s.joinRole(rl), nil
}

func (r roleRepo) GetByID(_ context.Context, id string) (role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rl, ok := r.s.roles[id]
	if !ok {
		return role.Role{}, role.ErrRoleNotFound
	}
	return r.s.joinRole(rl), nil
}

func (r roleRepo) GetByIDs(_ context.Context, ids []string) ([]role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []role.Role{}
	seen := map[string]bool{}
	for _, id := range ids {
		if rl, ok := r.s.roles[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, r.s.joinRole(rl))
		}
	}
	return out, nil
}

func (r roleRepo) list(keep func(role.Role) bool) []role.Role {
	out := []role.Role{}
	for _, rl := range sortedBy(r.s.roles, func(a, b role.Role) bool { return a.Description < b.Description }) {
		if keep(rl) {
			out = append(out, r.s.joinRole(rl))
		}
	}
	return out
}

func (r roleRepo) List(_ context.Context) ([]role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(role.Role) bool { return true }), nil
}

func (r roleRepo) ListByArea(_ context.Context, areaID string) ([]role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(rl role.Role) bool { return rl.AreaID == areaID }), nil
}

func (r roleRepo) Update(_ context.Context, rl role.Role) (role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.roles[rl.ID]
	if !ok {
		return role.Role{}, role.ErrRoleNotFound
	}
	if err := r.checkUnique(rl); err != nil {
		return role.Role{}, err
	}
	current.Description = rl.Description
	current.AreaID = rl.AreaID
	current.UpdatedAt = r.s.tick()
	r.s.roles[rl.ID] = current
	return r.s.joinRole(current), nil
}

func (r roleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[id]; !ok {
		return role.ErrRoleNotFound
	}
	if r.s.roleWorkers(id) > 0 {
		return role.ErrRoleInUse
	}
	delete(r.s.roles, id)
	return nil
}

func (r roleRepo) CountWorkers(_ context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.roleWorkers(id), nil
}

func (s *Store) roleWorkers(id string) int {
	count := 0
	for _, w := range s.workers {
		for _, rid := range w.RoleIDs {
			if rid == id {
				count++
			}
		}
	}
	return count
}

// ==================== ADMINS ====================

type adminRepo struct{ s *Store }

func (r adminRepo) Create(_ context.Context, a admin.Admin) (admin.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.admins {
		if existing.Username == a.Username {
			return admin.Admin{}, admin.ErrUsernameExists
		}
	}
	a.ID = newID()
	a.CreatedAt = r.s.tick()
	a.UpdatedAt = a.CreatedAt
	r.s.admins[a.ID] = a
	return a, nil
}

func (r adminRepo) GetByID(_ context.Context, id string) (admin.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return admin.Admin{}, admin.ErrAdminNotFound
	}
	return a, nil
}

func (r adminRepo) GetByUsername(_ context.Context, username string) (admin.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return admin.Admin{}, admin.ErrAdminNotFound
}

func (r adminRepo) List(_ context.Context) ([]admin.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedBy(r.s.admins, func(a, b admin.Admin) bool { return a.FullName < b.FullName }), nil
}

func (r adminRepo) Update(_ context.Context, a admin.Admin) (admin.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.admins[a.ID]
	if !ok {
		return admin.Admin{}, admin.ErrAdminNotFound
	}
	for id, existing := range r.s.admins {
		if id != a.ID && existing.Username == a.Username {
			return admin.Admin{}, admin.ErrUsernameExists
		}
	}
	current.Username = a.Username
	current.FullName = a.FullName
	if a.PasswordHash != "" {
		current.PasswordHash = a.PasswordHash
	}
	current.UpdatedAt = r.s.tick()
	r.s.admins[a.ID] = current
	return current, nil
}

func (r adminRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.admins[id]; !ok {
		return admin.ErrAdminNotFound
	}
	delete(r.s.admins, id)
	return nil
}

// ==================== SUPERVISORS ====================

type supervisorRepo struct{ s *Store }

func (s *Store) joinSupervisor(sp supervisor.Supervisor) supervisor.Supervisor {
	sp.AreaDescription = s.areas[sp.AreaID].Description
	return sp
}

func (r supervisorRepo) check(sp supervisor.Supervisor) error {
	for id, existing := range r.s.supervisors {
		if id != sp.ID && existing.Username == sp.Username {
			return supervisor.ErrUsernameExists
		}
	}
	if _, ok := r.s.areas[sp.AreaID]; !ok {
		return area.ErrAreaNotFound
	}
	return nil
}

func (r supervisorRepo) Create(_ context.Context, sp supervisor.Supervisor) (supervisor.Supervisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(sp); err != nil {
		return supervisor.Supervisor{}, err
	}
	sp.ID = newID()
	sp.CreatedAt = r.s.tick()
	sp.UpdatedAt = sp.CreatedAt
	r.s.supervisors[sp.ID] = sp
	return r.s.joinSupervisor(sp), nil
}

func (r supervisorRepo) GetByID(_ context.Context, id string) (supervisor.Supervisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.supervisors[id]
	if !ok {
		return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
	}
	return r.s.joinSupervisor(sp), nil
}

func (r supervisorRepo) GetByUsername(_ context.Context, username string) (supervisor.Supervisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sp := range r.s.supervisors {
		if sp.Username == username {
			return r.s.joinSupervisor(sp), nil
		}
	}
	return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
}

func (r supervisorRepo) list(keep func(supervisor.Supervisor) bool) []supervisor.Supervisor {
	out := []supervisor.Supervisor{}
	for _, sp := range sortedBy(r.s.supervisors, func(a, b supervisor.Supervisor) bool { return a.FullName < b.FullName }) {
		if keep(sp) {
			out = append(out, r.s.joinSupervisor(sp))
		}
	}
	return out
}

func (r supervisorRepo) List(_ context.Context) ([]supervisor.Supervisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(supervisor.Supervisor) bool { return true }), nil
}

func (r supervisorRepo) ListByArea(_ context.Context, areaID string) ([]supervisor.Supervisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(sp supervisor.Supervisor) bool { return sp.AreaID == areaID }), nil
}

func (r supervisorRepo) Update(_ context.Context, sp supervisor.Supervisor) (supervisor.Supervisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.supervisors[sp.ID]
	if !ok {
		return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
	}
	if err := r.check(sp); err != nil {
		return supervisor.Supervisor{}, err
	}
	current.Username = sp.Username
	current.FullName = sp.FullName
	current.AreaID = sp.AreaID
	if sp.PasswordHash != "" {
		current.PasswordHash = sp.PasswordHash
	}
	current.UpdatedAt = r.s.tick()
	r.s.supervisors[sp.ID] = current
	return r.s.joinSupervisor(current), nil
}

func (r supervisorRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.supervisors[id]; !ok {
		return supervisor.ErrSupervisorNotFound
	}
	if r.s.supervisorWorkers(id) > 0 {
		return supervisor.ErrSupervisorInUse
	}
	delete(r.s.supervisors, id)
	return nil
}

func (r supervisorRepo) CountWorkers(_ context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.supervisorWorkers(id), nil
}

func (s *Store) supervisorWorkers(id string) int {
	count := 0
	for _, w := range s.workers {
		if w.SupervisorID == id {
			count++
		}
	}
	return count
}

// ==================== WORKERS ====================

type workerRepo struct{ s *Store }

func (s *Store) joinWorker(w worker.Worker) worker.Worker {
	w.SupervisorName = s.supervisors[w.SupervisorID].FullName
	w.AreaDescription = s.areas[w.AreaID].Description
	w.Roles = []worker.RoleRef{}
	for _, id := range w.RoleIDs {
		w.Roles = append(w.Roles, worker.RoleRef{ID: id, Description: s.roles[id].Description})
	}
	sort.Slice(w.Roles, func(i, j int) bool { return w.Roles[i].Description < w.Roles[j].Description })
	w.RoleIDs = make([]string, 0, len(w.Roles))
	for _, rr := range w.Roles {
		w.RoleIDs = append(w.RoleIDs, rr.ID)
	}
	return w
}

func (r workerRepo) check(w worker.Worker) error {
	for id, existing := range r.s.workers {
		if id != w.ID && existing.Username == w.Username {
			return worker.ErrUsernameExists
		}
	}
	if _, ok := r.s.supervisors[w.SupervisorID]; !ok {
		return supervisor.ErrSupervisorNotFound
	}
	if _, ok := r.s.areas[w.AreaID]; !ok {
		return area.ErrAreaNotFound
	}
	return nil
}

func (r workerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(w); err != nil {
		return worker.Worker{}, err
	}
	roleIDs, err := r.s.dedupeRoles(w.RoleIDs)
	if err != nil {
		return worker.Worker{}, err
	}
	w.ID = newID()
	w.RoleIDs = roleIDs
	w.CreatedAt = r.s.tick()
	w.UpdatedAt = w.CreatedAt
	r.s.workers[w.ID] = w
	return r.s.joinWorker(w), nil
}

func (s *Store) dedupeRoles(ids []string) ([]string, error) {
	out := []string{}
	seen := map[string]bool{}
	for _, id := range ids {
		if _, ok := s.roles[id]; !ok {
			return nil, role.ErrRoleNotFound
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func (r workerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return r.s.joinWorker(w), nil
}

func (r workerRepo) GetByUsername(_ context.Context, username string) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.workers {
		if w.Username == username {
			return r.s.joinWorker(w), nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (r workerRepo) List(_ context.Context, filter worker.ListFilter) ([]worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []worker.Worker{}
	for _, w := range sortedBy(r.s.workers, func(a, b worker.Worker) bool { return a.FullName < b.FullName }) {
		if filter.AreaID != nil && w.AreaID != *filter.AreaID {
			continue
		}
		if filter.SupervisorID != nil && w.SupervisorID != *filter.SupervisorID {
			continue
		}
		out = append(out, r.s.joinWorker(w))
	}
	return out, nil
}

func (r workerRepo) Update(_ context.Context, w worker.Worker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.workers[w.ID]
	if !ok {
		return worker.ErrWorkerNotFound
	}
	if err := r.check(w); err != nil {
		return err
	}
	current.Username = w.Username
	current.FullName = w.FullName
	current.SupervisorID = w.SupervisorID
	current.AreaID = w.AreaID
	if w.PasswordHash != "" {
		current.PasswordHash = w.PasswordHash
	}
	current.UpdatedAt = r.s.tick()
	r.s.workers[w.ID] = current
	return nil
}

func (r workerRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.workers[id]
	if !ok {
		return worker.ErrWorkerNotFound
	}
	current.PasswordHash = passwordHash
	current.UpdatedAt = r.s.tick()
	r.s.workers[id] = current
	return nil
}

func (r workerRepo) ReplaceRoles(_ context.Context, workerID string, roleIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.workers[workerID]
	if !ok {
		return worker.ErrWorkerNotFound
	}
	ids, err := r.s.dedupeRoles(roleIDs)
	if err != nil {
		return err
	}
	current.RoleIDs = ids
	r.s.workers[workerID] = current
	return nil
}

func (r workerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workers[id]; !ok {
		return worker.ErrWorkerNotFound
	}
	if r.s.workerAssignments(id) > 0 {
		return worker.ErrWorkerInUse
	}
	delete(r.s.workers, id)
	return nil
}

func (r workerRepo) CountAssignments(_ context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.workerAssignments(id), nil
}

func (s *Store) workerAssignments(id string) int {
	count := 0
	for _, a := range s.assignments {
		if a.WorkerID == id {
			count++
		}
	}
	return count
}

// ==================== ZONES ====================

type zoneRepo struct{ s *Store }

func (r zoneRepo) nameTaken(z zone.Zone) bool {
	for id, existing := range r.s.zones {
		if id != z.ID && existing.Active && strings.EqualFold(existing.Name, z.Name) {
			return true
		}
	}
	return false
}

func (r zoneRepo) Create(_ context.Context, z zone.Zone) (zone.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(z) {
		return zone.Zone{}, zone.ErrZoneNameExists
	}
	z.ID = newID()
	z.Active = true
	z.CreatedAt = r.s.tick()
	z.UpdatedAt = z.CreatedAt
	r.s.zones[z.ID] = z
	return z, nil
}

func (r zoneRepo) GetByID(_ context.Context, id string) (zone.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	z, ok := r.s.zones[id]
	if !ok {
		return zone.Zone{}, zone.ErrZoneNotFound
	}
	return z, nil
}

func (r zoneRepo) ListActive(_ context.Context) ([]zone.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []zone.Zone{}
	for _, z := range sortedBy(r.s.zones, func(a, b zone.Zone) bool { return a.CreatedAt.After(b.CreatedAt) }) {
		if z.Active {
			out = append(out, z)
		}
	}
	return out, nil
}

func (r zoneRepo) Update(_ context.Context, z zone.Zone) (zone.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.zones[z.ID]
	if !ok || !current.Active {
		return zone.Zone{}, zone.ErrZoneNotFound
	}
	if r.nameTaken(z) {
		return zone.Zone{}, zone.ErrZoneNameExists
	}
	current.Name = z.Name
	current.Description = z.Description
	current.Geometry = z.Geometry
	current.UpdatedAt = r.s.tick()
	r.s.zones[z.ID] = current
	return current, nil
}

func (r zoneRepo) Deactivate(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.zones[id]
	if !ok || !current.Active {
		return zone.ErrZoneNotFound
	}
	current.Active = false
	current.UpdatedAt = r.s.tick()
	r.s.zones[id] = current
	return nil
}

// ==================== ASSIGNMENTS ====================

type assignmentRepo struct{ s *Store }

func (s *Store) joinAssignment(a assignment.Assignment) assignment.Assignment {
	w := s.workers[a.WorkerID]
	a.WorkerName = w.FullName
	a.SupervisorID = w.SupervisorID
	z := s.zones[a.ZoneID]
	a.ZoneName = z.Name
	a.ZoneDescription = z.Description
	a.ZoneActive = z.Active
	a.Zone = z.Geometry
	a.CreatorName = nil
	if a.CreatedBy != nil {
		if sp, ok := s.supervisors[*a.CreatedBy]; ok {
			a.CreatorName = &sp.FullName
		} else if ad, ok := s.admins[*a.CreatedBy]; ok {
			a.CreatorName = &ad.FullName
		}
	}
	return a
}

func (r assignmentRepo) check(a assignment.Assignment) error {
	if _, ok := r.s.workers[a.WorkerID]; !ok {
		return assignment.ErrWorkerNotFound
	}
	if _, ok := r.s.zones[a.ZoneID]; !ok {
		return assignment.ErrZoneNotFound
	}
	return nil
}

func (r assignmentRepo) Create(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(a); err != nil {
		return assignment.Assignment{}, err
	}
	a.ID = newID()
	a.Active = true
	a.CreatedAt = r.s.tick()
	a.UpdatedAt = a.CreatedAt
	r.s.assignments[a.ID] = a
	return r.s.joinAssignment(a), nil
}

func (r assignmentRepo) GetByID(_ context.Context, id string) (assignment.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assignments[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrAssignmentNotFound
	}
	return r.s.joinAssignment(a), nil
}

func (r assignmentRepo) List(_ context.Context, filter assignment.ListFilter) ([]assignment.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []assignment.Assignment{}
	for _, a := range sortedBy(r.s.assignments, func(a, b assignment.Assignment) bool { return a.CreatedAt.After(b.CreatedAt) }) {
		a = r.s.joinAssignment(a)
		switch {
		case !filter.IncludeInactive && !a.Active:
		case filter.WorkerID != nil && a.WorkerID != *filter.WorkerID:
		case filter.CreatorID != nil && (a.CreatedBy == nil || *a.CreatedBy != *filter.CreatorID):
		case filter.SupervisorID != nil && a.SupervisorID != *filter.SupervisorID:
		default:
			out = append(out, a)
		}
	}
	return out, nil
}

func (r assignmentRepo) Update(_ context.Context, a assignment.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.assignments[a.ID]
	if !ok {
		return assignment.ErrAssignmentNotFound
	}
	if err := r.check(a); err != nil {
		return err
	}
	current.WorkerID = a.WorkerID
	current.ZoneID = a.ZoneID
	current.Plan = a.Plan
	current.Active = a.Active
	current.UpdatedAt = r.s.tick()
	r.s.assignments[a.ID] = current
	return nil
}

func (r assignmentRepo) Deactivate(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.assignments[id]
	if !ok {
		return assignment.ErrAssignmentNotFound
	}
	current.Active = false
	current.UpdatedAt = r.s.tick()
	r.s.assignments[id] = current
	return nil
}

// ==================== ATTENDANCE ====================

type attendanceRepo struct{ s *Store }

func (s *Store) joinRecord(rec attendance.Record) attendance.Record {
	a := s.joinAssignment(s.assignments[rec.AssignmentID])
	rec.Days = a.Plan.Days
	rec.EntryTime = a.Plan.Entry
	rec.ExitTime = a.Plan.Exit
	rec.CreatorID = a.CreatedBy
	rec.WorkerName = s.workers[rec.WorkerID].FullName
	rec.ZoneName = a.ZoneName
	rec.ZoneDescription = a.ZoneDescription
	return rec
}

func (r attendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assignments[rec.AssignmentID]; !ok {
		return attendance.Record{}, attendance.ErrAssignmentNotFound
	}
	rec.ID = newID()
	rec.CreatedAt = r.s.tick()
	r.s.records[rec.ID] = rec
	return r.s.joinRecord(rec), nil
}

func (r attendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r.s.joinRecord(rec), nil
}

func (r attendanceRepo) List(_ context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := []attendance.Record{}
	for _, rec := range sortedBy(r.s.records, func(a, b attendance.Record) bool {
		if a.MarkedAt.Equal(b.MarkedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.MarkedAt.After(b.MarkedAt)
	}) {
		rec = r.s.joinRecord(rec)
		supervisorID := r.s.workers[rec.WorkerID].SupervisorID
		switch {
		case filter.AssignmentID != nil && rec.AssignmentID != *filter.AssignmentID:
		case filter.WorkerID != nil && rec.WorkerID != *filter.WorkerID:
		case filter.CreatorID != nil && (rec.CreatorID == nil || *rec.CreatorID != *filter.CreatorID):
		case filter.SupervisorID != nil && supervisorID != *filter.SupervisorID:
		case filter.Status != nil && string(rec.Status) != *filter.Status:
		case filter.From != nil && rec.MarkedAt.Before(*filter.From):
		case filter.To != nil && rec.MarkedAt.After(*filter.To):
		default:
			matched = append(matched, rec)
		}
	}

	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
