package auth

import "context"

type Kind string

const (
	KindAdmin      Kind = "admin"      // Super administrator - full access
	KindSupervisor Kind = "supervisor" // Personal de area - manages the workers of one area
	KindWorker     Kind = "worker"     // Trabajador - marks attendance
)

func (k Kind) IsValid() bool {
	return k == KindAdmin || k == KindSupervisor || k == KindWorker
}

// Principal is the authenticated caller of a request.
type Principal struct {
	Kind         Kind
	ID           string
	Username     string
	AreaID       string // empty for admins
	SupervisorID string // set for workers only
}

func (p Principal) IsAdmin() bool {
	return p.Kind == KindAdmin
}

func (p Principal) IsSupervisor() bool {
	return p.Kind == KindSupervisor
}

func (p Principal) IsWorker() bool {
	return p.Kind == KindWorker
}

// Supervises reports whether p may manage a worker assigned to supervisorID.
func (p Principal) Supervises(supervisorID string) bool {
	return p.IsAdmin() || (p.IsSupervisor() && p.ID == supervisorID)
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// RequirePrincipal returns the caller or ErrUnauthenticated.
func RequirePrincipal(ctx context.Context) (Principal, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok || !p.Kind.IsValid() || p.ID == "" {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}
