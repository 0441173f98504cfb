package auth

import (
	"context"
	"testing"

	"github.com/cossmil/asistencia-backend/internal/domain/admin"
	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/pkg/jwt"
	"github.com/cossmil/asistencia-backend/internal/pkg/password"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
	"github.com/cossmil/asistencia-backend/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type authFixture struct {
	svc        auth.AuthService
	jwt        *jwt.JWTService
	supervisor supervisor.Supervisor
	worker     worker.Worker
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	ctx := context.Background()
	store := servicetest.NewStore()
	hasher := password.NewHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	_, err = store.Admins().Create(ctx, admin.Admin{Username: "root", PasswordHash: hash, FullName: "Root"})
	require.NoError(t, err)
	a, err := store.Areas().Create(ctx, area.Area{Description: "Enfermeria"})
	require.NoError(t, err)
	s, err := store.Supervisors().Create(ctx, supervisor.Supervisor{
		Username: "jefa", PasswordHash: hash, FullName: "Ana Jefa", AreaID: a.ID,
	})
	require.NoError(t, err)
	w, err := store.Workers().Create(ctx, worker.Worker{
		Username: "jperez", PasswordHash: hash, FullName: "Juan Perez", SupervisorID: s.ID, AreaID: a.ID,
	})
	require.NoError(t, err)

	jwtService, err := jwt.NewJWTService(testSecret, "24h", "2h")
	require.NoError(t, err)

	return authFixture{
		svc:        NewAuthService(store.Admins(), store.Supervisors(), store.Workers(), hasher, jwtService),
		jwt:        jwtService,
		supervisor: s,
		worker:     w,
	}
}

func principalOf(t *testing.T, f authFixture, token string) auth.Principal {
	t.Helper()
	decoded, err := f.jwt.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	p, err := f.jwt.PrincipalFromClaims(claims)
	require.NoError(t, err)
	return p
}

func TestLoginAdmin_Success(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.LoginAdmin(context.Background(), auth.LoginRequest{Username: "root", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, auth.KindAdmin, resp.User.Role)
	assert.Nil(t, resp.User.AreaID)

	p := principalOf(t, f, resp.Token)
	assert.True(t, p.IsAdmin())
	assert.Equal(t, "root", p.Username)
}

func TestLoginSupervisor_CarriesArea(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.LoginSupervisor(context.Background(), auth.LoginRequest{Username: "jefa", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, resp.User.AreaID)
	assert.Equal(t, f.supervisor.AreaID, *resp.User.AreaID)

	p := principalOf(t, f, resp.Token)
	assert.Equal(t, auth.KindSupervisor, p.Kind)
	assert.Equal(t, f.supervisor.ID, p.ID)
	assert.Equal(t, f.supervisor.AreaID, p.AreaID)
}

func TestLoginWorker_CarriesSupervisor(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.LoginWorker(context.Background(), auth.LoginRequest{Username: "jperez", Password: "password123"})
	require.NoError(t, err)

	p := principalOf(t, f, resp.Token)
	assert.Equal(t, auth.KindWorker, p.Kind)
	assert.Equal(t, f.worker.ID, p.ID)
	assert.Equal(t, f.supervisor.ID, p.SupervisorID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		login func(context.Context, auth.LoginRequest) (auth.LoginResponse, error)
		req   auth.LoginRequest
	}{
		{"admin wrong password", f.svc.LoginAdmin, auth.LoginRequest{Username: "root", Password: "nope"}},
		{"admin unknown user", f.svc.LoginAdmin, auth.LoginRequest{Username: "ghost", Password: "password123"}},
		{"worker at supervisor login", f.svc.LoginSupervisor, auth.LoginRequest{Username: "jperez", Password: "password123"}},
		{"supervisor at worker login", f.svc.LoginWorker, auth.LoginRequest{Username: "jefa", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.login(ctx, tt.req)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestLogin_ValidationError(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.LoginWorker(context.Background(), auth.LoginRequest{Username: "  "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "username")
	assert.Contains(t, verrs.ToMap(), "password")
}
