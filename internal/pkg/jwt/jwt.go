package jwt

import (
	"fmt"
	"time"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(principal auth.Principal) (token string, expiresAt int64, err error)
	PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration      time.Duration
	adminAccessTokenExpiration time.Duration
	tokenAuth                  *jwtauth.JWTAuth
	now                        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, adminAccessTokenExpirationTime string) (*JWTService, error) {
	access, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	adminAccess, err := time.ParseDuration(adminAccessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid admin access token expiration: %w", err)
	}

	return &JWTService{
		accessTokenExpiration:      access,
		adminAccessTokenExpiration: adminAccess,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                        time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(principal auth.Principal) (token string, expiresAt int64, err error) {
	expDuration := j.accessTokenExpiration
	if principal.IsAdmin() {
		expDuration = j.adminAccessTokenExpiration
	}
	now := j.now()
	expiresAt = now.Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":       principal.ID,
		"username":      principal.Username,
		"role":          string(principal.Kind),
		"area_id":       returnValueOrNil(principal.AreaID),
		"supervisor_id": returnValueOrNil(principal.SupervisorID),
		"type":          "access",
		"iat":           now.Unix(),
		"exp":           expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// PrincipalFromClaims rebuilds the caller from a verified access token.
func (j *JWTService) PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error) {
	tokenType, _ := claims["type"].(string)
	if tokenType != "access" {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	kind := auth.Kind(role)
	if userID == "" || !kind.IsValid() {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	p := auth.Principal{Kind: kind, ID: userID}
	p.Username, _ = claims["username"].(string)
	p.AreaID, _ = claims["area_id"].(string)
	p.SupervisorID, _ = claims["supervisor_id"].(string)

	switch kind {
	case auth.KindSupervisor:
		if p.AreaID == "" {
			return auth.Principal{}, auth.ErrInvalidToken
		}
	case auth.KindWorker:
		if p.AreaID == "" || p.SupervisorID == "" {
			return auth.Principal{}, auth.ErrInvalidToken
		}
	}

	return p, nil
}

func returnValueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
