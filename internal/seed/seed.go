// Package seed bootstraps a fresh database from a YAML file: areas with their
// roles, admin accounts and supervisors. Applying the same file twice is a
// no-op for records that already exist.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cossmil/asistencia-backend/internal/domain/admin"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/master/role"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/password"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
	"github.com/goccy/go-yaml"
)

type File struct {
	Areas       []AreaSeed       `yaml:"areas"`
	Admins      []AccountSeed    `yaml:"admins"`
	Supervisors []SupervisorSeed `yaml:"supervisors"`
}

type AreaSeed struct {
	Description string   `yaml:"descripcion"`
	Roles       []string `yaml:"roles"`
}

type AccountSeed struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	FullName string `yaml:"nombre_completo"`
}

type SupervisorSeed struct {
	AccountSeed `yaml:",inline"`
	Area        string `yaml:"area"`
}

// Load reads and decodes a seed file. Unknown keys are rejected.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, f.Validate()
}

func (f File) Validate() error {
	var errs validator.ValidationErrors
	areas := make(map[string]bool, len(f.Areas))
	for i, a := range f.Areas {
		if validator.IsEmpty(a.Description) {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("areas[%d].descripcion", i), Message: "descripcion is required"})
		}
		areas[strings.TrimSpace(a.Description)] = true
	}
	check := func(field string, acc AccountSeed) {
		if !validator.IsValidUsername(acc.Username) {
			errs = append(errs, validator.ValidationError{Field: field + ".username", Message: "username is invalid"})
		}
		switch {
		case len(acc.Password) < 8:
			errs = append(errs, validator.ValidationError{Field: field + ".password", Message: "password must be at least 8 characters long"})
		case !validator.FitsBcrypt(acc.Password):
			errs = append(errs, validator.ValidationError{Field: field + ".password", Message: fmt.Sprintf("password must not exceed %d bytes", validator.MaxPasswordBytes)})
		}
	}
	for i, a := range f.Admins {
		check(fmt.Sprintf("admins[%d]", i), a)
	}
	for i, s := range f.Supervisors {
		field := fmt.Sprintf("supervisors[%d]", i)
		check(field, s.AccountSeed)
		if !areas[strings.TrimSpace(s.Area)] {
			errs = append(errs, validator.ValidationError{Field: field + ".area", Message: "area must be one of the seeded areas"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Repositories struct {
	Areas       area.AreaRepository
	Roles       role.RoleRepository
	Admins      admin.AdminRepository
	Supervisors supervisor.SupervisorRepository
}

// Summary counts the records created by Apply.
type Summary struct {
	Areas       int
	Roles       int
	Admins      int
	Supervisors int
}

// Apply creates everything in f that does not exist yet, in one transaction.
// Existing rows are looked up first: a unique violation would abort the
// surrounding Postgres transaction.
func Apply(ctx context.Context, db database.Transactor, repos Repositories, hasher *password.Hasher, f File) (Summary, error) {
	var sum Summary
	err := db.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := repos.Areas.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list areas: %w", err)
		}
		areaIDs := make(map[string]string, len(existing))
		for _, a := range existing {
			areaIDs[a.Description] = a.ID
		}

		for _, a := range f.Areas {
			desc := strings.TrimSpace(a.Description)
			id, ok := areaIDs[desc]
			if !ok {
				created, err := repos.Areas.Create(ctx, area.Area{Description: desc})
				if err != nil {
					return fmt.Errorf("failed to create area %q: %w", desc, err)
				}
				id = created.ID
				areaIDs[desc] = id
				sum.Areas++
			}

			roles, err := repos.Roles.ListByArea(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to list roles of %q: %w", desc, err)
			}
			known := make(map[string]bool, len(roles))
			for _, rl := range roles {
				known[rl.Description] = true
			}
			for _, r := range a.Roles {
				r = strings.TrimSpace(r)
				if known[r] {
					continue
				}
				if _, err := repos.Roles.Create(ctx, role.Role{Description: r, AreaID: id}); err != nil {
					return fmt.Errorf("failed to create role %q: %w", r, err)
				}
				known[r] = true
				sum.Roles++
			}
		}

		for _, acc := range f.Admins {
			_, err := repos.Admins.GetByUsername(ctx, acc.Username)
			if err == nil {
				slog.Info("Admin already exists, skipping", "username", acc.Username)
				continue
			}
			if !errors.Is(err, admin.ErrAdminNotFound) {
				return fmt.Errorf("failed to look up admin %q: %w", acc.Username, err)
			}
			hash, err := hasher.Hash(acc.Password)
			if err != nil {
				return err
			}
			_, err = repos.Admins.Create(ctx, admin.Admin{
				Username:     acc.Username,
				PasswordHash: hash,
				FullName:     fullName(acc),
			})
			if err != nil {
				return fmt.Errorf("failed to create admin %q: %w", acc.Username, err)
			}
			sum.Admins++
		}

		for _, s := range f.Supervisors {
			_, err := repos.Supervisors.GetByUsername(ctx, s.Username)
			if err == nil {
				slog.Info("Supervisor already exists, skipping", "username", s.Username)
				continue
			}
			if !errors.Is(err, supervisor.ErrSupervisorNotFound) {
				return fmt.Errorf("failed to look up supervisor %q: %w", s.Username, err)
			}
			hash, err := hasher.Hash(s.Password)
			if err != nil {
				return err
			}
			_, err = repos.Supervisors.Create(ctx, supervisor.Supervisor{
				Username:     s.Username,
				PasswordHash: hash,
				FullName:     fullName(s.AccountSeed),
				AreaID:       areaIDs[strings.TrimSpace(s.Area)],
			})
			if err != nil {
				return fmt.Errorf("failed to create supervisor %q: %w", s.Username, err)
			}
			sum.Supervisors++
		}
		return nil
	})
	return sum, err
}

func fullName(acc AccountSeed) string {
	if name := strings.TrimSpace(acc.FullName); name != "" {
		return name
	}
	return acc.Username
}
