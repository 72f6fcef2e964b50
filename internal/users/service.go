package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/config"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/security"
)

const tempPasswordLength = 16

type userRepository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	FindRoleByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	FindRoleByName(ctx context.Context, name string) (*models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	SaveRole(ctx context.Context, role *models.Role) error
}

type auditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Service manages staff accounts and roles.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	Create(ctx context.Context, actorID uuid.UUID, input CreateUserInput) (*CreatedUser, error)
	ListRoles(ctx context.Context) ([]RoleDTO, error)
	UpsertRole(ctx context.Context, actorID uuid.UUID, input UpsertRoleInput) (*RoleDTO, error)
}

type ServiceParams struct {
	Repo           userRepository
	Audit          auditRecorder
	PasswordConfig config.PasswordConfig
}

type service struct {
	repo        userRepository
	audit       auditRecorder
	passwordCfg config.PasswordConfig
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: params.Repo, audit: params.Audit, passwordCfg: params.PasswordConfig}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateUserInput) (*CreatedUser, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "firstName and lastName are required")
	}

	role, err := s.repo.FindRoleByID(ctx, input.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "role does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load role")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}

	password := input.Password
	temp := ""
	if password == "" {
		if temp, err = security.GenerateTempPassword(tempPasswordLength); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
		}
		password = temp
	} else if err := security.ValidatePassword(password); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		RoleID:       role.ID,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	user.Role = role

	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionUserCreated,
		EntityType: "user",
		EntityID:   audit.Ref(user.ID),
		Details:    map[string]any{"email": email, "role": role.Name},
	})
	return &CreatedUser{User: FromModel(user), TempPassword: temp}, nil
}

func (s *service) ListRoles(ctx context.Context) ([]RoleDTO, error) {
	rows, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list roles")
	}
	out := make([]RoleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *RoleFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) UpsertRole(ctx context.Context, actorID uuid.UUID, input UpsertRoleInput) (*RoleDTO, error) {
	name := strings.ToLower(strings.TrimSpace(input.Name))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	perms, err := parsePermissions(input.Permissions)
	if err != nil {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, name)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		role = &models.Role{Name: name}
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load role")
	}
	previous := append([]string{}, []string(role.Permissions)...)
	role.Permissions = permissionStrings(perms)
	if input.Description != nil {
		role.Description = input.Description
	}

	if err := s.repo.SaveRole(ctx, role); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save role")
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionRoleUpdated,
		EntityType: "role",
		EntityID:   audit.Ref(role.ID),
		Details:    map[string]any{"name": role.Name, "before": previous, "after": []string(role.Permissions)},
	})
	return RoleFromModel(role), nil
}

func parsePermissions(raw []string) ([]enums.Permission, error) {
	seen := map[enums.Permission]bool{}
	out := make([]enums.Permission, 0, len(raw))
	for _, value := range raw {
		perm, err := enums.ParsePermission(strings.TrimSpace(value))
		if err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown permission %q", value)
		}
		if seen[perm] {
			continue
		}
		seen[perm] = true
		out = append(out, perm)
	}
	return out, nil
}
