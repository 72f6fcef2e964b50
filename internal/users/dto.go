package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	IsActive    bool       `json:"isActive"`
	Role        *RoleDTO   `json:"role,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// RoleDTO exposes a role with its permission strings.
type RoleDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Permissions []string  `json:"permissions"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	RoleID       uuid.UUID
	IsActive     *bool
}

// CreateUserInput is the admin payload for a new staff account. An empty
// password makes the service generate a temporary one.
type CreateUserInput struct {
	Email     string    `json:"email" validate:"required,email"`
	FirstName string    `json:"firstName" validate:"notblank,max=100"`
	LastName  string    `json:"lastName" validate:"notblank,max=100"`
	RoleID    uuid.UUID `json:"roleId" validate:"required"`
	Password  string    `json:"password" validate:"omitempty,min=10"`
}

// CreatedUser carries the one-time temporary password, when generated.
type CreatedUser struct {
	User         *UserDTO `json:"user"`
	TempPassword string   `json:"tempPassword,omitempty"`
}

// UpsertRoleInput creates a role or replaces its permissions, keyed by name.
type UpsertRoleInput struct {
	Name        string   `json:"name" validate:"notblank,max=64"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	Permissions []string `json:"permissions" validate:"required,dive,required"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		Role:        RoleFromModel(u.Role),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func RoleFromModel(r *models.Role) *RoleDTO {
	if r == nil {
		return nil
	}
	perms := append([]string{}, []string(r.Permissions)...)
	return &RoleDTO{ID: r.ID, Name: r.Name, Description: r.Description, Permissions: perms}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		IsActive:     isActive,
		RoleID:       c.RoleID,
	}
}

// PermissionsOf returns the known permissions granted by a role.
func PermissionsOf(r *models.Role) []enums.Permission {
	if r == nil {
		return nil
	}
	out := make([]enums.Permission, 0, len(r.Permissions))
	for _, raw := range r.Permissions {
		if perm, err := enums.ParsePermission(raw); err == nil {
			out = append(out, perm)
		}
	}
	return out
}

func permissionStrings(perms []enums.Permission) types.StringArray {
	out := make(types.StringArray, 0, len(perms))
	for _, p := range perms {
		out = append(out, p.String())
	}
	return out
}
