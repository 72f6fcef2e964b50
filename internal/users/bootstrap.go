package users

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/config"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/security"
)

// AdminRoleName is the role seeded with every permission.
const AdminRoleName = "admin"

// EnsureBootstrapAdmin seeds the admin role and, if missing, an admin account.
// It reports whether a user was created.
func EnsureBootstrapAdmin(ctx context.Context, tx db.TxRunner, cfg config.BootstrapConfig, passwordCfg config.PasswordConfig) (bool, error) {
	if !cfg.Enabled() {
		return false, nil
	}
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if err := security.ValidatePassword(cfg.AdminPassword); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "bootstrap admin password rejected")
	}

	created := false
	err := tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		role, err := repo.FindRoleByName(ctx, AdminRoleName)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			role = &models.Role{Name: AdminRoleName}
		case err != nil:
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load admin role")
		}
		role.Permissions = permissionStrings(enums.AllPermissions())
		if err := repo.SaveRole(ctx, role); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save admin role")
		}

		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check admin email")
		}

		hash, err := security.HashPassword(cfg.AdminPassword, passwordCfg)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		if _, err := repo.Create(ctx, CreateUserDTO{
			Email:        email,
			PasswordHash: hash,
			FirstName:    "Admin",
			LastName:     "User",
			RoleID:       role.ID,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin user")
		}
		created = true
		return nil
	})
	return created, err
}
