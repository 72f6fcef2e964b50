package audit

import (
	"context"
	"fmt"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/pagination"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

type listRepository interface {
	List(ctx context.Context, filter ListFilter, cursor *pagination.Cursor, limit int) ([]models.AuditLog, error)
}

// Service exposes read access to the audit trail.
type Service interface {
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*types.Page[EntryDTO], error)
}

type service struct {
	repo listRepository
}

func NewService(repo listRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*types.Page[EntryDTO], error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.List(ctx, filter, cursor, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list audit entries")
	}

	rows, next := pagination.NextPage(rows, limit, func(row models.AuditLog) pagination.Cursor {
		return pagination.Cursor{CreatedAt: row.CreatedAt, ID: row.ID}
	})
	page := &types.Page[EntryDTO]{Items: make([]EntryDTO, 0, len(rows)), NextCursor: next}
	for _, row := range rows {
		page.Items = append(page.Items, FromModel(row))
	}
	return page, nil
}
