package controllers

import (
	"net/http"
	"strings"

	"github.com/JGP1992/theitaliancorner-sub001/api/responses"
	"github.com/JGP1992/theitaliancorner-sub001/api/validators"
	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/pagination"
)

// AuditList pages through the audit log, newest first.
func AuditList(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entityID, err := validators.ParseQueryUUID(r, "entityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		page, err := svc.List(r.Context(), audit.ListFilter{
			EntityType: strings.TrimSpace(q.Get("entityType")),
			EntityID:   entityID,
			Action:     strings.TrimSpace(q.Get("action")),
		}, pagination.Params{Limit: limit, Cursor: strings.TrimSpace(q.Get("cursor"))})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
