package controllers

import (
	"net/http"
	"strings"

	"github.com/JGP1992/theitaliancorner-sub001/api/middleware"
	"github.com/JGP1992/theitaliancorner-sub001/api/responses"
	"github.com/JGP1992/theitaliancorner-sub001/api/validators"
	"github.com/JGP1992/theitaliancorner-sub001/internal/catalog"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
)

func catalogServiceMissing(svc catalog.Service, w http.ResponseWriter, r *http.Request, logg *logger.Logger) bool {
	if svc != nil {
		return false
	}
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
	return true
}

func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogServiceMissing(svc, w, r, logg) {
			return
		}
		list, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func CategoryCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogServiceMissing(svc, w, r, logg) {
			return
		}
		var body catalog.CreateCategoryInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), middleware.ActorID(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// ItemList supports ?categoryId, ?q (name search) and ?includeInactive.
func ItemList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogServiceMissing(svc, w, r, logg) {
			return
		}
		categoryID, err := validators.ParseQueryUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ListItems(r.Context(), catalog.ItemListFilters{
			CategoryID:      categoryID,
			Query:           validators.SanitizeString(r.URL.Query().Get("q"), 120),
			IncludeInactive: validators.ParseQueryBool(r, "includeInactive"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ItemCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogServiceMissing(svc, w, r, logg) {
			return
		}
		var body catalog.CreateItemInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Name = strings.TrimSpace(body.Name)
		item, err := svc.CreateItem(r.Context(), middleware.ActorID(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func PackagingList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogServiceMissing(svc, w, r, logg) {
			return
		}
		list, err := svc.ListPackaging(r.Context(), validators.ParseQueryBool(r, "includeInactive"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func PackagingCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogServiceMissing(svc, w, r, logg) {
			return
		}
		var body catalog.CreatePackagingInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		option, err := svc.CreatePackaging(r.Context(), middleware.ActorID(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, option)
	}
}

func PackagingUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogServiceMissing(svc, w, r, logg) {
			return
		}
		id, err := validators.ParseUUIDParam(r, "packagingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body catalog.UpdatePackagingInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		option, err := svc.UpdatePackaging(r.Context(), middleware.ActorID(r.Context()), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, option)
	}
}
