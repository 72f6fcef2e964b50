package controllers

import (
	"net/http"
	"strings"

	"github.com/JGP1992/theitaliancorner-sub001/api/middleware"
	"github.com/JGP1992/theitaliancorner-sub001/api/responses"
	"github.com/JGP1992/theitaliancorner-sub001/api/validators"
	"github.com/JGP1992/theitaliancorner-sub001/internal/deliveries"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

type itemWeightRequest struct {
	WeightKg types.NullableFloat `json:"weightKg"`
}

func deliveryServiceMissing(svc deliveries.Service, w http.ResponseWriter, r *http.Request, logg *logger.Logger) bool {
	if svc != nil {
		return false
	}
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
	return true
}

// DeliveryList lists plans filtered by from/to/status/storeId.
func DeliveryList(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deliveryServiceMissing(svc, w, r, logg) {
			return
		}

		storeID, err := validators.ParseQueryUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		plans, err := svc.List(r.Context(), deliveries.ListInput{
			From:    strings.TrimSpace(q.Get("from")),
			To:      strings.TrimSpace(q.Get("to")),
			Status:  strings.TrimSpace(q.Get("status")),
			StoreID: storeID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plans)
	}
}

func DeliveryCreate(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deliveryServiceMissing(svc, w, r, logg) {
			return
		}

		var body deliveries.CreatePlanInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.Create(r.Context(), middleware.ActorID(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, plan)
	}
}

func DeliveryGet(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deliveryServiceMissing(svc, w, r, logg) {
			return
		}

		planID, err := validators.ParseUUIDParam(r, "planId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.Get(r.Context(), planID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

func DeliveryDelete(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deliveryServiceMissing(svc, w, r, logg) {
			return
		}

		planID, err := validators.ParseUUIDParam(r, "planId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), middleware.ActorID(r.Context()), planID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// DeliveryReplaceItems swaps the item list of a plan that has not been sent.
func DeliveryReplaceItems(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deliveryServiceMissing(svc, w, r, logg) {
			return
		}

		planID, err := validators.ParseUUIDParam(r, "planId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body deliveries.ReplaceItemsInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.ReplaceItems(r.Context(), middleware.ActorID(r.Context()), planID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

// DeliveryTransition applies a status change; SENT is refused while weights are missing.
func DeliveryTransition(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deliveryServiceMissing(svc, w, r, logg) {
			return
		}

		planID, err := validators.ParseUUIDParam(r, "planId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body deliveries.TransitionInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.Transition(r.Context(), middleware.ActorID(r.Context()), planID, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

// DeliveryItemWeight sets or clears the measured weight of one delivery line.
func DeliveryItemWeight(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deliveryServiceMissing(svc, w, r, logg) {
			return
		}

		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body itemWeightRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !body.WeightKg.Valid {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "weightKg is required").WithDetails(map[string]string{"weightKg": "is required"}))
			return
		}

		item, err := svc.SetItemWeight(r.Context(), middleware.ActorID(r.Context()), itemID, body.WeightKg.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
