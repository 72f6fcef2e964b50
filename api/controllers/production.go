package controllers

import (
	"net/http"
	"strings"

	"github.com/JGP1992/theitaliancorner-sub001/api/middleware"
	"github.com/JGP1992/theitaliancorner-sub001/api/responses"
	"github.com/JGP1992/theitaliancorner-sub001/api/validators"
	"github.com/JGP1992/theitaliancorner-sub001/internal/production"
	"github.com/JGP1992/theitaliancorner-sub001/internal/productiontasks"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
)

// ProductionPlan returns the requirements report for ?from&to, or for the
// next ?days (clamped, default 7) starting today.
func ProductionPlan(svc production.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "production service unavailable"))
			return
		}

		q := r.URL.Query()
		from, to := strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to"))

		var (
			report *production.Report
			err    error
		)
		if from != "" || to != "" {
			report, err = svc.PlanForRange(r.Context(), from, to)
		} else {
			days := validators.ParseQueryIntLenient(r, "days", production.DefaultDays)
			report, err = svc.PlanForDays(r.Context(), production.ClampDays(days))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func taskServiceMissing(svc productiontasks.Service, w http.ResponseWriter, r *http.Request, logg *logger.Logger) bool {
	if svc != nil {
		return false
	}
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "production task service unavailable"))
	return true
}

func ProductionTaskList(svc productiontasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if taskServiceMissing(svc, w, r, logg) {
			return
		}

		assignee, err := validators.ParseQueryUUID(r, "assignedToUserId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		tasks, err := svc.List(r.Context(), productiontasks.ListInput{
			From:         strings.TrimSpace(q.Get("from")),
			To:           strings.TrimSpace(q.Get("to")),
			Status:       strings.TrimSpace(q.Get("status")),
			AssignedToID: assignee,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tasks)
	}
}

func ProductionTaskCreate(svc productiontasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if taskServiceMissing(svc, w, r, logg) {
			return
		}

		var body productiontasks.CreateTaskInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.Create(r.Context(), middleware.ActorID(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, task)
	}
}

func ProductionTaskGet(svc productiontasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if taskServiceMissing(svc, w, r, logg) {
			return
		}

		taskID, err := validators.ParseUUIDParam(r, "taskId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.Get(r.Context(), taskID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, task)
	}
}

// ProductionTaskUpdate applies start/complete/cancel actions, the status
// override and field edits in one PATCH.
func ProductionTaskUpdate(svc productiontasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if taskServiceMissing(svc, w, r, logg) {
			return
		}

		taskID, err := validators.ParseUUIDParam(r, "taskId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body productiontasks.UpdateTaskInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.Update(r.Context(), middleware.ActorID(r.Context()), taskID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, task)
	}
}
