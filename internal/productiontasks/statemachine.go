package productiontasks

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
)

const trayWeightRequired = "Total weight (kg) is required to complete tray tasks"

// Outcome summarizes what Apply changed.
type Outcome struct {
	From       enums.ProductionTaskStatus
	To         enums.ProductionTaskStatus
	Overridden bool
	Fields     []string
}

// Apply mutates task according to the PATCH input. A literal status
// overwrites whatever the actions computed and skips their guards.
func Apply(task *models.ProductionTask, in UpdateTaskInput, actorID uuid.UUID, now time.Time) (Outcome, error) {
	out := Outcome{From: task.Status}

	// unit tasks only keep a weight when one was actually measured
	if w := in.TotalWeightKg; w != nil && !positiveWeight(*w) {
		if task.OutputKind == enums.TaskOutputKindTray {
			return out, pkgerrors.New(pkgerrors.CodeValidation, "totalWeightKg must be a positive number")
		}
		in.TotalWeightKg = nil
	}
	var override enums.ProductionTaskStatus
	if in.Status != nil {
		parsed, err := enums.ParseProductionTaskStatus(strings.TrimSpace(*in.Status))
		if err != nil {
			return out, pkgerrors.New(pkgerrors.CodeValidation, "Invalid status. Must be one of: SCHEDULED, IN_PROGRESS, DONE, CANCELLED")
		}
		override = parsed
	}

	if in.Start {
		if task.Status.IsTerminal() {
			return out, pkgerrors.Newf(pkgerrors.CodeStateConflict, "Cannot start a task that is %s", task.Status)
		}
		task.Status = enums.ProductionTaskStatusInProgress
		if task.StartedAt == nil {
			started := now
			task.StartedAt = &started
		}
		assignIfEmpty(task, actorID)
	}

	if in.Complete {
		if task.OutputKind == enums.TaskOutputKindTray && in.TotalWeightKg == nil {
			return out, pkgerrors.New(pkgerrors.CodeValidation, trayWeightRequired)
		}
		task.Status = enums.ProductionTaskStatusDone
		completed := now
		task.CompletedAt = &completed
		assignIfEmpty(task, actorID)
	}

	if in.Cancel {
		task.Status = enums.ProductionTaskStatusCancelled
	}

	if in.Status != nil {
		task.Status = override
		out.Overridden = true
	}

	if in.TotalWeightKg != nil {
		w := *in.TotalWeightKg
		task.TotalWeightKg = &w
		out.Fields = append(out.Fields, "totalWeightKg")
	}
	if in.AssignedToUserID.Valid {
		task.AssignedToUserID = cloneUUID(in.AssignedToUserID.Value)
		out.Fields = append(out.Fields, "assignedToUserId")
	}
	if in.Notes.Valid {
		task.Notes = cloneString(in.Notes.Value)
		out.Fields = append(out.Fields, "notes")
	}
	if in.PackagingOptionID.Valid {
		task.PackagingOptionID = cloneUUID(in.PackagingOptionID.Value)
		task.PackagingOption = nil
		out.Fields = append(out.Fields, "packagingOptionId")
	}

	out.To = task.Status
	return out, nil
}

func positiveWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w > 0
}

func assignIfEmpty(task *models.ProductionTask, actorID uuid.UUID) {
	if task.AssignedToUserID != nil || actorID == uuid.Nil {
		return
	}
	id := actorID
	task.AssignedToUserID = &id
}

func cloneUUID(v *uuid.UUID) *uuid.UUID {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := strings.TrimSpace(*v)
	if c == "" {
		return nil
	}
	return &c
}
