package productiontasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/dates"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

// TaskDTO is the API representation of a production task.
type TaskDTO struct {
	ID                uuid.UUID                  `json:"id"`
	Date              string                     `json:"date"`
	ItemID            uuid.UUID                  `json:"itemId"`
	ItemName          string                     `json:"itemName,omitempty"`
	Category          string                     `json:"category,omitempty"`
	TargetQuantity    float64                    `json:"targetQuantity"`
	Unit              string                     `json:"unit"`
	OutputKind        enums.TaskOutputKind       `json:"outputKind"`
	Status            enums.ProductionTaskStatus `json:"status"`
	AssignedToUserID  *uuid.UUID                 `json:"assignedToUserId"`
	PackagingOptionID *uuid.UUID                 `json:"packagingOptionId"`
	PackagingName     string                     `json:"packagingName,omitempty"`
	Notes             *string                    `json:"notes"`
	TotalWeightKg     *float64                   `json:"totalWeightKg"`
	StartedAt         *time.Time                 `json:"startedAt"`
	CompletedAt       *time.Time                 `json:"completedAt"`
	CreatedBy         *uuid.UUID                 `json:"createdBy,omitempty"`
	CreatedAt         time.Time                  `json:"createdAt"`
	UpdatedAt         time.Time                  `json:"updatedAt"`
}

// CreateTaskInput schedules a new task.
type CreateTaskInput struct {
	Date              string     `json:"date" validate:"required"`
	ItemID            uuid.UUID  `json:"itemId" validate:"required"`
	TargetQuantity    float64    `json:"targetQuantity" validate:"gt=0"`
	Unit              string     `json:"unit" validate:"omitempty,max=64"`
	OutputKind        string     `json:"outputKind" validate:"omitempty,oneof=UNIT TRAY"`
	AssignedToUserID  *uuid.UUID `json:"assignedToUserId"`
	PackagingOptionID *uuid.UUID `json:"packagingOptionId"`
	Notes             *string    `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateTaskInput is the PATCH body. Actions apply in the order
// start, complete, cancel, then a literal status override.
type UpdateTaskInput struct {
	Start             bool                 `json:"start"`
	Complete          bool                 `json:"complete"`
	Cancel            bool                 `json:"cancel"`
	Status            *string              `json:"status"`
	TotalWeightKg     *float64             `json:"totalWeightKg"`
	AssignedToUserID  types.NullableUUID   `json:"assignedToUserId"`
	Notes             types.NullableString `json:"notes"`
	PackagingOptionID types.NullableUUID   `json:"packagingOptionId"`
}

// ListInput carries raw query values for task listings.
type ListInput struct {
	From         string
	To           string
	Status       string
	AssignedToID *uuid.UUID
}

func FromModel(task *models.ProductionTask) *TaskDTO {
	if task == nil {
		return nil
	}
	dto := &TaskDTO{
		ID:                task.ID,
		Date:              dates.Format(task.Date),
		ItemID:            task.ItemID,
		TargetQuantity:    task.TargetQuantity,
		Unit:              task.Unit,
		OutputKind:        task.OutputKind,
		Status:            task.Status,
		AssignedToUserID:  task.AssignedToUserID,
		PackagingOptionID: task.PackagingOptionID,
		Notes:             task.Notes,
		TotalWeightKg:     task.TotalWeightKg,
		StartedAt:         task.StartedAt,
		CompletedAt:       task.CompletedAt,
		CreatedBy:         task.CreatedByID,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}
	if task.Item != nil {
		dto.ItemName = task.Item.Name
		if task.Item.Category != nil {
			dto.Category = task.Item.Category.Name
		}
	}
	if task.PackagingOption != nil {
		dto.PackagingName = task.PackagingOption.Name
	}
	return dto
}
