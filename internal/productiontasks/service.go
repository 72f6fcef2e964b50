package productiontasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/dates"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
)

const entityTask = "production_task"

type taskRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductionTask, error)
	List(ctx context.Context, filter ListFilter) ([]models.ProductionTask, error)
	Create(ctx context.Context, task *models.ProductionTask) error
	Save(ctx context.Context, task *models.ProductionTask) error
	FindItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	PackagingExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type auditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Service exposes production task operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreateTaskInput) (*TaskDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*TaskDTO, error)
	List(ctx context.Context, input ListInput) ([]TaskDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdateTaskInput) (*TaskDTO, error)
}

type ServiceParams struct {
	Repo   taskRepository
	Audit  auditRecorder
	Logger *logger.Logger
}

type service struct {
	repo  taskRepository
	audit auditRecorder
	logg  *logger.Logger
	now   func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("production task repository required")
	}
	if params.Audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: params.Repo, audit: params.Audit, logg: logg, now: time.Now}, nil
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateTaskInput) (*TaskDTO, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input.AssignedToUserID.Value, input.PackagingOptionID.Value); err != nil {
		return nil, err
	}

	outcome, err := Apply(task, input, actorID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update production task")
	}

	details := map[string]any{
		"from":   outcome.From.String(),
		"to":     outcome.To.String(),
		"fields": outcome.Fields,
	}
	if outcome.Overridden {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"task_id":     id.String(),
			"status_from": outcome.From.String(),
			"status_to":   outcome.To.String(),
		})
		s.logg.Warn(logCtx, "production_task.status_override")
		s.audit.Record(ctx, audit.Entry{
			ActorID:    audit.Ref(actorID),
			Action:     enums.AuditActionProductionTaskOverride,
			EntityType: entityTask,
			EntityID:   audit.Ref(id),
			Details:    details,
		})
	} else {
		s.audit.Record(ctx, audit.Entry{
			ActorID:    audit.Ref(actorID),
			Action:     enums.AuditActionProductionTaskUpdated,
			EntityType: entityTask,
			EntityID:   audit.Ref(id),
			Details:    details,
		})
	}

	return s.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateTaskInput) (*TaskDTO, error) {
	day, err := dates.ParseDay(input.Date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date")
	}
	if input.TargetQuantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "targetQuantity must be positive")
	}
	item, err := s.repo.FindItem(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}
	if err := s.checkReferences(ctx, input.AssignedToUserID, input.PackagingOptionID); err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = item.Unit
	}
	kind := enums.OutputKindForUnit(unit)
	if strings.TrimSpace(input.OutputKind) != "" {
		if kind, err = enums.ParseTaskOutputKind(strings.TrimSpace(input.OutputKind)); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "outputKind must be UNIT or TRAY")
		}
	}

	task := &models.ProductionTask{
		Date:              day,
		ItemID:            item.ID,
		TargetQuantity:    input.TargetQuantity,
		Unit:              unit,
		OutputKind:        kind,
		Status:            enums.ProductionTaskStatusScheduled,
		AssignedToUserID:  input.AssignedToUserID,
		PackagingOptionID: input.PackagingOptionID,
		Notes:             cloneString(input.Notes),
		CreatedByID:       audit.Ref(actorID),
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create production task")
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionProductionTaskCreated,
		EntityType: entityTask,
		EntityID:   audit.Ref(task.ID),
		Details:    map[string]any{"item": item.Name, "date": dates.Format(day), "outputKind": kind.String()},
	})
	return s.Get(ctx, task.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*TaskDTO, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(task), nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]TaskDTO, error) {
	filter := ListFilter{AssignedToID: input.AssignedToID}
	if strings.TrimSpace(input.From) != "" {
		from, err := dates.ParseDay(input.From)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from date")
		}
		filter.From = &from
	}
	if strings.TrimSpace(input.To) != "" {
		to, err := dates.ParseDay(input.To)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to date")
		}
		filter.To = &to
	}
	if strings.TrimSpace(input.Status) != "" {
		status, err := enums.ParseProductionTaskStatus(strings.TrimSpace(input.Status))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
		filter.Status = &status
	}

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list production tasks")
	}
	out := make([]TaskDTO, 0, len(tasks))
	for i := range tasks {
		out = append(out, *FromModel(&tasks[i]))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.ProductionTask, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("production task")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load production task")
	}
	return task, nil
}

func (s *service) checkReferences(ctx context.Context, userID, packagingID *uuid.UUID) error {
	if userID != nil {
		ok, err := s.repo.UserExists(ctx, *userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "assigned user does not exist")
		}
	}
	if packagingID != nil {
		ok, err := s.repo.PackagingExists(ctx, *packagingID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load packaging option")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "packaging option does not exist")
		}
	}
	return nil
}
