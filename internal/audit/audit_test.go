package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/dbtest"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/pagination"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/requestctx"
)

type stubWriter struct {
	rows []*models.AuditLog
	err  error
}

func (s *stubWriter) Create(_ context.Context, entry *models.AuditLog) error {
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, entry)
	return nil
}

func TestRecorderUsesRequestContext(t *testing.T) {
	writer := &stubWriter{}
	rec := NewRecorder(writer, logger.Nop())

	actor := uuid.New()
	entity := uuid.New()
	ctx := requestctx.WithRequestID(context.Background(), "req-42")
	ctx = requestctx.WithActor(ctx, requestctx.Actor{UserID: actor, Role: "admin"})

	rec.Record(ctx, Entry{Action: "delivery_plan.status_changed", EntityType: "delivery_plan", EntityID: Ref(entity), Details: map[string]any{"to": "SENT"}})

	require.Len(t, writer.rows, 1)
	row := writer.rows[0]
	require.NotNil(t, row.ActorUserID)
	assert.Equal(t, actor, *row.ActorUserID)
	require.NotNil(t, row.RequestID)
	assert.Equal(t, "req-42", *row.RequestID)
	assert.Equal(t, entity, *row.EntityID)
	assert.Equal(t, "SENT", row.Details["to"])
}

func TestRecorderExplicitActorWins(t *testing.T) {
	writer := &stubWriter{}
	rec := NewRecorder(writer, logger.Nop())
	explicit := uuid.New()
	ctx := requestctx.WithActor(context.Background(), requestctx.Actor{UserID: uuid.New()})

	rec.Record(ctx, Entry{ActorID: &explicit, Action: "a", EntityType: "b"})

	require.Len(t, writer.rows, 1)
	assert.Equal(t, explicit, *writer.rows[0].ActorUserID)
	assert.Nil(t, writer.rows[0].RequestID)
}

func TestRecorderSwallowsFailures(t *testing.T) {
	rec := NewRecorder(&stubWriter{err: errors.New("db down")}, logger.Nop())
	rec.Record(context.Background(), Entry{Action: "a", EntityType: "b"})

	var nilRecorder *Recorder
	nilRecorder.Record(context.Background(), Entry{Action: "a"})
}

func TestRefSkipsNil(t *testing.T) {
	assert.Nil(t, Ref(uuid.Nil))
	id := uuid.New()
	assert.Equal(t, id, *Ref(id))
}

func TestRepositoryListPaginatesNewestFirst(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	entity := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.AuditLog{
			Action:     "delivery_plan.status_changed",
			EntityType: "delivery_plan",
			EntityID:   &entity,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.AuditLog{Action: "user.login", EntityType: "user", CreatedAt: base}))

	svc, err := NewService(repo)
	require.NoError(t, err)

	filter := ListFilter{EntityType: "delivery_plan"}
	first, err := svc.List(ctx, filter, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.True(t, first.Items[0].CreatedAt.After(first.Items[1].CreatedAt))
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.List(ctx, filter, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.NextCursor)
	assert.True(t, second.Items[0].CreatedAt.Equal(base))
}

func TestServiceRejectsBadCursor(t *testing.T) {
	svc, err := NewService(NewRepository(dbtest.Open(t)))
	require.NoError(t, err)

	_, err = svc.List(context.Background(), ListFilter{}, pagination.Params{Cursor: "%%%"})
	require.Error(t, err)
}

func TestRepositoryDeleteOlderThan(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.AuditLog{Action: "old", EntityType: "x", CreatedAt: cutoff.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, &models.AuditLog{Action: "new", EntityType: "x", CreatedAt: cutoff.Add(time.Hour)}))

	deleted, err := repo.DeleteOlderThan(ctx, nil, cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var remaining []models.AuditLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Action)
}
