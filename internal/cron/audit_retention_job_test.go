package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
)

func TestAuditRetentionJobDeletesOldEntries(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeAuditRetentionRepo{rows: 12}
	job := newAuditRetentionJob(t, repo, 0)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expectedCutoff := now.Add(-auditRetentionDays * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, repo.lastCutoff)
	}
	if repo.called != 1 {
		t.Fatalf("expected repo called once, got %d", repo.called)
	}
}

func TestAuditRetentionJobHonorsConfiguredDays(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeAuditRetentionRepo{}
	job := newAuditRetentionJob(t, repo, 30)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := now.AddDate(0, 0, -30); !repo.lastCutoff.Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, repo.lastCutoff)
	}
}

func TestAuditRetentionJobPropagatesError(t *testing.T) {
	repo := &fakeAuditRetentionRepo{err: errors.New("boom")}
	job := newAuditRetentionJob(t, repo, 0)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newAuditRetentionJob(t *testing.T, repo *fakeAuditRetentionRepo, days int) *auditRetentionJob {
	t.Helper()
	jobIface, err := NewAuditRetentionJob(AuditRetentionJobParams{
		Logger:     logger.Nop(),
		DB:         inlineTxRunner{},
		Repository: repo,
		Retention:  days,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	return jobIface.(*auditRetentionJob)
}

type inlineTxRunner struct{}

func (inlineTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeAuditRetentionRepo struct {
	lastCutoff time.Time
	called     int
	rows       int64
	err        error
}

func (f *fakeAuditRetentionRepo) DeleteOlderThan(_ context.Context, _ *gorm.DB, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	return f.rows, f.err
}
