package cron

import (
	"context"
	"fmt"
	"time"
)

const defaultRetention = 30 * 24 * time.Hour

// PurgeFunc deletes rows older than cutoff and reports how many went.
type PurgeFunc func(ctx context.Context, cutoff time.Time) (int64, error)

// RetentionJob purges one table's expired rows.
type RetentionJob struct {
	name      string
	retention time.Duration
	purge     PurgeFunc
	now       func() time.Time
}

func NewRetentionJob(name string, retention time.Duration, purge PurgeFunc) (*RetentionJob, error) {
	if name == "" {
		return nil, fmt.Errorf("job name required")
	}
	if purge == nil {
		return nil, fmt.Errorf("purge func required")
	}
	if retention <= 0 {
		retention = defaultRetention
	}
	return &RetentionJob{name: name, retention: retention, purge: purge, now: time.Now}, nil
}

func (j *RetentionJob) Name() string { return j.name }

func (j *RetentionJob) Run(ctx context.Context) (int64, error) {
	cutoff := j.now().UTC().Add(-j.retention)
	deleted, err := j.purge(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", j.name, err)
	}
	return deleted, nil
}
