package services

import (
	"context"
	"fmt"
	"time"

	"campusshield/config"
	"campusshield/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 5 * time.Minute

// Jobs runs the periodic maintenance tasks: timeline backfill and the
// open-cases digest mail.
type Jobs struct {
	cron       *cron.Cron
	complaints *ComplaintService
	notifier   Notifier
}

func NewJobs(complaints *ComplaintService, notifier Notifier, cfg config.JobsConfig) (*Jobs, error) {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	j := &Jobs{
		cron:       cron.New(cron.WithChain(cron.Recover(cronLogger()))),
		complaints: complaints,
		notifier:   notifier,
	}

	if cfg.BackfillSchedule != "" {
		if _, err := j.cron.AddFunc(cfg.BackfillSchedule, j.withTimeout(j.RunBackfill)); err != nil {
			return nil, fmt.Errorf("backfill schedule %q: %w", cfg.BackfillSchedule, err)
		}
	}
	if cfg.DigestSchedule != "" {
		if _, err := j.cron.AddFunc(cfg.DigestSchedule, j.withTimeout(j.RunDigest)); err != nil {
			return nil, fmt.Errorf("digest schedule %q: %w", cfg.DigestSchedule, err)
		}
	}
	return j, nil
}

// cronLogger sends scheduler errors, recovered job panics included, to zap.
func cronLogger() cron.Logger {
	std, err := zap.NewStdLogAt(logger.Log.Named("cron"), zap.ErrorLevel)
	if err != nil {
		std = zap.NewStdLog(logger.Log.Named("cron"))
	}
	return cron.PrintfLogger(std)
}

func (j *Jobs) withTimeout(fn func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_ = fn(ctx)
	}
}

func (j *Jobs) Start() {
	j.cron.Start()
	logger.Log.Info("scheduled jobs started", zap.Int("jobs", len(j.cron.Entries())))
}

// Stop waits for running jobs to finish or ctx to expire.
func (j *Jobs) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (j *Jobs) RunBackfill(ctx context.Context) error {
	filled, normalized, err := j.complaints.Backfill(ctx)
	if err != nil {
		logger.Log.Error("timeline backfill failed", zap.Int("filled", filled), zap.Error(err))
		return err
	}
	logger.Log.Info("timeline backfill done", zap.Int("filled", filled), zap.Int64("statuses_normalized", normalized))
	return nil
}

func (j *Jobs) RunDigest(ctx context.Context) error {
	all, err := j.complaints.List(ctx)
	if err != nil {
		logger.Log.Error("digest: list complaints", zap.Error(err))
		return err
	}
	counts := CountByStatus(all)
	if err := j.notifier.Digest(ctx, counts); err != nil {
		logger.Log.Warn("digest mail failed", zap.Error(err))
		return err
	}
	return nil
}
