// Package scheduler runs the periodic background jobs, currently the
// subscription-expiry reminder scan.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enotehq/enote/internal/clock"
	"github.com/enotehq/enote/internal/config"
	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
	subscriptiondomain "github.com/enotehq/enote/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	Clock           clock.Clock
	Holder          *config.ReminderConfigHolder
	SubscriptionSvc subscriptiondomain.Service
	OwnerRepo       ownerdomain.Repository
	Notifier        Notifier
}

type Scheduler struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	holder          *config.ReminderConfigHolder
	subscriptionSvc subscriptiondomain.Service
	ownerRepo       ownerdomain.Repository
	notifier        Notifier
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.Holder == nil || p.SubscriptionSvc == nil || p.OwnerRepo == nil || p.Notifier == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:    p.DB,
		log:   p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		clock: p.Clock,

		holder:          p.Holder,
		subscriptionSvc: p.SubscriptionSvc,
		ownerRepo:       p.OwnerRepo,
		notifier:        p.Notifier,
	}, nil
}

func (s *Scheduler) runJob(
	parent context.Context,
	name string,
	timeout time.Duration,
	fn func(ctx context.Context) error,
) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	log := s.log.With(zap.String("job", name))
	log.Debug("job started")

	err := fn(ctx)
	if err == nil {
		log.Debug("job finished")
		return nil
	}

	// Deadline is a soft timeout: the next tick picks up where this run
	// left off.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out",
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
		return nil
	}

	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	cfg := s.holder.Get()
	return s.runJob(parent, "subscription_reminders", cfg.JobTimeout, s.SubscriptionRemindersJob)
}

func (s *Scheduler) RunForever(ctx context.Context) {
	interval := s.holder.Get().RunInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// Pick up a hot-reloaded interval between runs.
		if next := s.holder.Get().RunInterval; next != interval {
			interval = next
			ticker.Reset(interval)
		}
	}
}

// SubscriptionRemindersJob notifies owners whose subscription ends within
// the configured window. One failed notification does not stop the scan.
func (s *Scheduler) SubscriptionRemindersJob(ctx context.Context) error {
	cfg := s.holder.Get()
	now := s.clock.Now()
	from := now
	to := now.Add(time.Duration(cfg.WindowDays) * 24 * time.Hour)

	subs, err := s.subscriptionSvc.ListExpiring(ctx, from, to)
	if err != nil {
		return err
	}

	var jobErr error
	for _, sub := range subs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		owner, err := s.ownerRepo.FindByID(ctx, s.db, sub.OwnerID)
		if err != nil {
			jobErr = errors.Join(jobErr, err)
			continue
		}
		if owner == nil {
			s.log.Warn("expiring subscription without owner",
				zap.Int64("subscription_id", sub.ID.Int64()),
				zap.Int64("owner_id", sub.OwnerID.Int64()),
			)
			continue
		}

		if err := s.notifier.NotifyExpiring(ctx, owner, sub); err != nil {
			s.log.Warn("reminder delivery failed",
				zap.Int64("owner_id", owner.ID.Int64()),
				zap.Error(err),
			)
			jobErr = errors.Join(jobErr, err)
		}
	}
	return jobErr
}
