package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/clock"
	"github.com/enotehq/enote/internal/config"
	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
	ownerrepo "github.com/enotehq/enote/internal/owner/repository"
	subscriptiondomain "github.com/enotehq/enote/internal/subscription/domain"
	subscriptionrepo "github.com/enotehq/enote/internal/subscription/repository"
	subscriptionservice "github.com/enotehq/enote/internal/subscription/service"
	"github.com/enotehq/enote/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	notified []snowflake.ID
	failFor  map[snowflake.ID]error
}

func (n *recordingNotifier) NotifyExpiring(_ context.Context, owner *ownerdomain.Owner, _ *subscriptiondomain.Subscription) error {
	if err, ok := n.failFor[owner.ID]; ok {
		return err
	}
	n.notified = append(n.notified, owner.ID)
	return nil
}

type schedulerFixture struct {
	scheduler *Scheduler
	db        *gorm.DB
	node      *snowflake.Node
	clock     *clock.FakeClock
	notifier  *recordingNotifier
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&ownerdomain.Owner{}, &subscriptiondomain.Subscription{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC))
	log := zaptest.NewLogger(t)

	subscriptionSvc := subscriptionservice.NewService(subscriptionservice.ServiceParam{
		DB:    conn,
		Log:   log,
		GenID: node,
		Clock: fake,
		Repo:  subscriptionrepo.Provide(),
	})

	notifier := &recordingNotifier{failFor: map[snowflake.ID]error{}}
	sched, err := New(Params{
		DB:              conn,
		Log:             log,
		Clock:           fake,
		Holder:          config.NewStaticReminderHolder(config.DefaultReminderConfig()),
		SubscriptionSvc: subscriptionSvc,
		OwnerRepo:       ownerrepo.Provide(),
		Notifier:        notifier,
	})
	require.NoError(t, err)

	return &schedulerFixture{
		scheduler: sched,
		db:        conn,
		node:      node,
		clock:     fake,
		notifier:  notifier,
	}
}

func (f *schedulerFixture) seedOwner(t *testing.T, phone string) *ownerdomain.Owner {
	t.Helper()
	owner := &ownerdomain.Owner{
		ID:           f.node.Generate(),
		Name:         "Owner " + phone,
		Email:        phone + "@example.com",
		Phone:        phone,
		PasswordHash: "x",
		CreatedAt:    f.clock.Now(),
		UpdatedAt:    f.clock.Now(),
	}
	require.NoError(t, f.db.Create(owner).Error)
	return owner
}

func (f *schedulerFixture) seedSubscription(t *testing.T, ownerID snowflake.ID, endsIn time.Duration) *subscriptiondomain.Subscription {
	t.Helper()
	now := f.clock.Now()
	sub := &subscriptiondomain.Subscription{
		ID:        f.node.Generate(),
		OwnerID:   ownerID,
		Type:      subscriptiondomain.TypeFree,
		StartDate: now.Add(-subscriptiondomain.TrialDuration),
		EndDate:   now.Add(endsIn),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.db.Create(sub).Error)
	return sub
}

func TestRemindersOnlyWithinWindow(t *testing.T) {
	f := newSchedulerFixture(t)

	soon := f.seedOwner(t, "77010000001")
	f.seedSubscription(t, soon.ID, 2*24*time.Hour)

	far := f.seedOwner(t, "77010000002")
	f.seedSubscription(t, far.ID, 10*24*time.Hour)

	expired := f.seedOwner(t, "77010000003")
	f.seedSubscription(t, expired.ID, -24*time.Hour)

	require.NoError(t, f.scheduler.RunOnce(context.Background()))
	require.Equal(t, []snowflake.ID{soon.ID}, f.notifier.notified)
}

func TestWindowLowerBoundIsInclusive(t *testing.T) {
	f := newSchedulerFixture(t)

	edge := f.seedOwner(t, "77010000001")
	// End date exactly at the start of the scan window.
	f.seedSubscription(t, edge.ID, 0)

	require.NoError(t, f.scheduler.RunOnce(context.Background()))
	require.Equal(t, []snowflake.ID{edge.ID}, f.notifier.notified)
}

func TestScanContinuesPastFailedDelivery(t *testing.T) {
	f := newSchedulerFixture(t)

	broken := f.seedOwner(t, "77010000001")
	f.seedSubscription(t, broken.ID, 24*time.Hour)

	healthy := f.seedOwner(t, "77010000002")
	f.seedSubscription(t, healthy.ID, 48*time.Hour)

	f.notifier.failFor[broken.ID] = errors.New("smtp unavailable")

	err := f.scheduler.SubscriptionRemindersJob(context.Background())
	require.Error(t, err)
	require.Contains(t, f.notifier.notified, healthy.ID)
	require.NotContains(t, f.notifier.notified, broken.ID)
}

func TestOrphanSubscriptionIsSkipped(t *testing.T) {
	f := newSchedulerFixture(t)

	// No owner row behind this subscription.
	f.seedSubscription(t, f.node.Generate(), 24*time.Hour)

	healthy := f.seedOwner(t, "77010000002")
	f.seedSubscription(t, healthy.ID, 24*time.Hour)

	require.NoError(t, f.scheduler.RunOnce(context.Background()))
	require.Equal(t, []snowflake.ID{healthy.ID}, f.notifier.notified)
}

func TestRunJobTreatsDeadlineAsSoftTimeout(t *testing.T) {
	f := newSchedulerFixture(t)

	err := f.scheduler.runJob(context.Background(), "slow", time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	require.NoError(t, err)
}

func TestRunJobWrapsRealFailures(t *testing.T) {
	f := newSchedulerFixture(t)

	boom := errors.New("boom")
	err := f.scheduler.runJob(context.Background(), "failing", time.Second, func(context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}
