package scheduler

import (
	"context"

	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
	subscriptiondomain "github.com/enotehq/enote/internal/subscription/domain"
	"go.uber.org/zap"
)

// Notifier delivers subscription-expiry reminders. Delivery is best effort:
// a failed notification is logged and the scan moves on.
type Notifier interface {
	NotifyExpiring(ctx context.Context, owner *ownerdomain.Owner, sub *subscriptiondomain.Subscription) error
}

type logNotifier struct {
	log *zap.Logger
}

// NewLogNotifier returns a Notifier that records reminders in the
// application log. Installations wire a real channel over this.
func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{log: log.Named("scheduler.notifier")}
}

func (n *logNotifier) NotifyExpiring(_ context.Context, owner *ownerdomain.Owner, sub *subscriptiondomain.Subscription) error {
	n.log.Info("subscription expiring soon",
		zap.Int64("owner_id", owner.ID.Int64()),
		zap.String("owner_phone", owner.Phone),
		zap.Time("end_date", sub.EndDate),
	)
	return nil
}
