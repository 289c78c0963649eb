package queue

import (
	"context"
	"time"

	"github.com/octabyte/campus-portal/navigation"
	"github.com/octabyte/campus-portal/otel/logger"
	"github.com/octabyte/campus-portal/utils"
)

// SessionEvent is published for every navigation intent a flow emits:
// portal redirects after login and every return to the anonymous entry
// point (logout, refresh failure, failed verification).
type SessionEvent struct {
	Reason     string            `json:"reason"`
	Target     navigation.Target `json:"target"`
	URL        string            `json:"url"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type auditNavigator struct {
	next      navigation.Navigator
	publisher Publisher
	now       func() time.Time
}

// NewAuditNavigator forwards every intent to next and publishes it as a
// SessionEvent. Publishing is best effort: a broker failure is logged and
// never blocks navigation.
func NewAuditNavigator(next navigation.Navigator, publisher Publisher) navigation.Navigator {
	return &auditNavigator{next: next, publisher: publisher, now: time.Now}
}

func (a *auditNavigator) Navigate(ctx context.Context, intent navigation.Intent) {
	a.next.Navigate(ctx, intent)

	body, err := utils.StructToBytes(SessionEvent{
		Reason:     intent.Reason,
		Target:     intent.Target,
		URL:        intent.URL,
		OccurredAt: a.now().UTC(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, "encoding session event", err)
		return
	}
	if err := a.publisher.Publish(ctx, body); err != nil {
		logger.ErrorCtx(ctx, "publishing session event", err)
	}
}
