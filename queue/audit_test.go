package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/octabyte/campus-portal/navigation"
)

type fakePublisher struct {
	mu       sync.Mutex
	messages [][]byte
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, body)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestAuditNavigatorPublishesAndForwards(t *testing.T) {
	rec := &navigation.Recorder{}
	pub := &fakePublisher{}
	nav := NewAuditNavigator(rec, pub).(*auditNavigator)
	nav.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	intent := navigation.DefaultRoutes().Intent(navigation.TargetAnonymousEntry, "logout")
	nav.Navigate(context.Background(), intent)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, intent, last)

	require.Len(t, pub.messages, 1)
	event := gjson.ParseBytes(pub.messages[0])
	assert.Equal(t, "logout", event.Get("reason").String())
	assert.Equal(t, "anonymous-entry", event.Get("target").String())
	assert.Equal(t, "index.html", event.Get("url").String())
	assert.Equal(t, "2026-03-01T09:00:00Z", event.Get("occurred_at").String())
}

func TestAuditNavigatorSurvivesBrokerFailure(t *testing.T) {
	rec := &navigation.Recorder{}
	nav := NewAuditNavigator(rec, &fakePublisher{err: errors.New("channel closed")})

	nav.Navigate(context.Background(), navigation.Intent{Target: navigation.TargetStudentPortal, Reason: "login"})

	assert.Len(t, rec.Intents(), 1)
}
