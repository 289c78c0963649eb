// Package notify carries user-visible messages out of the flows.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/octabyte/campus-portal/utils/logger"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

func Success(ctx context.Context, n Notifier, message string) {
	n.Notify(ctx, Notification{Level: LevelSuccess, Message: message})
}

func Error(ctx context.Context, n Notifier, message string) {
	n.Notify(ctx, Notification{Level: LevelError, Message: message})
}

// LogNotifier writes notifications to the global logger.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) {
	if n.Level == LevelError {
		logger.LogWarn(n.Message, zap.String("notification", string(n.Level)))
		return
	}
	logger.LogInfo(n.Message, zap.String("notification", string(n.Level)))
}

// Recorder collects notifications in order.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notifications...)
}

func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}
