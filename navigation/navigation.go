// Package navigation models redirects as values. Flows emit an Intent to a
// Navigator instead of jumping pages, so the host decides how to follow it.
package navigation

import (
	"context"
	"sync"
	"time"

	"github.com/octabyte/campus-portal/enums"
)

type Target string

const (
	TargetAnonymousEntry Target = "anonymous-entry"
	TargetStudentPortal  Target = "student-portal"
	TargetFacultyPortal  Target = "faculty-portal"
	TargetAdminConsole   Target = "admin-console"
)

// Intent is a request to move the user to Target after Delay.
type Intent struct {
	Target Target        `json:"target"`
	URL    string        `json:"url"`
	Delay  time.Duration `json:"delay,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

type Navigator interface {
	Navigate(ctx context.Context, intent Intent)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, intent Intent)

func (f NavigatorFunc) Navigate(ctx context.Context, intent Intent) { f(ctx, intent) }

// Discard ignores every intent.
var Discard Navigator = NavigatorFunc(func(context.Context, Intent) {})

// Routes maps targets to the URLs a host navigates to.
type Routes struct {
	AnonymousEntry string
	StudentPortal  string
	FacultyPortal  string
	AdminConsole   string
}

func DefaultRoutes() Routes {
	return Routes{
		AnonymousEntry: "index.html",
		StudentPortal:  "student-portal.html",
		FacultyPortal:  "faculty-portal.html",
		AdminConsole:   "http://localhost:8000/admin/",
	}
}

func (r Routes) URL(t Target) string {
	switch t {
	case TargetStudentPortal:
		return r.StudentPortal
	case TargetFacultyPortal:
		return r.FacultyPortal
	case TargetAdminConsole:
		return r.AdminConsole
	default:
		return r.AnonymousEntry
	}
}

// Intent builds an intent for t with its URL resolved.
func (r Routes) Intent(t Target, reason string) Intent {
	return Intent{Target: t, URL: r.URL(t), Reason: reason}
}

// TargetForRole returns the landing page of a role.
func TargetForRole(role enums.Role) (Target, bool) {
	switch role {
	case enums.RoleStudent:
		return TargetStudentPortal, true
	case enums.RoleFaculty:
		return TargetFacultyPortal, true
	case enums.RoleAdmin:
		return TargetAdminConsole, true
	}
	return "", false
}

// Recorder collects intents in order. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	intents []Intent
}

func (r *Recorder) Navigate(_ context.Context, intent Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, intent)
}

func (r *Recorder) Intents() []Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Intent(nil), r.intents...)
}

// Last returns the most recent intent.
func (r *Recorder) Last() (Intent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.intents) == 0 {
		return Intent{}, false
	}
	return r.intents[len(r.intents)-1], true
}
