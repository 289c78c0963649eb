package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octabyte/campus-portal/enums"
)

func TestTargetForRole(t *testing.T) {
	tests := []struct {
		role   enums.Role
		target Target
		ok     bool
	}{
		{enums.RoleStudent, TargetStudentPortal, true},
		{enums.RoleFaculty, TargetFacultyPortal, true},
		{enums.RoleAdmin, TargetAdminConsole, true},
		{enums.Role("guest"), "", false},
	}
	for _, tt := range tests {
		target, ok := TargetForRole(tt.role)
		assert.Equal(t, tt.target, target, string(tt.role))
		assert.Equal(t, tt.ok, ok, string(tt.role))
	}
}

func TestRoutesURL(t *testing.T) {
	r := DefaultRoutes()
	assert.Equal(t, "index.html", r.URL(TargetAnonymousEntry))
	assert.Equal(t, "student-portal.html", r.URL(TargetStudentPortal))
	assert.Equal(t, "faculty-portal.html", r.URL(TargetFacultyPortal))
	assert.Equal(t, "http://localhost:8000/admin/", r.URL(TargetAdminConsole))
	assert.Equal(t, "index.html", r.URL(Target("unknown")))

	intent := r.Intent(TargetFacultyPortal, "login")
	assert.Equal(t, Intent{Target: TargetFacultyPortal, URL: "faculty-portal.html", Reason: "login"}, intent)
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	_, ok := rec.Last()
	assert.False(t, ok)

	rec.Navigate(context.Background(), Intent{Target: TargetStudentPortal})
	rec.Navigate(context.Background(), Intent{Target: TargetAnonymousEntry})

	last, ok := rec.Last()
	assert.True(t, ok)
	assert.Equal(t, TargetAnonymousEntry, last.Target)
	assert.Len(t, rec.Intents(), 2)
}
