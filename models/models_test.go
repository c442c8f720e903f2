package models

import (
	"testing"
	"time"

	"github.com/blogem/audit-trail/audit"
)

// Test TeamMemberForm validation
func TestTeamMemberFormValidation(t *testing.T) {
	validForm := TeamMemberForm{
		Name:        "John Doe",
		SlackHandle: "@john.doe",
	}
	errors := validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := TeamMemberForm{
		Name:        "   ",
		SlackHandle: "john doe",
	}
	errors = invalidForm.Validate()
	if len(errors) != 2 {
		t.Errorf("Expected 2 errors for invalid form, got: %v", errors)
	}
}

// Test WorkingHoursForm validation
func TestWorkingHoursFormValidation(t *testing.T) {
	validForm := WorkingHoursForm{
		DayOfWeek: 0, // Monday
		StartTime: "09:00",
		EndTime:   "17:00",
		Active:    true,
	}
	errors := validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := WorkingHoursForm{
		DayOfWeek: 8,       // Invalid day
		StartTime: "25:00", // Invalid time
		EndTime:   "08:00", // End before start
		Active:    true,
	}
	errors = invalidForm.Validate()
	if len(errors) < 2 {
		t.Errorf("Expected at least 2 errors for invalid form, got: %v", errors)
	}
}

// Test time validation functions
func TestTimeValidation(t *testing.T) {
	validTimes := []string{"00:00", "09:00", "17:30", "23:59"}
	for _, timeStr := range validTimes {
		if !isValidTimeFormat(timeStr) {
			t.Errorf("Expected %s to be valid time format", timeStr)
		}
	}

	invalidTimes := []string{"", "9:00", "25:00", "12:60", "ab:cd", "12:3"}
	for _, timeStr := range invalidTimes {
		if isValidTimeFormat(timeStr) {
			t.Errorf("Expected %s to be invalid time format", timeStr)
		}
	}

	if !isStartBeforeEnd("09:00", "17:00") {
		t.Error("Expected 09:00 to be before 17:00")
	}

	if isStartBeforeEnd("17:00", "09:00") {
		t.Error("Expected 17:00 not to be before 09:00")
	}
}

func TestTeamMemberFromRecord(t *testing.T) {
	added := time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC)
	rec := audit.HeadRecord{
		Head:   audit.Head{ID: 3},
		Fields: audit.Values{"date_added": added},
		Current: &audit.RevisionRecord{
			Revision: audit.Revision{ID: 9, TrackedModelID: 3, IsDeleted: true},
			Fields:   audit.Values{"name": "Jane", "slack_handle": "@jane", "active": int64(1)},
		},
	}

	member := TeamMemberFromRecord(rec)
	if member.ID != 3 || !member.DateAdded.Equal(added) {
		t.Errorf("Unexpected head: %+v", member)
	}
	if member.Name() != "Jane" || !member.Current.Active {
		t.Errorf("Unexpected revision: %+v", member.Current)
	}
	if !member.IsDeleted() {
		t.Error("Expected deletion flag to be read from the current revision")
	}
	if member.IsActive() {
		t.Error("Deleted member should not be active")
	}
}

func TestWorkingHoursDefaults(t *testing.T) {
	if !DefaultWorkingHours(0).Active {
		t.Error("Expected Monday to be active by default")
	}
	if DefaultWorkingHours(6).Active {
		t.Error("Expected Sunday to be inactive by default")
	}

	hours := WorkingHours{DayOfWeek: 2}
	if hours.GetDayName() != "Wednesday" {
		t.Errorf("Expected Wednesday, got %s", hours.GetDayName())
	}
}
