// Package launchpad records bug status counts of Launchpad projects.
package launchpad

import "fmt"

// Status is a Launchpad bug task status
type Status int

const (
	StatusNew Status = iota
	StatusIncomplete
	StatusOpinion
	StatusInvalid
	StatusWontFix
	StatusExpired
	StatusConfirmed
	StatusTriaged
	StatusInProgress
	StatusFixCommitted
	StatusFixReleased
	StatusDoesNotExist

	statusCount
)

// statusNames holds the API display string and the identifier-safe field
// name of every status, indexed by Status
var statusNames = [statusCount]struct {
	display string
	field   string
}{
	StatusNew:          {"New", "new"},
	StatusIncomplete:   {"Incomplete", "incomplete"},
	StatusOpinion:      {"Opinion", "opinion"},
	StatusInvalid:      {"Invalid", "invalid"},
	StatusWontFix:      {"Won't Fix", "wont_fix"},
	StatusExpired:      {"Expired", "expired"},
	StatusConfirmed:    {"Confirmed", "confirmed"},
	StatusTriaged:      {"Triaged", "triaged"},
	StatusInProgress:   {"In Progress", "in_progress"},
	StatusFixCommitted: {"Fix Committed", "fix_committed"},
	StatusFixReleased:  {"Fix Released", "fix_released"},
	StatusDoesNotExist: {"Does Not Exist", "does_not_exist"},
}

// AllStatuses returns every status in report column order.
func AllStatuses() []Status {
	statuses := make([]Status, statusCount)
	for i := range statuses {
		statuses[i] = Status(i)
	}

	return statuses
}

// String returns the display string used by the Launchpad API, e.g. "Won't Fix".
func (s Status) String() string {
	if !s.valid() {
		return fmt.Sprintf("Status(%d)", int(s))
	}

	return statusNames[s].display
}

// Field returns the identifier-safe name of the status, e.g. "wont_fix".
func (s Status) Field() string {
	if !s.valid() {
		return ""
	}

	return statusNames[s].field
}

func (s Status) valid() bool {
	return s >= 0 && s < statusCount
}

// ParseStatus returns the status with the given display string.
func ParseStatus(display string) (Status, error) {
	for i, names := range statusNames {
		if names.display == display {
			return Status(i), nil
		}
	}

	return 0, fmt.Errorf("unknown launchpad status %q", display)
}

// ParseField returns the status with the given field name.
func ParseField(field string) (Status, error) {
	for i, names := range statusNames {
		if names.field == field {
			return Status(i), nil
		}
	}

	return 0, fmt.Errorf("unknown launchpad status field %q", field)
}
