package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for assignment dates
const DateLayout = "2006-01-02"

// Volunteer represents a person eligible for assignment
type Volunteer struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	IsActive bool      `json:"isActive"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Room represents a fixed service role with a volunteer capacity per date
type Room struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description"`
	Capacity    int    `json:"capacity" yaml:"capacity" validate:"min=1"`
}

// Assignment commits one volunteer to one room on one date
type Assignment struct {
	ID          string `json:"id"`
	Date        string `json:"date"` // DateLayout
	RoomID      string `json:"roomId"`
	VolunteerID string `json:"volunteerId"`
}

// AssignResult reports which way a toggle went.
// Removed on a call that meant to assign is the collision case callers should warn about.
type AssignResult int

const (
	Added AssignResult = iota + 1
	Removed
)

func (r AssignResult) String() string {
	switch r {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// ParseDate parses a calendar date in DateLayout
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDate formats t as a calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
