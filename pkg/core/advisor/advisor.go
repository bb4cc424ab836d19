// Package advisor defines the auto-fill suggestion contract and the checks
// applied to suggestions before they reach the store.
package advisor

import (
	"context"
	"errors"

	"github.com/jakechorley/escala/pkg/core/schedule"
	"github.com/jakechorley/escala/pkg/core/store"
)

// ErrUnavailable is returned by advisors that cannot produce suggestions at
// all (missing credentials, provider disabled, unreachable service)
var ErrUnavailable = errors.New("advisor unavailable")

// Advisor proposes (room, volunteer) pairs for a date. Proposals are
// suggestions only; callers validate them and apply them through the store.
type Advisor interface {
	SuggestAssignments(ctx context.Context, req Request) ([]Proposal, error)
}

// VolunteerStat is a volunteer as presented to an advisor
type VolunteerStat struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	TotalAssignments int    `json:"totalAssignments"`
}

// RoomSlot is a room as presented to an advisor, with what is already filled on the date
type RoomSlot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Assigned int    `json:"assigned"`
}

// Remaining is the number of open slots in the room, never negative
func (r RoomSlot) Remaining() int {
	return max(r.Capacity-r.Assigned, 0)
}

// Request is everything an advisor needs to fill one date
type Request struct {
	Date       string
	Volunteers []VolunteerStat
	Rooms      []RoomSlot
	OpenSlots  int

	// existing holds "roomID|volunteerID" pairs already assigned on Date
	existing map[string]bool
	// scheduled holds volunteer ids with any assignment on Date
	scheduled map[string]bool
}

// Proposal is one suggested assignment
type Proposal struct {
	RoomID      string `json:"roomId"`
	VolunteerID string `json:"volunteerId"`
	Reason      string `json:"reason,omitempty"`
}

// NewRequest builds the advisor input for date from a snapshot. Only active
// volunteers are offered; TotalAssignments counts every assignment on any date.
func NewRequest(snap store.Snapshot, date string) Request {
	counts := schedule.AssignmentCounts(snap)

	req := Request{
		Date:      date,
		existing:  make(map[string]bool),
		scheduled: make(map[string]bool),
	}
	for _, v := range snap.Volunteers {
		if !v.IsActive {
			continue
		}
		req.Volunteers = append(req.Volunteers, VolunteerStat{
			ID:               v.ID,
			Name:             v.Name,
			TotalAssignments: counts[v.ID],
		})
	}

	for _, rr := range schedule.Roster(snap, date) {
		slot := RoomSlot{
			ID:       rr.Room.ID,
			Name:     rr.Room.Name,
			Capacity: rr.Room.Capacity,
			Assigned: rr.Occupancy.Count,
		}
		req.Rooms = append(req.Rooms, slot)
		req.OpenSlots += slot.Remaining()
	}

	for _, a := range schedule.AssignmentsForDate(snap, date) {
		req.existing[pairKey(a.RoomID, a.VolunteerID)] = true
		req.scheduled[a.VolunteerID] = true
	}

	return req
}

// AlreadyAssigned reports whether the pair is already assigned on the request date
func (r Request) AlreadyAssigned(roomID, volunteerID string) bool {
	return r.existing[pairKey(roomID, volunteerID)]
}

// Scheduled reports whether the volunteer already serves somewhere on the request date
func (r Request) Scheduled(volunteerID string) bool {
	return r.scheduled[volunteerID]
}

func pairKey(roomID, volunteerID string) string {
	return roomID + "|" + volunteerID
}
