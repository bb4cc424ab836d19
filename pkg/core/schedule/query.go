package schedule

import (
	"slices"
	"strings"

	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/core/store"
)

// Occupancy is the fill status of one room on one date
type Occupancy struct {
	RoomID   string
	Count    int
	Capacity int
	IsFull   bool
	// Vacancies is never negative; OverCapacity is set when Count exceeds Capacity
	Vacancies    int
	OverCapacity bool
}

// RoomRoster lists who is in a room on a date, in assignment order
type RoomRoster struct {
	Room        model.Room
	Assignments []model.Assignment
	Names       []string
	Occupancy   Occupancy
}

// Participation is a volunteer's distinct-date count
type Participation struct {
	Volunteer model.Volunteer
	Days      int
}

// DateSummary aggregates a single service date
type DateSummary struct {
	Date         string
	Filled       int
	TotalSlots   int
	FullRooms    int
	DoubleBooked []string
}

// AssignmentsForDate returns every assignment whose date matches exactly
func AssignmentsForDate(snap store.Snapshot, date string) []model.Assignment {
	var out []model.Assignment
	for _, a := range snap.Assignments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// RoomOccupancy counts assignments for (date, roomID) against the room capacity.
// Unknown rooms report zero capacity, which makes them full as soon as anyone is in them.
func RoomOccupancy(snap store.Snapshot, date, roomID string) Occupancy {
	count := 0
	for _, a := range snap.Assignments {
		if a.Date == date && a.RoomID == roomID {
			count++
		}
	}
	return occupancy(snap, roomID, count)
}

func occupancy(snap store.Snapshot, roomID string, count int) Occupancy {
	capacity := 0
	if room, ok := snap.Catalog.Room(roomID); ok {
		capacity = room.Capacity
	}
	return Occupancy{
		RoomID:       roomID,
		Count:        count,
		Capacity:     capacity,
		IsFull:       count >= capacity,
		Vacancies:    max(capacity-count, 0),
		OverCapacity: count > capacity,
	}
}

// ParticipationDays counts the distinct dates volunteerID has any assignment on
func ParticipationDays(snap store.Snapshot, volunteerID string) int {
	dates := make(map[string]bool)
	for _, a := range snap.Assignments {
		if a.VolunteerID == volunteerID {
			dates[a.Date] = true
		}
	}
	return len(dates)
}

// ParticipationRanking orders volunteers by descending distinct-date count.
// Ties keep registry order.
func ParticipationRanking(snap store.Snapshot) []Participation {
	days := make(map[string]map[string]bool)
	for _, a := range snap.Assignments {
		if days[a.VolunteerID] == nil {
			days[a.VolunteerID] = make(map[string]bool)
		}
		days[a.VolunteerID][a.Date] = true
	}

	ranking := make([]Participation, 0, len(snap.Volunteers))
	for _, v := range snap.Volunteers {
		ranking = append(ranking, Participation{Volunteer: v, Days: len(days[v.ID])})
	}

	slices.SortStableFunc(ranking, func(a, b Participation) int {
		return b.Days - a.Days
	})
	return ranking
}

// AssignmentCounts returns total assignments (not distinct dates) per volunteer id
func AssignmentCounts(snap store.Snapshot) map[string]int {
	counts := make(map[string]int, len(snap.Volunteers))
	for _, a := range snap.Assignments {
		counts[a.VolunteerID]++
	}
	return counts
}

// UnscheduledVolunteers returns volunteers with no assignment on any date, in registry order
func UnscheduledVolunteers(snap store.Snapshot) []model.Volunteer {
	scheduled := make(map[string]bool)
	for _, a := range snap.Assignments {
		scheduled[a.VolunteerID] = true
	}

	var out []model.Volunteer
	for _, v := range snap.Volunteers {
		if !scheduled[v.ID] {
			out = append(out, v)
		}
	}
	return out
}

// IsDoubleBooked reports whether volunteerID holds more than one assignment on date
func IsDoubleBooked(snap store.Snapshot, date, volunteerID string) bool {
	n := 0
	for _, a := range snap.Assignments {
		if a.Date == date && a.VolunteerID == volunteerID {
			n++
			if n > 1 {
				return true
			}
		}
	}
	return false
}

// DoubleBooked lists the ids of volunteers doubled on date, in registry order
func DoubleBooked(snap store.Snapshot, date string) []string {
	perVolunteer := make(map[string]int)
	for _, a := range AssignmentsForDate(snap, date) {
		perVolunteer[a.VolunteerID]++
	}

	var out []string
	for _, v := range snap.Volunteers {
		if perVolunteer[v.ID] > 1 {
			out = append(out, v.ID)
		}
	}
	return out
}

// Roster returns every catalog room, in catalog order, with the volunteers
// assigned on date. Assignments to rooms outside the catalog are not listed.
func Roster(snap store.Snapshot, date string) []RoomRoster {
	byRoom := make(map[string][]model.Assignment)
	for _, a := range AssignmentsForDate(snap, date) {
		byRoom[a.RoomID] = append(byRoom[a.RoomID], a)
	}

	rooms := snap.Catalog.Rooms()
	roster := make([]RoomRoster, 0, len(rooms))
	for _, room := range rooms {
		assigned := byRoom[room.ID]
		names := make([]string, 0, len(assigned))
		for _, a := range assigned {
			// Dangling ids are skipped rather than shown blank
			if v, ok := snap.Volunteer(a.VolunteerID); ok {
				names = append(names, v.Name)
			}
		}
		roster = append(roster, RoomRoster{
			Room:        room,
			Assignments: assigned,
			Names:       names,
			Occupancy:   occupancy(snap, room.ID, len(assigned)),
		})
	}
	return roster
}

// Summarize computes the dashboard counters for date
func Summarize(snap store.Snapshot, date string) DateSummary {
	summary := DateSummary{
		Date:         date,
		TotalSlots:   snap.Catalog.TotalCapacity(),
		DoubleBooked: DoubleBooked(snap, date),
	}
	for _, rr := range Roster(snap, date) {
		summary.Filled += rr.Occupancy.Count
		if rr.Occupancy.IsFull {
			summary.FullRooms++
		}
	}
	return summary
}

// EligibleVolunteers lists active volunteers not already in roomID on date, in registry order
func EligibleVolunteers(snap store.Snapshot, date, roomID string) []model.Volunteer {
	inRoom := make(map[string]bool)
	for _, a := range snap.Assignments {
		if a.Date == date && a.RoomID == roomID {
			inRoom[a.VolunteerID] = true
		}
	}

	var out []model.Volunteer
	for _, v := range snap.Volunteers {
		if v.IsActive && !inRoom[v.ID] {
			out = append(out, v)
		}
	}
	return out
}

// SearchVolunteers matches term against names, case-insensitively. An empty term matches everyone.
func SearchVolunteers(snap store.Snapshot, term string) []model.Volunteer {
	needle := strings.ToLower(strings.TrimSpace(term))
	var out []model.Volunteer
	for _, v := range snap.Volunteers {
		if strings.Contains(strings.ToLower(v.Name), needle) {
			out = append(out, v)
		}
	}
	return out
}
