package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/escala/pkg/core/catalog"
	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/core/store"
)

func testSnapshot(assignments ...model.Assignment) store.Snapshot {
	return store.Snapshot{
		Volunteers: []model.Volunteer{
			{ID: "ana", Name: "Ana", IsActive: true},
			{ID: "bia", Name: "Bia", IsActive: true},
			{ID: "caio", Name: "Caio", IsActive: false},
			{ID: "davi", Name: "Davi", IsActive: true},
		},
		Assignments: assignments,
		Catalog:     catalog.Default(),
	}
}

func asg(id, date, room, vol string) model.Assignment {
	return model.Assignment{ID: id, Date: date, RoomID: room, VolunteerID: vol}
}

func TestAssignmentsForDate_ExactMatch(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "checkin", "ana"),
		asg("2", "2025-06-14", "checkin", "bia"),
		asg("3", "2025-06-07", "bercario", "bia"),
		asg("4", "2025-6-7", "bercario", "davi"),
	)

	got := AssignmentsForDate(snap, "2025-06-07")

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestRoomOccupancy(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "bercario", "ana"),
		asg("2", "2025-06-07", "bercario", "bia"),
		asg("3", "2025-06-07", "grande-grupo", "ana"),
		asg("4", "2025-06-14", "grande-grupo", "bia"),
	)

	tests := []struct {
		name      string
		date      string
		room      string
		count     int
		capacity  int
		isFull    bool
		vacancies int
	}{
		{"full room", "2025-06-07", "bercario", 2, 2, true, 0},
		{"half filled", "2025-06-07", "grande-grupo", 1, 2, false, 1},
		{"empty room", "2025-06-07", "checkin", 0, 1, false, 1},
		{"other date", "2025-06-14", "bercario", 0, 2, false, 2},
		{"unknown room", "2025-06-07", "kitchen", 0, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ := RoomOccupancy(snap, tt.date, tt.room)
			assert.Equal(t, tt.count, occ.Count)
			assert.Equal(t, tt.capacity, occ.Capacity)
			assert.Equal(t, tt.isFull, occ.IsFull)
			assert.Equal(t, tt.vacancies, occ.Vacancies)
			assert.False(t, occ.OverCapacity)
		})
	}
}

func TestRoomOccupancy_OverCapacityIsFull(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "checkin", "ana"),
		asg("2", "2025-06-07", "checkin", "bia"),
	)

	occ := RoomOccupancy(snap, "2025-06-07", "checkin")

	assert.Equal(t, 2, occ.Count)
	assert.True(t, occ.IsFull)
	assert.True(t, occ.OverCapacity)
	assert.Equal(t, 0, occ.Vacancies)
}

func TestParticipationDays_CountsDistinctDates(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "checkin", "ana"),
		asg("2", "2025-06-07", "bercario", "ana"), // doubled, same date
		asg("3", "2025-06-14", "bercario", "ana"),
		asg("4", "2025-06-14", "bercario", "bia"),
	)

	assert.Equal(t, 2, ParticipationDays(snap, "ana"))
	assert.Equal(t, 1, ParticipationDays(snap, "bia"))
	assert.Equal(t, 0, ParticipationDays(snap, "davi"))
	assert.Equal(t, 0, ParticipationDays(snap, "ghost"))
}

func TestParticipationRanking_StableOnTies(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "checkin", "davi"),
		asg("2", "2025-06-14", "checkin", "davi"),
		asg("3", "2025-06-07", "bercario", "bia"),
		asg("4", "2025-06-14", "bercario", "ana"),
		asg("5", "2025-06-14", "grande-grupo", "ana"), // same date, counts once
	)

	ranking := ParticipationRanking(snap)

	require.Len(t, ranking, 4)
	var ids []string
	var days []int
	for _, p := range ranking {
		ids = append(ids, p.Volunteer.ID)
		days = append(days, p.Days)
	}
	// ana and bia tie on 1 and keep registry order, caio (0) last
	assert.Equal(t, []string{"davi", "ana", "bia", "caio"}, ids)
	assert.Equal(t, []int{2, 1, 1, 0}, days)
}

func TestAssignmentCounts_CountsEveryAssignment(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "checkin", "ana"),
		asg("2", "2025-06-07", "bercario", "ana"),
		asg("3", "2025-06-14", "bercario", "bia"),
	)

	counts := AssignmentCounts(snap)

	assert.Equal(t, 2, counts["ana"])
	assert.Equal(t, 1, counts["bia"])
	assert.Equal(t, 0, counts["davi"])
}

func TestUnscheduledVolunteers(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-01-04", "checkin", "ana"),
		asg("2", "2025-06-14", "bercario", "caio"),
	)

	got := UnscheduledVolunteers(snap)

	require.Len(t, got, 2)
	assert.Equal(t, "bia", got[0].ID)
	assert.Equal(t, "davi", got[1].ID)
}

func TestDoubleBooking(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "checkin", "bia"),
		asg("2", "2025-06-07", "bercario", "bia"),
		asg("3", "2025-06-07", "bercario", "ana"),
		asg("4", "2025-06-14", "bercario", "ana"),
	)

	assert.True(t, IsDoubleBooked(snap, "2025-06-07", "bia"))
	assert.False(t, IsDoubleBooked(snap, "2025-06-07", "ana"), "different dates are not doubling")
	assert.False(t, IsDoubleBooked(snap, "2025-06-14", "bia"))
	assert.Equal(t, []string{"bia"}, DoubleBooked(snap, "2025-06-07"))
	assert.Empty(t, DoubleBooked(snap, "2025-06-14"))
}

func TestRoster(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "bercario", "bia"),
		asg("2", "2025-06-07", "checkin", "ana"),
		asg("3", "2025-06-07", "bercario", "davi"),
		asg("4", "2025-06-07", "bercario", "ghost"),
		asg("5", "2025-06-14", "grande-grupo", "ana"),
	)

	roster := Roster(snap, "2025-06-07")

	require.Len(t, roster, len(catalog.DefaultRooms))
	assert.Equal(t, "checkin", roster[0].Room.ID)
	assert.Equal(t, []string{"Ana"}, roster[0].Names)
	assert.True(t, roster[0].Occupancy.IsFull)

	assert.Equal(t, "grande-grupo", roster[1].Room.ID)
	assert.Empty(t, roster[1].Names)
	assert.Equal(t, 2, roster[1].Occupancy.Vacancies)

	assert.Equal(t, "bercario", roster[2].Room.ID)
	assert.Equal(t, []string{"Bia", "Davi"}, roster[2].Names, "assignment order, dangling id skipped")
	assert.Equal(t, 3, roster[2].Occupancy.Count)
	assert.True(t, roster[2].Occupancy.OverCapacity)
}

func TestSummarize(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "checkin", "ana"),
		asg("2", "2025-06-07", "bercario", "ana"),
		asg("3", "2025-06-07", "bercario", "bia"),
	)

	s := Summarize(snap, "2025-06-07")

	assert.Equal(t, 3, s.Filled)
	assert.Equal(t, 13, s.TotalSlots)
	assert.Equal(t, 2, s.FullRooms)
	assert.Equal(t, []string{"ana"}, s.DoubleBooked)
}

func TestEligibleVolunteers(t *testing.T) {
	snap := testSnapshot(
		asg("1", "2025-06-07", "bercario", "ana"),
		asg("2", "2025-06-07", "checkin", "bia"),
	)

	got := EligibleVolunteers(snap, "2025-06-07", "bercario")

	var ids []string
	for _, v := range got {
		ids = append(ids, v.ID)
	}
	// ana already in the room, caio inactive
	assert.Equal(t, []string{"bia", "davi"}, ids)
}

func TestSearchVolunteers(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		term     string
		expected int
	}{
		{"", 4},
		{"a", 4},
		{"AN", 1},
		{"  bi ", 1},
		{"zzz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Len(t, SearchVolunteers(snap, tt.term), tt.expected)
		})
	}
}
