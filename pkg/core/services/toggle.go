package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/core/schedule"
)

var (
	// ErrUnknownRoom is returned when a room id is not in the catalog
	ErrUnknownRoom = errors.New("unknown room")

	// ErrUnknownVolunteer is returned when a volunteer id is not registered
	ErrUnknownVolunteer = errors.New("unknown volunteer")
)

// ToggleResult reports a manual toggle and what it left behind
type ToggleResult struct {
	Result    model.AssignResult
	Volunteer model.Volunteer
	Room      model.Room
	// DoubleBooked is true when the volunteer now serves in more than one room on the date
	DoubleBooked bool
	// OverCapacity is true when the room now holds more volunteers than its capacity
	OverCapacity bool
}

// Toggle checks that date, room and volunteer are valid and then flips the
// assignment. Capacity and doubling are reported, not enforced.
func Toggle(ctx context.Context, st ScheduleStore, logger *zap.Logger, date, roomID, volunteerID string) (*ToggleResult, error) {
	logger.Debug("Starting toggle",
		zap.String("date", date),
		zap.String("room_id", roomID),
		zap.String("volunteer_id", volunteerID))

	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}

	snap := st.Snapshot()
	room, ok := snap.Catalog.Room(roomID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, roomID)
	}
	volunteer, ok := snap.Volunteer(volunteerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVolunteer, volunteerID)
	}

	res, err := st.ToggleAssignment(ctx, date, roomID, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle assignment: %w", err)
	}

	after := st.Snapshot()
	out := &ToggleResult{
		Result:       res,
		Volunteer:    volunteer,
		Room:         room,
		DoubleBooked: schedule.IsDoubleBooked(after, date, volunteerID),
		OverCapacity: schedule.RoomOccupancy(after, date, roomID).OverCapacity,
	}

	logger.Debug("Toggle complete",
		zap.Stringer("result", res),
		zap.Bool("double_booked", out.DoubleBooked),
		zap.Bool("over_capacity", out.OverCapacity))

	return out, nil
}
