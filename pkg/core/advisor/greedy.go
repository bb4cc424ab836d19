package advisor

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Greedy is an offline advisor that fills open slots with the volunteers
// who have served the least. It never calls out of process.
type Greedy struct {
	logger *zap.Logger
}

// NewGreedy creates a least-participation advisor
func NewGreedy(logger *zap.Logger) *Greedy {
	return &Greedy{logger: logger}
}

// SuggestAssignments ranks volunteers by ascending TotalAssignments (ties keep
// request order) and pops them into rooms in request order until each room's
// remaining capacity is used or the queue is empty.
//
// Volunteers already serving on the date are skipped, and nobody is proposed
// twice in one batch, so the result never causes a collision or a doubling.
func (g *Greedy) SuggestAssignments(ctx context.Context, req Request) ([]Proposal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queue := rankVolunteers(req)
	g.logger.Debug("Greedy advisor ranked volunteers",
		zap.String("date", req.Date),
		zap.Int("candidates", len(queue)),
		zap.Int("open_slots", req.OpenSlots))

	var proposals []Proposal
	for _, room := range req.Rooms {
		for open := room.Remaining(); open > 0 && len(queue) > 0; open-- {
			// Pop first volunteer
			v := queue[0]
			queue = queue[1:]

			proposals = append(proposals, Proposal{
				RoomID:      room.ID,
				VolunteerID: v.ID,
				Reason:      fmt.Sprintf("%d previous assignments", v.TotalAssignments),
			})
		}
	}

	g.logger.Debug("Greedy advisor finished",
		zap.Int("proposals", len(proposals)),
		zap.Int("unused_candidates", len(queue)))

	return proposals, nil
}

// rankVolunteers returns the volunteers not yet scheduled on the date, least
// served first
func rankVolunteers(req Request) []VolunteerStat {
	queue := make([]VolunteerStat, 0, len(req.Volunteers))
	for _, v := range req.Volunteers {
		if req.Scheduled(v.ID) {
			continue
		}
		queue = append(queue, v)
	}

	slices.SortStableFunc(queue, func(a, b VolunteerStat) int {
		return a.TotalAssignments - b.TotalAssignments
	})
	return queue
}
