package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/escala/pkg/core/advisor"
	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/core/store"
)

// DefaultMinVolunteers is the registry size below which auto-fill refuses to run
const DefaultMinVolunteers = 5

// ErrTooFewVolunteers is returned when the registry is smaller than the configured minimum
var ErrTooFewVolunteers = errors.New("not enough volunteers registered for auto-fill")

// ScheduleStore defines the store operations the scheduling services need
type ScheduleStore interface {
	Snapshot() store.Snapshot
	ToggleAssignment(ctx context.Context, date, roomID, volunteerID string) (model.AssignResult, error)
}

// AppliedProposal is a proposal that went through ToggleAssignment and which way it went
type AppliedProposal struct {
	Proposal advisor.Proposal
	Result   model.AssignResult
}

// AutoFillResult contains everything that happened during an auto-fill
type AutoFillResult struct {
	Date     string
	DryRun   bool
	Accepted []advisor.Proposal
	Applied  []AppliedProposal
	Rejected []advisor.Rejection

	// AdvisorErr is set when the advisor failed; nothing was applied in that case
	AdvisorErr error
}

// Collisions returns applied proposals whose toggle removed an existing assignment
func (r *AutoFillResult) Collisions() []AppliedProposal {
	var out []AppliedProposal
	for _, a := range r.Applied {
		if a.Result == model.Removed {
			out = append(out, a)
		}
	}
	return out
}

// AutoFill asks adv for proposals for date, validates them and applies the
// accepted ones in order through ToggleAssignment. Advisor failures are
// recorded on the result and never mutate the store. With dryRun set the
// validated proposals are returned without being applied.
func AutoFill(
	ctx context.Context,
	st ScheduleStore,
	adv advisor.Advisor,
	logger *zap.Logger,
	date string,
	minVolunteers int,
	dryRun bool,
) (*AutoFillResult, error) {
	logger.Debug("Starting autoFill",
		zap.String("date", date),
		zap.Int("min_volunteers", minVolunteers),
		zap.Bool("dry_run", dryRun))

	// Step 1: Check inputs
	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}

	snap := st.Snapshot()
	if len(snap.Volunteers) < minVolunteers {
		return nil, fmt.Errorf("%w: have %d, need at least %d", ErrTooFewVolunteers, len(snap.Volunteers), minVolunteers)
	}

	result := &AutoFillResult{Date: date, DryRun: dryRun}

	// Step 2: Ask the advisor
	req := advisor.NewRequest(snap, date)
	if req.OpenSlots == 0 {
		logger.Debug("No open slots, skipping advisor", zap.String("date", date))
		return result, nil
	}

	proposals, err := adv.SuggestAssignments(ctx, req)
	if err != nil {
		logger.Warn("Advisor failed, no suggestions applied", zap.String("date", date), zap.Error(err))
		result.AdvisorErr = err
		return result, nil
	}
	logger.Debug("Advisor returned proposals", zap.Int("count", len(proposals)))

	// Step 3: Validate
	result.Accepted, result.Rejected = advisor.Validate(req, proposals)
	for _, r := range result.Rejected {
		logger.Debug("Proposal rejected",
			zap.String("room_id", r.Proposal.RoomID),
			zap.String("volunteer_id", r.Proposal.VolunteerID),
			zap.String("reason", r.Reason))
	}

	if dryRun {
		logger.Debug("Dry run, not applying proposals", zap.Int("accepted", len(result.Accepted)))
		return result, nil
	}

	// Step 4: Apply in order
	for _, p := range result.Accepted {
		res, err := st.ToggleAssignment(ctx, date, p.RoomID, p.VolunteerID)
		result.Applied = append(result.Applied, AppliedProposal{Proposal: p, Result: res})
		if err != nil {
			return result, fmt.Errorf("failed to apply proposal %s/%s: %w", p.RoomID, p.VolunteerID, err)
		}
		if res == model.Removed {
			logger.Warn("Proposal collided with an existing assignment and removed it",
				zap.String("date", date),
				zap.String("room_id", p.RoomID),
				zap.String("volunteer_id", p.VolunteerID))
		}
	}

	logger.Debug("autoFill complete",
		zap.Int("applied", len(result.Applied)),
		zap.Int("rejected", len(result.Rejected)),
		zap.Int("collisions", len(result.Collisions())))

	return result, nil
}
