package advisor

import "fmt"

// Rejection is a proposal that failed validation and why
type Rejection struct {
	Proposal Proposal
	Reason   string
}

// Validate splits proposals into those that reference a known room and an
// offered volunteer, and those that do not. A pair repeated within the batch
// is accepted once. Order is preserved in both.
// Capacity and collisions with existing assignments are not checked here;
// applying a colliding proposal is the caller's decision.
func Validate(req Request, proposals []Proposal) (accepted []Proposal, rejected []Rejection) {
	rooms := make(map[string]bool, len(req.Rooms))
	for _, r := range req.Rooms {
		rooms[r.ID] = true
	}
	volunteers := make(map[string]bool, len(req.Volunteers))
	for _, v := range req.Volunteers {
		volunteers[v.ID] = true
	}
	seen := make(map[string]bool, len(proposals))

	for _, p := range proposals {
		var reason string
		switch {
		case p.RoomID == "":
			reason = "missing roomId"
		case p.VolunteerID == "":
			reason = "missing volunteerId"
		case !rooms[p.RoomID]:
			reason = fmt.Sprintf("unknown room %q", p.RoomID)
		case !volunteers[p.VolunteerID]:
			reason = fmt.Sprintf("unknown or inactive volunteer %q", p.VolunteerID)
		case seen[pairKey(p.RoomID, p.VolunteerID)]:
			reason = "duplicate proposal"
		}

		if reason != "" {
			rejected = append(rejected, Rejection{Proposal: p, Reason: reason})
			continue
		}
		seen[pairKey(p.RoomID, p.VolunteerID)] = true
		accepted = append(accepted, p)
	}
	return accepted, rejected
}
