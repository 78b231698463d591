package usecase

import (
	"github.com/raidledger/progress/model"
)

// ViewPolicy decides whether viewer may see subject's progress. The
// aggregator consumes the policy; it never invents visibility rules of
// its own.
type ViewPolicy func(viewer *model.Membership, subject model.UserUUID) bool

// HiddenTeammatesPolicy hides exactly the subjects on the viewer's own
// hide-list. Hiding is one-directional: A hiding B stops A from seeing
// B, and says nothing about what B sees.
func HiddenTeammatesPolicy(viewer *model.Membership, subject model.UserUUID) bool {
	if viewer.UserUUID == subject {
		return true
	}
	return !viewer.Hides(subject)
}
