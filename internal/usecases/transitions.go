package usecases

import "github.com/practice-sem-2/chat-membership/internal/models"

// ClassifyTransition names the change between two member snapshots. Any
// unrecognized status yields TransitionUnknown.
func ClassifyTransition(prev, next models.ChatMember) models.Transition {
	if !models.IsKnownStatus(prev.Status) || !models.IsKnownStatus(next.Status) {
		return models.TransitionUnknown
	}

	wasIn, isIn := prev.IsPresent(), next.IsPresent()
	switch {
	case !wasIn && isIn:
		return models.TransitionJoined
	case wasIn && next.Status.Kind == models.StatusKicked:
		return models.TransitionKicked
	case wasIn && !isIn:
		return models.TransitionLeft
	case !wasIn && !isIn:
		if prev.Status.Kind != models.StatusKicked && next.Status.Kind == models.StatusKicked {
			return models.TransitionKicked
		}
		return models.TransitionChanged
	}

	isAdmin := func(s models.ChatMemberStatus) bool {
		return s.Kind == models.StatusAdministrator || s.Kind == models.StatusCreator
	}
	switch {
	case !isAdmin(prev.Status) && isAdmin(next.Status):
		return models.TransitionPromoted
	case isAdmin(prev.Status) && !isAdmin(next.Status):
		return models.TransitionDemoted
	}

	// Restricted members are reported as "member" with send flags set to false.
	if v, ok := next.CanSendMessages.Get(); ok && !v {
		return models.TransitionRestricted
	}
	return models.TransitionChanged
}
