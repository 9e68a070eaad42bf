package usecases

import (
	"testing"

	"github.com/practice-sem-2/chat-membership/internal/decode"
	"github.com/practice-sem-2/chat-membership/internal/models"
	"github.com/stretchr/testify/assert"
)

func snapshot(status string) models.ChatMember {
	return models.ChatMember{Status: models.ParseChatMemberStatus(status)}
}

func TestClassifyTransition(t *testing.T) {
	restricted := snapshot("member")
	restricted.CanSendMessages = decode.Some(false)

	cases := []struct {
		prev, next models.ChatMember
		expected   models.Transition
	}{
		{snapshot("left"), snapshot("member"), models.TransitionJoined},
		{snapshot("kicked"), snapshot("administrator"), models.TransitionJoined},
		{snapshot("member"), snapshot("left"), models.TransitionLeft},
		{snapshot("member"), snapshot("kicked"), models.TransitionKicked},
		{snapshot("left"), snapshot("kicked"), models.TransitionKicked},
		{snapshot("kicked"), snapshot("left"), models.TransitionChanged},
		{snapshot("member"), snapshot("administrator"), models.TransitionPromoted},
		{snapshot("administrator"), snapshot("member"), models.TransitionDemoted},
		{snapshot("creator"), snapshot("administrator"), models.TransitionChanged},
		{snapshot("member"), restricted, models.TransitionRestricted},
		{snapshot("member"), snapshot("member"), models.TransitionChanged},
		{snapshot("member"), snapshot("restricted"), models.TransitionUnknown},
		{snapshot("owner_pending"), snapshot("member"), models.TransitionUnknown},
	}

	for _, tc := range cases {
		got := ClassifyTransition(tc.prev, tc.next)
		assert.Equal(t, tc.expected, got, "%s -> %s", tc.prev.Status.Raw, tc.next.Status.Raw)
	}
}
