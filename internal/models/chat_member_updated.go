package models

import "github.com/practice-sem-2/chat-membership/internal/decode"

// ChatMemberUpdated is a change in the status of a chat member.
type ChatMemberUpdated struct {
	Chat Chat
	// Performer of the action that resulted in the change.
	From User
	// Unix time of the change.
	Date          int64
	OldChatMember ChatMember
	NewChatMember ChatMember
	// Only set for joins through an invite link.
	InviteLink decode.Opt[ChatInviteLink]
}

func DecodeChatMemberUpdated(raw any) (ChatMemberUpdated, error) {
	var u ChatMemberUpdated
	err := decode.Record(raw,
		decode.Required("chat", &u.Chat, decode.Nested(DecodeChat)),
		decode.Required("from", &u.From, decode.Nested(DecodeUser)),
		decode.Required("date", &u.Date, decode.Int64),
		decode.Required("old_chat_member", &u.OldChatMember, decode.Nested(DecodeChatMember)),
		decode.Required("new_chat_member", &u.NewChatMember, decode.Nested(DecodeChatMember)),
		decode.Optional("invite_link", &u.InviteLink, decode.Nested(DecodeChatInviteLink)),
	)
	if err != nil {
		return ChatMemberUpdated{}, err
	}
	return u, nil
}

// Unrecognized returns the status literals of both snapshots that did not
// match a known status, old snapshot first.
func (u ChatMemberUpdated) Unrecognized() []string {
	var out []string
	for _, s := range []ChatMemberStatus{u.OldChatMember.Status, u.NewChatMember.Status} {
		if !IsKnownStatus(s) {
			out = append(out, s.Raw)
		}
	}
	return out
}
