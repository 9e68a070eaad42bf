package models

import "github.com/practice-sem-2/chat-membership/internal/decode"

type ChatInviteLink struct {
	// If the link was created by another administrator, its second part is replaced with "...".
	InviteLink string
	Creator    User
	IsPrimary  bool
	IsRevoked  bool
	ExpireDate decode.Opt[int64]
	// 1-99999 per the Bot API. Not checked.
	MemberLimit decode.Opt[int64]
}

func DecodeChatInviteLink(raw any) (ChatInviteLink, error) {
	var l ChatInviteLink
	err := decode.Record(raw,
		decode.Required("invite_link", &l.InviteLink, decode.String),
		decode.Required("creator", &l.Creator, decode.Nested(DecodeUser)),
		decode.Required("is_primary", &l.IsPrimary, decode.Bool),
		decode.Required("is_revoked", &l.IsRevoked, decode.Bool),
		decode.Optional("expire_date", &l.ExpireDate, decode.Int64),
		decode.Optional("member_limit", &l.MemberLimit, decode.Int64),
	)
	if err != nil {
		return ChatInviteLink{}, err
	}
	return l, nil
}
