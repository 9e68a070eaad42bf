package models

import "github.com/practice-sem-2/chat-membership/internal/decode"

// ChatMember contains information about one member of a chat.
//
// Which optional fields apply depends on Status (administrator flags for
// administrators, send flags for restricted members) but the combination is
// not checked here.
type ChatMember struct {
	User   User
	Status ChatMemberStatus

	// Restricted and kicked only. Unix time when restrictions are lifted.
	UntilDate decode.Opt[int64]

	CanBeEdited        decode.Opt[bool]
	CanChangeInfo      decode.Opt[bool]
	CanPostMessages    decode.Opt[bool]
	CanEditMessages    decode.Opt[bool]
	CanDeleteMessages  decode.Opt[bool]
	CanInviteUsers     decode.Opt[bool]
	CanRestrictMembers decode.Opt[bool]
	CanPinMessages     decode.Opt[bool]
	CanPromoteMembers  decode.Opt[bool]

	CanSendMessages       decode.Opt[bool]
	CanSendMediaMessages  decode.Opt[bool]
	CanSendOtherMessages  decode.Opt[bool]
	CanAddWebPagePreviews decode.Opt[bool]
}

func DecodeChatMember(raw any) (ChatMember, error) {
	var m ChatMember
	err := decode.Record(raw,
		decode.Required("user", &m.User, decode.Nested(DecodeUser)),
		decode.Required("status", &m.Status, memberStatuses.DecodeField),
		decode.Optional("until_date", &m.UntilDate, decode.Int64),
		decode.Optional("can_be_edited", &m.CanBeEdited, decode.Bool),
		decode.Optional("can_change_info", &m.CanChangeInfo, decode.Bool),
		decode.Optional("can_post_messages", &m.CanPostMessages, decode.Bool),
		decode.Optional("can_edit_messages", &m.CanEditMessages, decode.Bool),
		decode.Optional("can_delete_messages", &m.CanDeleteMessages, decode.Bool),
		decode.Optional("can_invite_users", &m.CanInviteUsers, decode.Bool),
		decode.Optional("can_restrict_members", &m.CanRestrictMembers, decode.Bool),
		decode.Optional("can_pin_messages", &m.CanPinMessages, decode.Bool),
		decode.Optional("can_promote_members", &m.CanPromoteMembers, decode.Bool),
		decode.Optional("can_send_messages", &m.CanSendMessages, decode.Bool),
		decode.Optional("can_send_media_messages", &m.CanSendMediaMessages, decode.Bool),
		decode.Optional("can_send_other_messages", &m.CanSendOtherMessages, decode.Bool),
		decode.Optional("can_add_web_page_previews", &m.CanAddWebPagePreviews, decode.Bool),
	)
	if err != nil {
		return ChatMember{}, err
	}
	return m, nil
}

func (m ChatMember) IsPresent() bool {
	return IsPresentStatus(m.Status)
}

// Privileges returns the administrator flags that are present, keyed by wire name.
func (m ChatMember) Privileges() map[string]bool {
	flags := []struct {
		name string
		v    decode.Opt[bool]
	}{
		{"can_be_edited", m.CanBeEdited},
		{"can_change_info", m.CanChangeInfo},
		{"can_post_messages", m.CanPostMessages},
		{"can_edit_messages", m.CanEditMessages},
		{"can_delete_messages", m.CanDeleteMessages},
		{"can_invite_users", m.CanInviteUsers},
		{"can_restrict_members", m.CanRestrictMembers},
		{"can_pin_messages", m.CanPinMessages},
		{"can_promote_members", m.CanPromoteMembers},
	}

	out := make(map[string]bool)
	for _, f := range flags {
		if v, ok := f.v.Get(); ok {
			out[f.name] = v
		}
	}
	return out
}
