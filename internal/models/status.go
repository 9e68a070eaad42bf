package models

import "github.com/practice-sem-2/chat-membership/internal/decode"

// MemberStatus is the tag of a ChatMemberStatus. Tag order defines status ordering.
type MemberStatus uint8

const (
	StatusCreator MemberStatus = iota + 1
	StatusAdministrator
	StatusMember
	StatusLeft
	StatusKicked
	StatusUnrecognized
)

func (s MemberStatus) String() string {
	switch s {
	case StatusCreator:
		return "creator"
	case StatusAdministrator:
		return "administrator"
	case StatusMember:
		return "member"
	case StatusLeft:
		return "left"
	case StatusKicked:
		return "kicked"
	case StatusUnrecognized:
		return "unrecognized"
	}
	return "invalid"
}

// ChatMemberStatus is the member's status in a chat. Statuses the API adds
// later decode with Kind == StatusUnrecognized and the literal kept in Raw.
type ChatMemberStatus = decode.Variant[MemberStatus]

var memberStatuses = decode.NewEnum(StatusUnrecognized, map[string]MemberStatus{
	"creator":       StatusCreator,
	"administrator": StatusAdministrator,
	"member":        StatusMember,
	"left":          StatusLeft,
	"kicked":        StatusKicked,
})

func ParseChatMemberStatus(raw string) ChatMemberStatus {
	return memberStatuses.Decode(raw)
}

// StatusOf returns the status value for a known tag. StatusUnrecognized has
// no literal and reports false.
func StatusOf(s MemberStatus) (ChatMemberStatus, bool) {
	return memberStatuses.Of(s)
}

func StatusLiteral(s ChatMemberStatus) string {
	return memberStatuses.Encode(s)
}

func IsKnownStatus(s ChatMemberStatus) bool {
	return memberStatuses.IsKnown(s)
}

// IsPresentStatus reports whether the status means the user is in the chat.
// Unrecognized statuses report false.
func IsPresentStatus(s ChatMemberStatus) bool {
	switch s.Kind {
	case StatusCreator, StatusAdministrator, StatusMember:
		return true
	}
	return false
}
