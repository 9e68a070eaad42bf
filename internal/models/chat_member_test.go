package models

import (
	"errors"
	"testing"

	"github.com/practice-sem-2/chat-membership/internal/decode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawUser(id int64) map[string]any {
	return map[string]any{"id": id, "is_bot": false, "first_name": "John"}
}

func TestParseChatMemberStatus_Known(t *testing.T) {
	known := map[string]MemberStatus{
		"creator":       StatusCreator,
		"administrator": StatusAdministrator,
		"member":        StatusMember,
		"left":          StatusLeft,
		"kicked":        StatusKicked,
	}

	for lit, kind := range known {
		s := ParseChatMemberStatus(lit)
		assert.Equal(t, kind, s.Kind, "literal %q", lit)
		assert.Equal(t, lit, StatusLiteral(s), "literal %q should round-trip", lit)
		assert.Equal(t, lit, kind.String())
		v, ok := StatusOf(kind)
		assert.True(t, ok)
		assert.Equal(t, v, s)
	}

	_, ok := StatusOf(StatusUnrecognized)
	assert.False(t, ok, "unrecognized tag has no literal")
}

func TestParseChatMemberStatus_Unrecognized(t *testing.T) {
	for _, lit := range []string{"restricted", "owner_pending", "Member", "KICKED", "", " left"} {
		s := ParseChatMemberStatus(lit)
		assert.Equal(t, StatusUnrecognized, s.Kind, "literal %q", lit)
		assert.Equal(t, lit, s.Raw)
		assert.False(t, IsKnownStatus(s))
		assert.False(t, IsPresentStatus(s))
	}
}

func TestDecodeChatMember_OptionalsAbsent(t *testing.T) {
	m, err := DecodeChatMember(map[string]any{
		"user":   rawUser(42),
		"status": "member",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), m.User.ID)
	assert.Equal(t, StatusMember, m.Status.Kind)
	assert.True(t, m.IsPresent())
	assert.False(t, m.UntilDate.IsPresent())
	assert.False(t, m.CanSendMessages.IsPresent())
	assert.False(t, m.CanBeEdited.IsPresent())
	assert.Empty(t, m.Privileges())
}

func TestDecodeChatMember_ExplicitFalseIsNotAbsent(t *testing.T) {
	absent, err := DecodeChatMember(map[string]any{"user": rawUser(1), "status": "kicked"})
	require.NoError(t, err)

	explicit, err := DecodeChatMember(map[string]any{
		"user":              rawUser(1),
		"status":            "kicked",
		"can_send_messages": false,
		"until_date":        0,
	})
	require.NoError(t, err)

	assert.NotEqual(t, absent, explicit)

	v, ok := explicit.CanSendMessages.Get()
	assert.True(t, ok, "explicit false should be present")
	assert.False(t, v)

	until, ok := explicit.UntilDate.Get()
	assert.True(t, ok, "explicit zero should be present")
	assert.Equal(t, int64(0), until)

	assert.False(t, absent.CanSendMessages.IsPresent())
}

func TestDecodeChatMember_MissingRequired(t *testing.T) {
	cases := map[string]map[string]any{
		"user":   {"status": "member"},
		"status": {"user": rawUser(1)},
	}

	for field, raw := range cases {
		t.Run(field, func(t *testing.T) {
			m, err := DecodeChatMember(raw)
			assert.ErrorIs(t, err, decode.ErrMissingField)
			assert.Equal(t, ChatMember{}, m, "no partial value on failure")

			var de *decode.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, field, de.FieldPath())
		})
	}
}

func TestDecodeChatMember_TypeMismatch(t *testing.T) {
	_, err := DecodeChatMember(map[string]any{
		"user":           rawUser(1),
		"status":         "administrator",
		"can_be_edited":  "yes",
		"can_post_extra": 12,
	})

	var de *decode.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, decode.TypeMismatch, de.Kind)
	assert.Equal(t, "can_be_edited", de.FieldPath())
	assert.Equal(t, decode.ShapeBoolean, de.Expected)

	_, err = DecodeChatMember(map[string]any{"user": rawUser(1), "status": 5})
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "status", de.FieldPath())
	assert.Equal(t, decode.ShapeString, de.Expected)
}

func TestDecodeChatMember_NestedUserError(t *testing.T) {
	_, err := DecodeChatMember(map[string]any{
		"user":   map[string]any{"is_bot": false, "first_name": "John"},
		"status": "member",
	})

	var de *decode.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, decode.MissingField, de.Kind)
	assert.Equal(t, "user.id", de.FieldPath())
}

func TestChatMember_Privileges(t *testing.T) {
	m, err := DecodeChatMember(map[string]any{
		"user":              rawUser(1),
		"status":            "administrator",
		"can_be_edited":     false,
		"can_pin_messages":  true,
		"can_send_messages": true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{
		"can_be_edited":    false,
		"can_pin_messages": true,
	}, m.Privileges())
}
