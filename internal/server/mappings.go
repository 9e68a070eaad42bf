package server

import (
	"time"

	"github.com/practice-sem-2/chat-membership/internal/decode"
	"github.com/practice-sem-2/chat-membership/internal/models"
)

// Update kinds carrying a ChatMemberUpdated payload.
var memberUpdateKinds = []string{"chat_member", "my_chat_member"}

type update struct {
	ID      int64
	Kind    string
	Payload any
}

// decodeUpdate reads the update envelope. Payload is nil for update kinds this
// service does not handle.
func decodeUpdate(raw any) (update, error) {
	var u update
	if err := decode.Record(raw, decode.Required("update_id", &u.ID, decode.Int64)); err != nil {
		return update{}, err
	}

	m := raw.(map[string]any)
	for _, kind := range memberUpdateKinds {
		if payload, ok := m[kind]; ok && payload != nil {
			u.Kind = kind
			u.Payload = payload
			break
		}
	}
	return u, nil
}

type MemberResponse struct {
	ChatID    int64     `json:"chat_id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	Known     bool      `json:"known"`
	UntilDate *int64    `json:"until_date,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

func MemberToResponse(rec *models.MemberRecord) MemberResponse {
	return MemberResponse{
		ChatID:    rec.ChatID,
		UserID:    rec.UserID,
		Status:    rec.Status,
		Known:     models.IsKnownStatus(rec.MemberStatus()),
		UntilDate: rec.UntilDate,
		ChangedAt: rec.ChangedAt,
	}
}

type WebhookResponse struct {
	UpdateID   int64  `json:"update_id"`
	Kind       string `json:"kind,omitempty"`
	Transition string `json:"transition,omitempty"`
	Ignored    bool   `json:"ignored,omitempty"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	FieldPath string `json:"field_path,omitempty"`
}
