package models

import "time"

// MemberRecord is the stored snapshot of a chat member.
type MemberRecord struct {
	ChatID    int64     `db:"chat_id"`
	UserID    int64     `db:"user_id"`
	Status    string    `db:"status"`
	UntilDate *int64    `db:"until_date"`
	ChangedAt time.Time `db:"changed_at"`
}

func (r MemberRecord) MemberStatus() ChatMemberStatus {
	return ParseChatMemberStatus(r.Status)
}

type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}
