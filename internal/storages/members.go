package storage

import (
	"context"
	"database/sql"
	"errors"
	sq "github.com/Masterminds/squirrel"
	"github.com/practice-sem-2/chat-membership/internal/models"
	"time"
)

var (
	ErrMemberNotFound   = errors.New("member with provided chat_id and user_id does not exist")
	ErrInvalidUntilDate = errors.New("until_date can't be negative")
)

const (
	MembersUntilDateCheck  = "members_until_date_check"
	membersTable           = "members"
	upsertMemberOnConflict = `ON CONFLICT (chat_id, user_id) DO UPDATE
		SET status = EXCLUDED.status, until_date = EXCLUDED.until_date, changed_at = EXCLUDED.changed_at
		WHERE members.changed_at <= EXCLUDED.changed_at`
)

type MembersStorage struct {
	db Scope
}

func NewMembersStorage(db Scope) *MembersStorage {
	return &MembersStorage{
		db: db,
	}
}

// UpsertMember stores the member snapshot. Snapshots older than the stored one
// leave the row untouched and report applied == false.
func (s *MembersStorage) UpsertMember(ctx context.Context, chatId int64, member models.ChatMember, changedAt time.Time) (bool, error) {
	var untilDate *int64
	if v, ok := member.UntilDate.Get(); ok {
		untilDate = &v
	}

	query, args, err := sq.Insert(membersTable).
		Columns("chat_id", "user_id", "status", "until_date", "changed_at").
		Values(chatId, member.User.ID, models.StatusLiteral(member.Status), untilDate, changedAt.UTC()).
		Suffix(upsertMemberOnConflict).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, query, args...)

	if GetPgxConstraintName(err) == MembersUntilDateCheck {
		return false, ErrInvalidUntilDate
	} else if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *MembersStorage) GetMember(ctx context.Context, chatId int64, userId int64) (*models.MemberRecord, error) {
	query, args, err := sq.Select("chat_id", "user_id", "status", "until_date", "changed_at").
		From(membersTable).
		Where(sq.Eq{"chat_id": chatId, "user_id": userId}).
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	member := models.MemberRecord{}
	err = s.db.GetContext(ctx, &member, query, args...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	} else if err != nil {
		return nil, err
	}

	member.ChangedAt = member.ChangedAt.UTC()
	return &member, nil
}

// CountByStatus returns the number of stored members per status literal.
func (s *MembersStorage) CountByStatus(ctx context.Context, chatId int64) (map[string]int64, error) {
	query, args, err := sq.Select("status", "count(*) AS count").
		From(membersTable).
		Where(sq.Eq{"chat_id": chatId}).
		GroupBy("status").
		OrderBy("status").
		PlaceholderFormat(sq.Dollar).
		ToSql()

	if err != nil {
		return nil, err
	}

	counts := make([]models.StatusCount, 0)
	if err = s.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		out[c.Status] = c.Count
	}
	return out, nil
}
