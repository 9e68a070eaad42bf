package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/practice-sem-2/chat-membership/internal/models"
	storage "github.com/practice-sem-2/chat-membership/internal/storages"
	"github.com/sirupsen/logrus"
)

// ErrStaleUpdate is returned when a newer snapshot of the member is already
// stored. Nothing is written or published for such an update.
var ErrStaleUpdate = errors.New("member snapshot is older than the stored one")

// eventNamespace seeds the name-based event ids, so a redelivered update
// yields the same EventID.
var eventNamespace = uuid.MustParse("6f1d3c52-8a0e-4b7b-9a43-2f5e0c1d7b91")

type MembershipUsecase struct {
	registry storage.Registry
	validate *validator.Validate
	logger   logrus.FieldLogger
	now      func() time.Time
}

func NewMembershipUsecase(r storage.Registry, v *validator.Validate, logger logrus.FieldLogger) *MembershipUsecase {
	return &MembershipUsecase{
		registry: r,
		validate: v,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleChatMemberUpdated stores the new member snapshot and publishes the
// resulting transition in one transaction.
func (u *MembershipUsecase) HandleChatMemberUpdated(ctx context.Context, upd models.ChatMemberUpdated) (models.Transition, error) {
	log := u.logger.WithFields(logrus.Fields{
		"chat_id": upd.Chat.ID,
		"user_id": upd.NewChatMember.User.ID,
	})
	for _, raw := range upd.Unrecognized() {
		log.WithField("status", raw).Warn("unrecognized chat member status")
	}

	transition := ClassifyTransition(upd.OldChatMember, upd.NewChatMember)

	update := &models.MembershipChanged{
		UpdateMeta: models.UpdateMeta{
			EventID:   EventID(upd).String(),
			Timestamp: u.now().UTC(),
		},
		ChatID:     upd.Chat.ID,
		UserID:     upd.NewChatMember.User.ID,
		ActorID:    upd.From.ID,
		Transition: transition,
		OldStatus:  models.StatusLiteral(upd.OldChatMember.Status),
		NewStatus:  models.StatusLiteral(upd.NewChatMember.Status),
	}
	if link, ok := upd.InviteLink.Get(); ok {
		update.InviteLink = &link.InviteLink
	}

	if err := ValidateUpdate(u.validate, update); err != nil {
		return "", err
	}

	changedAt := time.Unix(upd.Date, 0).UTC()
	err := u.registry.Atomic(ctx, func(r storage.Registry) error {
		applied, err := r.GetMembersStore().UpsertMember(ctx, upd.Chat.ID, upd.NewChatMember, changedAt)
		if err != nil {
			return err
		}
		if !applied {
			return ErrStaleUpdate
		}
		return r.GetUpdatesStore().MembershipChanged(update)
	})
	if err != nil {
		if errors.Is(err, ErrStaleUpdate) {
			log.WithField("date", upd.Date).Info("stale chat member update skipped")
		}
		return "", err
	}

	log.WithField("transition", transition).Info("chat member updated")
	return transition, nil
}

// EventID derives the id of the event published for upd from the chat, the
// user, the update date and both statuses.
func EventID(upd models.ChatMemberUpdated) uuid.UUID {
	name := fmt.Sprintf("%d:%d:%d:%s:%s",
		upd.Chat.ID,
		upd.NewChatMember.User.ID,
		upd.Date,
		models.StatusLiteral(upd.OldChatMember.Status),
		models.StatusLiteral(upd.NewChatMember.Status),
	)
	return uuid.NewSHA1(eventNamespace, []byte(name))
}

func (u *MembershipUsecase) GetMember(ctx context.Context, chatId int64, userId int64) (*models.MemberRecord, error) {
	return u.registry.GetMembersStore().GetMember(ctx, chatId, userId)
}

func (u *MembershipUsecase) CountByStatus(ctx context.Context, chatId int64) (map[string]int64, error) {
	return u.registry.GetMembersStore().CountByStatus(ctx, chatId)
}
