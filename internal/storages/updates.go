package storage

import (
	"github.com/Shopify/sarama"
	"github.com/practice-sem-2/chat-membership/internal/models"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"strconv"
)

type UpdatesStorage struct {
	cfg      *UpdatesStoreConfig
	producer sarama.SyncProducer
}

type UpdatesStoreConfig struct {
	UpdatesTopic string
}

func NewUpdatesStore(p sarama.SyncProducer, cfg *UpdatesStoreConfig) *UpdatesStorage {
	return &UpdatesStorage{
		producer: p,
		cfg:      cfg,
	}
}

func (s *UpdatesStorage) putUpdate(topic, key string, event proto.Message) error {
	bytes, err := proto.Marshal(event)
	if err != nil {
		return err
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(bytes),
	})

	return err
}

func (s *UpdatesStorage) membershipChangedToProtobuf(update *models.MembershipChanged) (*structpb.Struct, error) {
	var inviteLink interface{}
	if update.InviteLink != nil {
		inviteLink = *update.InviteLink
	}

	return structpb.NewStruct(map[string]interface{}{
		"meta": map[string]interface{}{
			"event_id":  update.EventID,
			"timestamp": update.Timestamp.UTC().Unix(),
		},
		"membership_changed": map[string]interface{}{
			"chat_id":     strconv.FormatInt(update.ChatID, 10),
			"user_id":     strconv.FormatInt(update.UserID, 10),
			"actor_id":    strconv.FormatInt(update.ActorID, 10),
			"transition":  string(update.Transition),
			"old_status":  update.OldStatus,
			"new_status":  update.NewStatus,
			"invite_link": inviteLink,
		},
	})
}

func (s *UpdatesStorage) MembershipChanged(update *models.MembershipChanged) error {
	event, err := s.membershipChangedToProtobuf(update)
	if err != nil {
		return err
	}
	return s.putUpdate(s.cfg.UpdatesTopic, strconv.FormatInt(update.ChatID, 10), event)
}
