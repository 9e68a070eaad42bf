package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/practice-sem-2/chat-membership/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type UpdatesTestSuite struct {
	suite.Suite
	p     *mocks.SyncProducer
	store *UpdatesStorage
}

func (s *UpdatesTestSuite) SetupTest() {
	s.p = mocks.NewSyncProducer(s.T(), nil)
	s.store = NewUpdatesStore(s.p, &UpdatesStoreConfig{UpdatesTopic: "test"})
}

func (s *UpdatesTestSuite) TearDownTest() {
	err := s.p.Close()
	require.NoError(s.T(), err, "mock producer should be closed correctly")
}

func TestUpdatesSuite(t *testing.T) {
	suite.Run(t, &UpdatesTestSuite{})
}

func membershipChanged() *models.MembershipChanged {
	link := "https://t.me/+AbCdEf"
	return &models.MembershipChanged{
		UpdateMeta: models.UpdateMeta{
			EventID:   "253becbb-76b1-4471-9ff3-529462925899",
			Timestamp: time.Unix(1620000000, 0),
		},
		ChatID:     -1001234567890,
		UserID:     74,
		ActorID:    1,
		Transition: models.TransitionJoined,
		OldStatus:  "left",
		NewStatus:  "member",
		InviteLink: &link,
	}
}

func (s *UpdatesTestSuite) Test_UpdatesStorage_MembershipChanged() {
	update := membershipChanged()

	s.p.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		event := &structpb.Struct{}
		if err := proto.Unmarshal(val, event); err != nil {
			return err
		}

		body := event.AsMap()["membership_changed"].(map[string]interface{})
		if body["chat_id"] != "-1001234567890" || body["transition"] != "joined" {
			return errors.New("unexpected membership_changed body")
		}
		if body["invite_link"] != "https://t.me/+AbCdEf" {
			return errors.New("unexpected invite link")
		}

		meta := event.AsMap()["meta"].(map[string]interface{})
		if meta["timestamp"] != float64(1620000000) {
			return errors.New("unexpected timestamp")
		}
		return nil
	})

	err := s.store.MembershipChanged(update)
	assert.NoError(s.T(), err, "event should be pushed without error")
}

func (s *UpdatesTestSuite) Test_UpdatesStorage_NilInviteLink() {
	update := membershipChanged()
	update.InviteLink = nil

	event, err := s.store.membershipChangedToProtobuf(update)
	require.NoError(s.T(), err)

	body := event.AsMap()["membership_changed"].(map[string]interface{})
	assert.Contains(s.T(), body, "invite_link")
	assert.Nil(s.T(), body["invite_link"])
}

func (s *UpdatesTestSuite) Test_UpdatesStorage_ProducerError() {
	s.p.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := s.store.MembershipChanged(membershipChanged())
	assert.ErrorIs(s.T(), err, sarama.ErrOutOfBrokers)
}
