package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/practice-sem-2/chat-membership/internal/decode"
	"github.com/practice-sem-2/chat-membership/internal/models"
	storage "github.com/practice-sem-2/chat-membership/internal/storages"
	"github.com/practice-sem-2/chat-membership/internal/usecases"
	"github.com/sirupsen/logrus"
)

const (
	secretHeader = "X-Telegram-Bot-Api-Secret-Token"
	maxBodySize  = 1 << 20
)

var (
	ErrInvalidSecret = errors.New("invalid webhook secret token")
	ErrInvalidParam  = errors.New("invalid path parameter")
)

type Membership interface {
	HandleChatMemberUpdated(ctx context.Context, upd models.ChatMemberUpdated) (models.Transition, error)
	GetMember(ctx context.Context, chatId int64, userId int64) (*models.MemberRecord, error)
	CountByStatus(ctx context.Context, chatId int64) (map[string]int64, error)
}

type WebhookServer struct {
	membership Membership
	secret     string
	logger     logrus.FieldLogger
}

func NewWebhookServer(m Membership, secret string, logger logrus.FieldLogger) *WebhookServer {
	return &WebhookServer{
		membership: m,
		secret:     secret,
		logger:     logger,
	}
}

func (s *WebhookServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/webhook", s.Webhook).Methods(http.MethodPost)
	r.HandleFunc("/chats/{chat_id}/members/{user_id}", s.GetMember).Methods(http.MethodGet)
	r.HandleFunc("/chats/{chat_id}/statuses", s.CountByStatus).Methods(http.MethodGet)
	return r
}

func (s *WebhookServer) Webhook(w http.ResponseWriter, r *http.Request) {
	if s.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(secretHeader)), []byte(s.secret)) != 1 {
		s.writeError(w, ErrInvalidSecret)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.logger.WithError(err).Warn("can't read update body")
		s.writeError(w, err)
		return
	}

	raw, err := models.ParseRecord(body)
	if err != nil {
		s.logger.WithError(err).Warn("can't parse update body")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	upd, err := decodeUpdate(raw)
	if err != nil {
		s.logDecodeError(err, body)
		s.writeError(w, err)
		return
	}

	if upd.Payload == nil {
		writeJSON(w, http.StatusOK, WebhookResponse{UpdateID: upd.ID, Ignored: true})
		return
	}

	member, err := models.DecodeChatMemberUpdated(upd.Payload)
	if err != nil {
		err = prefixUpdateKind(upd.Kind, err)
		s.logDecodeError(err, body)
		s.writeError(w, err)
		return
	}

	transition, err := s.membership.HandleChatMemberUpdated(r.Context(), member)
	if errors.Is(err, usecases.ErrStaleUpdate) {
		writeJSON(w, http.StatusOK, WebhookResponse{UpdateID: upd.ID, Kind: upd.Kind, Ignored: true})
		return
	}
	if err != nil {
		s.logger.WithError(err).WithField("update_id", upd.ID).Error("can't handle chat member update")
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, WebhookResponse{
		UpdateID:   upd.ID,
		Kind:       upd.Kind,
		Transition: string(transition),
	})
}

func (s *WebhookServer) GetMember(w http.ResponseWriter, r *http.Request) {
	chatId, err := pathInt(r, "chat_id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	userId, err := pathInt(r, "user_id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := s.membership.GetMember(r.Context(), chatId, userId)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MemberToResponse(rec))
}

func (s *WebhookServer) CountByStatus(w http.ResponseWriter, r *http.Request) {
	chatId, err := pathInt(r, "chat_id")
	if err != nil {
		s.writeError(w, err)
		return
	}

	counts, err := s.membership.CountByStatus(r.Context(), chatId)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *WebhookServer) logDecodeError(err error, body []byte) {
	var de *decode.Error
	if errors.As(err, &de) {
		s.logger.WithFields(logrus.Fields{
			"field_path": de.FieldPath(),
			"raw":        string(body),
		}).WithError(err).Warn("can't decode update")
	}
}

func (s *WebhookServer) writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var de *decode.Error
	if errors.As(err, &de) {
		resp.FieldPath = de.FieldPath()
	}
	writeJSON(w, wrapError(err), resp)
}

// prefixUpdateKind places a payload decode error under its update kind so the
// reported path starts at the update root.
func prefixUpdateKind(kind string, err error) error {
	var de *decode.Error
	if !errors.As(err, &de) {
		return err
	}
	path := append([]string{kind}, de.Path...)
	return &decode.Error{Kind: de.Kind, Path: path, Expected: de.Expected}
}

func wrapError(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	errorMapper := []struct {
		from error
		to   int
	}{
		{decode.ErrMissingField, http.StatusBadRequest},
		{decode.ErrTypeMismatch, http.StatusBadRequest},
		{ErrInvalidParam, http.StatusBadRequest},
		{usecases.ErrInvalidUpdate, http.StatusBadRequest},
		{ErrInvalidSecret, http.StatusUnauthorized},
		{storage.ErrMemberNotFound, http.StatusNotFound},
	}

	for _, mapping := range errorMapper {
		if errors.Is(err, mapping.from) {
			return mapping.to
		}
	}
	return http.StatusInternalServerError
}

func pathInt(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, ErrInvalidParam
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
