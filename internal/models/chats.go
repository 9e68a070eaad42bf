package models

import "github.com/practice-sem-2/chat-membership/internal/decode"

type ChatKind uint8

const (
	ChatPrivate ChatKind = iota + 1
	ChatGroup
	ChatSupergroup
	ChatChannel
	ChatUnrecognized
)

type ChatType = decode.Variant[ChatKind]

var chatTypes = decode.NewEnum(ChatUnrecognized, map[string]ChatKind{
	"private":    ChatPrivate,
	"group":      ChatGroup,
	"supergroup": ChatSupergroup,
	"channel":    ChatChannel,
})

func ParseChatType(raw string) ChatType {
	return chatTypes.Decode(raw)
}

type Chat struct {
	ID        int64
	Type      ChatType
	Title     decode.Opt[string]
	Username  decode.Opt[string]
	FirstName decode.Opt[string]
	LastName  decode.Opt[string]
}

func DecodeChat(raw any) (Chat, error) {
	var c Chat
	err := decode.Record(raw,
		decode.Required("id", &c.ID, decode.Int64),
		decode.Required("type", &c.Type, chatTypes.DecodeField),
		decode.Optional("title", &c.Title, decode.String),
		decode.Optional("username", &c.Username, decode.String),
		decode.Optional("first_name", &c.FirstName, decode.String),
		decode.Optional("last_name", &c.LastName, decode.String),
	)
	if err != nil {
		return Chat{}, err
	}
	return c, nil
}

type User struct {
	ID           int64
	IsBot        bool
	FirstName    string
	LastName     decode.Opt[string]
	Username     decode.Opt[string]
	LanguageCode decode.Opt[string]
}

func DecodeUser(raw any) (User, error) {
	var u User
	err := decode.Record(raw,
		decode.Required("id", &u.ID, decode.Int64),
		decode.Required("is_bot", &u.IsBot, decode.Bool),
		decode.Required("first_name", &u.FirstName, decode.String),
		decode.Optional("last_name", &u.LastName, decode.String),
		decode.Optional("username", &u.Username, decode.String),
		decode.Optional("language_code", &u.LanguageCode, decode.String),
	)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
