package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseRecord parses a JSON object into the raw record form consumed by the
// Decode* functions. Numbers are kept as json.Number.
func ParseRecord(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return raw, nil
}

func decodeJSON[T any](data []byte, fn func(any) (T, error)) (T, error) {
	raw, err := ParseRecord(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(raw)
}

func DecodeChatMemberJSON(data []byte) (ChatMember, error) {
	return decodeJSON(data, DecodeChatMember)
}

func DecodeChatInviteLinkJSON(data []byte) (ChatInviteLink, error) {
	return decodeJSON(data, DecodeChatInviteLink)
}

func DecodeChatMemberUpdatedJSON(data []byte) (ChatMemberUpdated, error) {
	return decodeJSON(data, DecodeChatMemberUpdated)
}
