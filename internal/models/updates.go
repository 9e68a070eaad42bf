package models

import "time"

type Transition string

const (
	TransitionJoined     Transition = "joined"
	TransitionLeft       Transition = "left"
	TransitionKicked     Transition = "kicked"
	TransitionPromoted   Transition = "promoted"
	TransitionDemoted    Transition = "demoted"
	TransitionRestricted Transition = "restricted"
	TransitionChanged    Transition = "changed"
	TransitionUnknown    Transition = "unknown"
)

type UpdateMeta struct {
	EventID   string    `validate:"required,uuid"`
	Timestamp time.Time `validate:"required"`
}

// MembershipChanged is published for every chat member update that was stored.
// Status fields carry wire literals, including unrecognized ones.
type MembershipChanged struct {
	UpdateMeta
	ChatID     int64      `validate:"required"`
	UserID     int64      `validate:"required"`
	ActorID    int64      `validate:"required"`
	Transition Transition `validate:"required,oneof=joined left kicked promoted demoted restricted changed unknown"`
	OldStatus  string
	NewStatus  string
	InviteLink *string `validate:"omitempty,url"`
}
