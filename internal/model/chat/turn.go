package chat

import "time"

// Origin identifies which side of the conversation produced a turn.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// Turn is one immutable message in a session. Turns are only ever appended.
type Turn struct {
	Origin    Origin    `json:"origin"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// RenderedTurn is the display-ready projection handed to the presentation
// layer. Ordinal is the pair index the turn belongs to.
type RenderedTurn struct {
	Text    string `json:"text"`
	IsUser  bool   `json:"isUser"`
	Ordinal int    `json:"ordinal"`
}
