package bus

// InboundMessage is a single message received from a transport channel,
// before any intent resolution has happened.
type InboundMessage struct {
	Channel    string `json:"channel"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name,omitempty"`
	ChatID     string `json:"chat_id"`
	Content    string `json:"content"`
}

// OutboundMessage is a reply or notification to be delivered by the
// channel named in Channel.
type OutboundMessage struct {
	Channel string `json:"channel"`
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}
