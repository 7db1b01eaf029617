package models

// WebhookPayload is the body of a WhatsApp Cloud API webhook callback. Only
// the parts the herd bot reads are decoded.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

// WebhookValue carries user messages and delivery receipts. Receipts are
// only counted.
type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []InboundMessage `json:"messages"`
	Statuses         []MessageStatus  `json:"statuses"`
}

// Messages flattens every inbound message of the callback in delivery order.
func (p WebhookPayload) Messages() []InboundMessage {
	var out []InboundMessage
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			out = append(out, change.Value.Messages...)
		}
	}
	return out
}

// Receipts counts the delivery and read receipts of the callback.
func (p WebhookPayload) Receipts() int {
	n := 0
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			n += len(change.Value.Statuses)
		}
	}
	return n
}

// InboundMessage is one message a farmer sent to the bot.
type InboundMessage struct {
	ID          string              `json:"id"`
	From        string              `json:"from"`
	Timestamp   string              `json:"timestamp"`
	Type        string              `json:"type"`
	Text        *TextContent        `json:"text,omitempty"`
	Interactive *InteractiveContent `json:"interactive,omitempty"`
}

// Body is the command text: the typed text, or the id of a pressed button
// or list row. Media messages have none.
func (m InboundMessage) Body() string {
	switch {
	case m.Text != nil:
		return m.Text.Body
	case m.Interactive == nil:
		return ""
	case m.Interactive.ButtonReply != nil:
		return m.Interactive.ButtonReply.ID
	case m.Interactive.ListReply != nil:
		return m.Interactive.ListReply.ID
	}
	return ""
}

type TextContent struct {
	Body string `json:"body"`
}

// InteractiveContent is a reply to a button or list message.
type InteractiveContent struct {
	Type        string       `json:"type"`
	ButtonReply *ReplyOption `json:"button_reply,omitempty"`
	ListReply   *ReplyOption `json:"list_reply,omitempty"`
}

type ReplyOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// MessageStatus is a delivery or read receipt for a message the bot sent.
type MessageStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	RecipientID string `json:"recipient_id"`
}
