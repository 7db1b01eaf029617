package models

// OutboundMessageRequest is a WhatsApp text message to send, either posted to
// /send-message or produced by the reminder dispatch.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}
