package dto

// ConversationMessageRequest is one chat message forwarded by the chat transport.
type ConversationMessageRequest struct {
	ChatID string `json:"chat_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// ConversationMessageResponse is the reply to send back to the chat.
type ConversationMessageResponse struct {
	Reply         string  `json:"reply"`
	Step          string  `json:"step"`
	TransactionID *string `json:"transaction_id,omitempty"`
}
