package domain

import "time"

const EventDraftUpserted = "draft_order.upserted"

// DraftEvent is published after a draft order is created or updated.
type DraftEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	DraftID        string    `json:"draftId"`
	InvoiceURL     string    `json:"invoiceUrl"`
	Updated        bool      `json:"updated"`
	LineCount      int       `json:"lineCount"`
	CustomLines    int       `json:"customLines"`
	IdempotencyKey string    `json:"idempotencyKey,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}
