package models

// Notification is an in-app notification shown to staff.
type Notification struct {
	ID        string            `json:"id"`
	Recipient string            `json:"recipient"`
	Type      string            `json:"type"`     // "system" for block events
	Priority  string            `json:"priority"` // high | medium | low
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt string            `json:"createdAt"`
}

// BlockEventPayload is the queued payload for block lifecycle events.
type BlockEventPayload struct {
	Event     string       `json:"event"` // created | deleted
	BlockID   string       `json:"blockId"`
	Resources []ResourceID `json:"resources,omitempty"`
	StartDate string       `json:"startDate,omitempty"`
	EndDate   string       `json:"endDate,omitempty"`
	Reason    string       `json:"reason,omitempty"`
	Actor     string       `json:"actor"`
}
