package models

// BlockedSlotMessage is shown when a user picks a slot whose resources are all blocked.
const BlockedSlotMessage = "horario bloqueado por mantenimiento"

// SlotAvailability is one entry of an exam's day grid.
type SlotAvailability struct {
	Date          string       `json:"date"`
	Time          string       `json:"time"`
	Blocked       bool         `json:"blocked"`
	FreeResources []ResourceID `json:"freeResources"`
	Message       string       `json:"message,omitempty"`
	Reason        string       `json:"reason,omitempty"`
}

// AvailabilityResponse answers a single resource or exam check.
type AvailabilityResponse struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Blocked  bool   `json:"blocked"`
	Message  string `json:"message,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Resource string `json:"resource,omitempty"`
	Exam     string `json:"exam,omitempty"`
}
