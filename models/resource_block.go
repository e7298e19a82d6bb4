package models

// Recurrence determines how a block's base window repeats.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Valid reports whether r is one of the known recurrence kinds.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Recurs reports whether the block repeats beyond its base window.
func (r Recurrence) Recurs() bool {
	return r == RecurrenceWeekly || r == RecurrenceMonthly
}

// ResourceBlock is a declared unavailability window for one or more resources.
// Dates are YYYY-MM-DD and times HH:MM, both in the venue's local calendar.
type ResourceBlock struct {
	ID                string       `bson:"id" json:"id"`
	Resources         []ResourceID `bson:"resources" json:"resources"`
	StartDate         string       `bson:"startDate" json:"startDate"`
	EndDate           string       `bson:"endDate" json:"endDate"`
	StartTime         string       `bson:"startTime" json:"startTime"`
	EndTime           string       `bson:"endTime" json:"endTime"`
	Reason            string       `bson:"reason" json:"reason"`
	Recurrence        Recurrence   `bson:"recurrence" json:"recurrence"`
	RecurrenceEndDate string       `bson:"recurrenceEndDate,omitempty" json:"recurrenceEndDate,omitempty"`
	CreatedBy         string       `bson:"createdBy" json:"createdBy"`
	CreatedAt         string       `bson:"createdAt" json:"createdAt"` // RFC3339
}

// HasResource reports whether the block applies to id.
func (b *ResourceBlock) HasResource(id ResourceID) bool {
	for _, r := range b.Resources {
		if r == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share the resources slice with the store.
func (b ResourceBlock) Clone() ResourceBlock {
	out := b
	out.Resources = append([]ResourceID(nil), b.Resources...)
	return out
}

// ResourceBlockInput is a block before the store assigns ID and CreatedAt.
type ResourceBlockInput struct {
	Resources         []ResourceID `json:"resources" binding:"required"`
	StartDate         string       `json:"startDate" binding:"required"`
	EndDate           string       `json:"endDate" binding:"required"`
	StartTime         string       `json:"startTime" binding:"required"`
	EndTime           string       `json:"endTime" binding:"required"`
	Reason            string       `json:"reason" binding:"required"`
	Recurrence        Recurrence   `json:"recurrence"`
	RecurrenceEndDate string       `json:"recurrenceEndDate,omitempty"`
	CreatedBy         string       `json:"-"`
}

// ToBlock builds the stored record.
func (in ResourceBlockInput) ToBlock(id, createdAt string) ResourceBlock {
	rec := in.Recurrence
	if rec == "" {
		rec = RecurrenceNone
	}
	return ResourceBlock{
		ID:                id,
		Resources:         append([]ResourceID(nil), in.Resources...),
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		Reason:            in.Reason,
		Recurrence:        rec,
		RecurrenceEndDate: in.RecurrenceEndDate,
		CreatedBy:         in.CreatedBy,
		CreatedAt:         createdAt,
	}
}

// BlockPatch is a partial update; nil fields are left untouched.
// ID, CreatedBy and CreatedAt are not patchable.
type BlockPatch struct {
	Resources         []ResourceID `json:"resources,omitempty"`
	StartDate         *string      `json:"startDate,omitempty"`
	EndDate           *string      `json:"endDate,omitempty"`
	StartTime         *string      `json:"startTime,omitempty"`
	EndTime           *string      `json:"endTime,omitempty"`
	Reason            *string      `json:"reason,omitempty"`
	Recurrence        *Recurrence  `json:"recurrence,omitempty"`
	RecurrenceEndDate *string      `json:"recurrenceEndDate,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p BlockPatch) IsEmpty() bool {
	return p.Resources == nil && p.StartDate == nil && p.EndDate == nil && p.StartTime == nil &&
		p.EndTime == nil && p.Reason == nil && p.Recurrence == nil && p.RecurrenceEndDate == nil
}

// Apply returns b with the patch merged in.
func (p BlockPatch) Apply(b ResourceBlock) ResourceBlock {
	out := b.Clone()
	if p.Resources != nil {
		out.Resources = append([]ResourceID(nil), p.Resources...)
	}
	if p.StartDate != nil {
		out.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		out.EndDate = *p.EndDate
	}
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		out.EndTime = *p.EndTime
	}
	if p.Reason != nil {
		out.Reason = *p.Reason
	}
	if p.Recurrence != nil {
		out.Recurrence = *p.Recurrence
	}
	if p.RecurrenceEndDate != nil {
		out.RecurrenceEndDate = *p.RecurrenceEndDate
	}
	return out
}
