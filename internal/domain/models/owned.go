package models

// Owned is implemented by every record that hangs off one Cattle row.
type Owned interface {
	OwnerID() uint
	SetOwnerID(id uint)
	RecordID() uint
	SetRecordID(id uint)
}

var (
	_ Owned = (*HealthCheck)(nil)
	_ Owned = (*Treatment)(nil)
	_ Owned = (*Vaccination)(nil)
	_ Owned = (*FeedingRation)(nil)
	_ Owned = (*CalendarEvent)(nil)
	_ Owned = (*Notification)(nil)
	_ Owned = (*Report)(nil)
)
