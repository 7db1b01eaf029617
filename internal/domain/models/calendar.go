package models

import "time"

// EventType classifies calendar events.
type EventType string

const (
	EventFeeding  EventType = "feeding"
	EventHealth   EventType = "health"
	EventBreeding EventType = "breeding"
	EventOther    EventType = "other"
)

// EventTypes lists every valid EventType.
var EventTypes = []EventType{EventFeeding, EventHealth, EventBreeding, EventOther}

// CalendarEvent is a scheduled farm activity for one animal.
type CalendarEvent struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CattleID  uint       `gorm:"index;not null" json:"cattle" validate:"required"`
	Title     string     `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Start     time.Time  `gorm:"not null;index" json:"start" validate:"required"`
	End       *time.Time `json:"end"`
	EventType EventType  `gorm:"size:50;not null" json:"event_type" validate:"required,oneof=feeding health breeding other"`
	Notes     string     `gorm:"type:text" json:"notes"`
}

// EndOrStart returns End, or Start for open-ended events.
func (e CalendarEvent) EndOrStart() time.Time {
	if e.End != nil {
		return *e.End
	}
	return e.Start
}

func (e *CalendarEvent) OwnerID() uint       { return e.CattleID }
func (e *CalendarEvent) SetOwnerID(id uint)  { e.CattleID = id }
func (e *CalendarEvent) RecordID() uint      { return e.ID }
func (e *CalendarEvent) SetRecordID(id uint) { e.ID = id }
