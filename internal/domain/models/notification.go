package models

import "time"

// NotificationType classifies reminders.
type NotificationType string

const (
	NotificationVaccine NotificationType = "vaccine"
	NotificationCheckup NotificationType = "checkup"
	NotificationWeight  NotificationType = "weight"
	NotificationOther   NotificationType = "other"
)

// NotificationStatus tracks whether a reminder was dealt with.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationDone    NotificationStatus = "done"
)

// Notification is a reminder about one animal.
type Notification struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	CattleID      uint               `gorm:"index;not null" json:"cattle" validate:"required"`
	Type          NotificationType   `gorm:"size:50;not null" json:"type" validate:"required,oneof=vaccine checkup weight other"`
	Message       string             `gorm:"type:text;not null" json:"message" validate:"required"`
	NotifyDate    Date               `gorm:"not null;index" json:"notify_date" validate:"required"`
	Status        NotificationStatus `gorm:"size:20;not null;default:pending;index" json:"status" validate:"omitempty,oneof=pending done"`
	VaccinationID *uint              `gorm:"index" json:"vaccination"`
	SentAt        *time.Time         `json:"sent_at"`
}

// Report is a free-text, auto-dated note about one animal.
type Report struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CattleID   uint   `gorm:"index;not null" json:"cattle" validate:"required"`
	ReportDate Date   `gorm:"not null" json:"report_date"`
	Content    string `gorm:"type:text;not null" json:"content" validate:"required"`
}

func (n *Notification) OwnerID() uint       { return n.CattleID }
func (n *Notification) SetOwnerID(id uint)  { n.CattleID = id }
func (n *Notification) RecordID() uint      { return n.ID }
func (n *Notification) SetRecordID(id uint) { n.ID = id }

func (r *Report) OwnerID() uint       { return r.CattleID }
func (r *Report) SetOwnerID(id uint)  { r.CattleID = id }
func (r *Report) RecordID() uint      { return r.ID }
func (r *Report) SetRecordID(id uint) { r.ID = id }
