package models

// HealthCheck is one examination of an animal. The newest one by
// (check_date, id) defines the animal's current status.
type HealthCheck struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	CattleID    uint     `gorm:"index;not null" json:"cattle" validate:"required"`
	CheckDate   Date     `gorm:"not null;index" json:"check_date" validate:"required"`
	Temperature *float64 `gorm:"type:decimal(4,1)" json:"temperature" validate:"omitempty,gte=0,lt=100"`
	HeartRate   *int     `json:"heart_rate" validate:"omitempty,gte=0"`
	Weight      *float64 `gorm:"type:decimal(6,2)" json:"weight" validate:"omitempty,gte=0,lt=10000"`
	Notes       string   `gorm:"type:text" json:"notes"`
	Status      Status   `gorm:"size:20;not null;default:healthy" json:"status" validate:"required,oneof=healthy sick forsale"`
}

// Treatment records a diagnosis and the medication given.
type Treatment struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CattleID      uint   `gorm:"index;not null" json:"cattle" validate:"required"`
	Diagnosis     string `gorm:"size:255;not null" json:"diagnosis" validate:"required,max=255"`
	TreatmentDate Date   `gorm:"not null" json:"treatment_date" validate:"required"`
	Medication    string `gorm:"size:255" json:"medication" validate:"max=255"`
	DoctorName    string `gorm:"size:100" json:"doctor_name" validate:"max=100"`
	Notes         string `gorm:"type:text" json:"notes"`
}

// Vaccination records one vaccine dose and when the next one is due.
type Vaccination struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CattleID    uint   `gorm:"index;not null" json:"cattle" validate:"required"`
	VaccineName string `gorm:"size:100;not null" json:"vaccine_name" validate:"required,max=100"`
	VaccineDate Date   `gorm:"not null" json:"vaccine_date" validate:"required"`
	NextDueDate *Date  `gorm:"index" json:"next_due_date"`
	DoctorName  string `gorm:"size:100" json:"doctor_name" validate:"max=100"`
}

// OwnerID implements Owned.
func (h *HealthCheck) OwnerID() uint { return h.CattleID }

// SetOwnerID implements Owned.
func (h *HealthCheck) SetOwnerID(id uint) { h.CattleID = id }

// RecordID implements Owned.
func (h *HealthCheck) RecordID() uint { return h.ID }

// SetRecordID implements Owned.
func (h *HealthCheck) SetRecordID(id uint) { h.ID = id }

func (t *Treatment) OwnerID() uint       { return t.CattleID }
func (t *Treatment) SetOwnerID(id uint)  { t.CattleID = id }
func (t *Treatment) RecordID() uint      { return t.ID }
func (t *Treatment) SetRecordID(id uint) { t.ID = id }

func (v *Vaccination) OwnerID() uint       { return v.CattleID }
func (v *Vaccination) SetOwnerID(id uint)  { v.CattleID = id }
func (v *Vaccination) RecordID() uint      { return v.ID }
func (v *Vaccination) SetRecordID(id uint) { v.ID = id }

// HealthEvent is one "add health check" submission: the mandatory check plus
// whichever optional sections were filled in.
type HealthEvent struct {
	Check       *HealthCheck
	Vaccination *Vaccination
	Ration      *FeedingRation
	Event       *CalendarEvent
}
