package models

import "fmt"

// Status is the health classification recorded on a HealthCheck.
type Status string

const (
	StatusHealthy Status = "healthy"
	StatusSick    Status = "sick"
	StatusForSale Status = "forsale"
)

// Statuses lists every valid Status in display order.
var Statuses = []Status{StatusHealthy, StatusSick, StatusForSale}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Gender of an animal.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Genders lists every valid Gender.
var Genders = []Gender{GenderMale, GenderFemale}

// Cattle is one animal in the herd. Its current status is never stored here;
// it is derived from the most recent HealthCheck.
type Cattle struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TagNo     string `gorm:"size:50;uniqueIndex;not null" json:"tag_no" validate:"required,max=50"`
	Name      string `gorm:"size:100" json:"name" validate:"max=100"`
	Gender    Gender `gorm:"size:10;not null" json:"gender" validate:"required,oneof=male female"`
	Breed     string `gorm:"size:100" json:"breed" validate:"max=100"`
	Category  string `gorm:"size:100" json:"category" validate:"max=100"`
	Housing   string `gorm:"size:100" json:"housing" validate:"max=100"`
	BirthDate *Date  `json:"birth_date"`
	// Mother and Father are free text (tag or name); they are not relations.
	Mother string `gorm:"size:50" json:"mother" validate:"max=50"`
	Father string `gorm:"size:50" json:"father" validate:"max=50"`

	HealthChecks  []HealthCheck   `gorm:"foreignKey:CattleID;constraint:OnDelete:CASCADE" json:"healthchecks"`
	Treatments    []Treatment     `gorm:"foreignKey:CattleID;constraint:OnDelete:CASCADE" json:"-"`
	Vaccinations  []Vaccination   `gorm:"foreignKey:CattleID;constraint:OnDelete:CASCADE" json:"-"`
	Rations       []FeedingRation `gorm:"foreignKey:CattleID;constraint:OnDelete:CASCADE" json:"-"`
	Events        []CalendarEvent `gorm:"foreignKey:CattleID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification  `gorm:"foreignKey:CattleID;constraint:OnDelete:CASCADE" json:"-"`
	Reports       []Report        `gorm:"foreignKey:CattleID;constraint:OnDelete:CASCADE" json:"-"`

	// LatestStatus is filled only by queries selecting the latest_status subquery.
	LatestStatus *Status `gorm:"->;-:migration;column:latest_status" json:"-"`
}

// TableName keeps the uncountable plural.
func (Cattle) TableName() string {
	return "cattle"
}

// DisplayName returns the name, falling back to the tag number.
func (c Cattle) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.TagNo
}

// String mirrors the admin label "A001 - Daisy".
func (c Cattle) String() string {
	name := c.Name
	if name == "" {
		name = "Unnamed"
	}
	return fmt.Sprintf("%s - %s", c.TagNo, name)
}

// CurrentStatus is the derived status, healthy when the animal was never checked.
func (c Cattle) CurrentStatus() Status {
	if c.LatestStatus == nil || *c.LatestStatus == "" {
		return StatusHealthy
	}
	return *c.LatestStatus
}

// HasStatus reports whether a health check exists to derive the status from.
func (c Cattle) HasStatus() bool {
	return c.LatestStatus != nil && *c.LatestStatus != ""
}

// HerdSummary holds the dashboard counters.
type HerdSummary struct {
	Total     int64 `json:"total"`
	Sick      int64 `json:"sick_count"`
	ForSale   int64 `json:"for_sale_count"`
	Healthy   int64 `json:"healthy_count"`
	Unchecked int64 `json:"unchecked_count"`
}
