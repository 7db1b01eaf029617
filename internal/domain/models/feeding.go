package models

// FeedingRation describes the ration an animal is on, e.g. FTMR-1 fed
// "07:30, 16:30 / clean water all day".
type FeedingRation struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	CattleID    uint     `gorm:"index;not null" json:"cattle" validate:"required"`
	RationID    string   `gorm:"size:50;not null" json:"ration_id" validate:"required,max=50"`
	FeedingTime string   `gorm:"size:100;not null" json:"feeding_time" validate:"required,max=100"`
	FreshWeight *float64 `gorm:"type:decimal(5,2);not null" json:"fresh_weight" validate:"required,gte=0,lt=1000"`
	DryWeight   *float64 `gorm:"type:decimal(5,2);not null" json:"dry_weight" validate:"required,gte=0,lt=1000"`
	Supplement  string   `gorm:"type:text" json:"supplement"`
}

func (r *FeedingRation) OwnerID() uint       { return r.CattleID }
func (r *FeedingRation) SetOwnerID(id uint)  { r.CattleID = id }
func (r *FeedingRation) RecordID() uint      { return r.ID }
func (r *FeedingRation) SetRecordID(id uint) { r.ID = id }
