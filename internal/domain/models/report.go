package models

import "time"

// HerdSnapshot represents the daily herd counters archived to MongoDB and Sheets.
type HerdSnapshot struct {
	Date            string    `bson:"date" json:"date"`
	Total           int64     `bson:"total" json:"total"`
	Sick            int64     `bson:"sick" json:"sick"`
	ForSale         int64     `bson:"for_sale" json:"for_sale"`
	Healthy         int64     `bson:"healthy" json:"healthy"`
	Unchecked       int64     `bson:"unchecked" json:"unchecked"`
	VaccinationsDue int64     `bson:"vaccinations_due" json:"vaccinations_due"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
