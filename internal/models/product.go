package models

import "time"

// Product represents a catalog item. IDs are small integers assigned by the
// catalog service (max existing + 1), not by the database.
type Product struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name      string    `json:"name" validate:"required"`
	Image     string    `json:"image" validate:"required"`
	Category  string    `json:"category" validate:"required"`
	NewPrice  float64   `json:"new_price" validate:"required,gt=0"`
	OldPrice  float64   `json:"old_price" validate:"required,gt=0"`
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
}
