package models

import (
	"time"
)

// TrainingCenter represents a training center record
type TrainingCenter struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required,max=120"`
	CreatedAt time.Time `json:"created_at"`
}

// Category represents an athlete category record
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required,max=120"`
	CreatedAt time.Time `json:"created_at"`
}

// Athlete represents an athlete record. The training center and category are
// referenced by id; no existence check is performed before insert, so a
// dangling reference is only rejected where the engine enforces the
// constraint.
type Athlete struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"name" gorm:"index;not null" validate:"required,max=120"`
	TaxID            string          `json:"tax_id" gorm:"column:tax_id;uniqueIndex;not null" validate:"required,max=14"`
	TrainingCenterID uint            `json:"training_center_id"`
	CategoryID       uint            `json:"category_id"`
	TrainingCenter   *TrainingCenter `json:"-" gorm:"foreignKey:TrainingCenterID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Category         *Category       `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AthleteSummary is the read-side list row: the athlete name plus the
// resolved training center and category names, null when the reference
// does not resolve.
type AthleteSummary struct {
	Name               string  `json:"name"`
	TrainingCenterName *string `json:"training_center_name"`
	CategoryName       *string `json:"category_name"`
}

// AthleteDetail is the read-side single-record view.
type AthleteDetail struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	TaxID              string    `json:"tax_id"`
	TrainingCenterName *string   `json:"training_center_name"`
	CategoryName       *string   `json:"category_name"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreateTrainingCenterRequest is the create-center request body
type CreateTrainingCenterRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

// CreateCategoryRequest is the create-category request body
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

// CreateAthleteRequest is the create-athlete request body
type CreateAthleteRequest struct {
	Name             string `json:"name" binding:"required,max=120"`
	TaxID            string `json:"tax_id" binding:"required,max=14"`
	TrainingCenterID uint   `json:"training_center_id" binding:"required"`
	CategoryID       uint   `json:"category_id" binding:"required"`
}

// CreatedResponse is the create-operation success body
type CreatedResponse struct {
	ID uint `json:"id"`
}
