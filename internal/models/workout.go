package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Workout struct {
	gorm.Model

	Date        datatypes.Date `gorm:"not null;index"`
	WorkoutType string         `gorm:"not null"` // "Strength", "Cardio", "Mixed", ...
	Duration    *int           // Minutes
	Notes       string
	OwnerID     uint `gorm:"not null;index"`

	// Relationships
	Owner            User              `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	WorkoutExercises []WorkoutExercise `gorm:"foreignKey:WorkoutID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
