package models

import "gorm.io/gorm"

// WorkoutExercise records one exercise performed within a workout.
type WorkoutExercise struct {
	gorm.Model

	WorkoutID  uint `gorm:"not null;index"`
	ExerciseID uint `gorm:"not null;index"`

	Sets     int      `gorm:"not null;default:1"`
	Reps     int      `gorm:"not null;default:1"`
	Weight   *float64 // Kilograms
	Duration *int     // Seconds, for static holds
	Distance *float64 // Kilometers, for cardio
	Notes    string

	// Display position within the workout, ascending
	Position int `gorm:"not null;default:0"`

	// Relationships
	Workout  Workout  `gorm:"foreignKey:WorkoutID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Exercise Exercise `gorm:"foreignKey:ExerciseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
