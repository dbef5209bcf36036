package models

import "gorm.io/gorm"

type Exercise struct {
	gorm.Model

	Name        string `gorm:"not null;index"`
	Description string
	MuscleGroup string `gorm:"not null;index"`
	Equipment   string
	Difficulty  string `gorm:"type:varchar(20)"` // beginner, intermediate, advanced
	IsPublic    bool   `gorm:"default:false"`

	// Nil owner means a system-wide public exercise
	OwnerID *uint `gorm:"index"`

	// Relationships
	Owner            *User             `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	WorkoutExercises []WorkoutExercise `gorm:"foreignKey:ExerciseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Attachments      []Attachment      `gorm:"foreignKey:ExerciseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
