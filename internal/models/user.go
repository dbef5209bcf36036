package models

import (
	"gorm.io/gorm"

	"github.com/thehaffk/WorkoutTracker/internal/types"
)

type User struct {
	gorm.Model

	Username     string     `gorm:"uniqueIndex;not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Role         types.Role `gorm:"type:varchar(20);not null;default:'viewer'"`

	// Optional biometrics used by the frontend for load estimates
	Age    *int
	Weight *float64
	Height *int
	Gender *string `gorm:"type:varchar(10)"` // male, female, other

	// Relationships
	Exercises   []Exercise   `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Workouts    []Workout    `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Attachments []Attachment `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
