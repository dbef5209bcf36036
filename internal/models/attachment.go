package models

import "gorm.io/gorm"

type Attachment struct {
	gorm.Model

	Filename         string `gorm:"not null"` // Generated storage name
	OriginalFilename string `gorm:"not null"`
	FilePath         string `gorm:"not null"`
	FileSize         int64  `gorm:"not null"` // Bytes
	MimeType         string

	ExerciseID *uint `gorm:"index"`
	OwnerID    uint  `gorm:"not null;index"`

	// Relationships
	Exercise *Exercise `gorm:"foreignKey:ExerciseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Owner    User      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
