package models

import "github.com/google/uuid"

type SubjectArea struct {
	ID   uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
}

type JournalSection struct {
	ID   uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
}
