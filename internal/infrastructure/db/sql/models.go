package sqldb

import (
	"time"

	"gorm.io/datatypes"
)

type credentialRecord struct {
	Username    string `gorm:"primaryKey;size:255"`
	DisplayName string `gorm:"size:255"`
	PinHash     string `gorm:"size:100;not null"`
	CreatedAt   time.Time
}

func (credentialRecord) TableName() string { return "credentials" }

// documentRecord stores the whole sparse document as a JSON column.
type documentRecord struct {
	Username  string         `gorm:"primaryKey;size:255"`
	Entries   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (documentRecord) TableName() string { return "documents" }
