package model

import (
	"time"
)

const (
	FileOwnerReport = "report"

	FileTypePDF   = "pdf"
	FileTypeExcel = "excel"
)

type File struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`            // Who owns/created this file
	OwnerType   string    `db:"owner_type" json:"ownerType"` // "report"
	Type        string    `db:"type" json:"type"`
	Filename    string    `db:"filename" json:"filename"`
	MimeType    string    `db:"mime_type" json:"mimeType"`
	Size        int64     `db:"size" json:"size"`
	StoragePath string    `db:"storage_path" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	// Presigned on read
	URL string `db:"-" json:"url,omitempty"`
}
