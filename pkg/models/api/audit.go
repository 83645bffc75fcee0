package api

import "time"

// ExportRecord is one entry of the export audit log.
type ExportRecord struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Mode      string    `json:"mode"`
	Geography string    `json:"geography"`
	Size      int64     `json:"size_bytes"`
	SHA256    string    `json:"sha256"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportList struct {
	Exports []ExportRecord `json:"exports"`
}
