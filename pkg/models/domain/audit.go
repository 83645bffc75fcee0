package domain

import "time"

// ExportRecord describes one rendered document. Location is empty when the
// document was only returned to the caller.
type ExportRecord struct {
	ID        string
	Filename  string
	Mode      string
	Geography string
	Size      int64
	SHA256    string
	Location  string
	CreatedAt time.Time
}
