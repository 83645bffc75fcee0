package store

import "time"

type ExportRecord struct {
	ID        string
	Filename  string
	Mode      string
	Geography string
	Size      int64
	SHA256    string
	Location  *string
	CreatedAt time.Time
}
