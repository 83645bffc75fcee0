package adapters

import (
	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
	"github.com/Samayeeta/indicure-ey/pkg/models/store"
)

func MapStoreExportToDomain(r store.ExportRecord) domain.ExportRecord {
	res := domain.ExportRecord{
		ID:        r.ID,
		Filename:  r.Filename,
		Mode:      r.Mode,
		Geography: r.Geography,
		Size:      r.Size,
		SHA256:    r.SHA256,
		CreatedAt: r.CreatedAt,
	}
	if r.Location != nil {
		res.Location = *r.Location
	}
	return res
}

func MapDomainExportToStore(r domain.ExportRecord) store.ExportRecord {
	res := store.ExportRecord{
		ID:        r.ID,
		Filename:  r.Filename,
		Mode:      r.Mode,
		Geography: r.Geography,
		Size:      r.Size,
		SHA256:    r.SHA256,
		CreatedAt: r.CreatedAt,
	}
	if r.Location != "" {
		location := r.Location
		res.Location = &location
	}
	return res
}
