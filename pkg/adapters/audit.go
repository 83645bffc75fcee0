package adapters

import (
	"github.com/Samayeeta/indicure-ey/pkg/models/api"
	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

func MapExportRecordDomainToApi(r domain.ExportRecord) api.ExportRecord {
	return api.ExportRecord{
		ID:        r.ID,
		Filename:  r.Filename,
		Mode:      r.Mode,
		Geography: r.Geography,
		Size:      r.Size,
		SHA256:    r.SHA256,
		Location:  r.Location,
		CreatedAt: r.CreatedAt,
	}
}

func MapExportListDomainToApi(records []domain.ExportRecord) api.ExportList {
	res := api.ExportList{Exports: make([]api.ExportRecord, 0, len(records))}
	for _, r := range records {
		res.Exports = append(res.Exports, MapExportRecordDomainToApi(r))
	}
	return res
}
