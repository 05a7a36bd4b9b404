package services

import (
	"strings"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/models"
)

// FilterRecords returns the records whose wine name, varietal, or region
// contains term, case-insensitively. A blank term (after trimming) returns
// every record. Relative order is preserved; the input slice is not
// modified. Filtering is a view over the cache and never touches the server.
func FilterRecords(records []models.TastingRecord, term string) []models.TastingRecord {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		out := make([]models.TastingRecord, len(records))
		copy(out, records)
		return out
	}

	out := make([]models.TastingRecord, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.WineName), needle) ||
			strings.Contains(strings.ToLower(rec.Varietal), needle) ||
			strings.Contains(strings.ToLower(rec.Region), needle) {
			out = append(out, rec)
		}
	}
	return out
}
