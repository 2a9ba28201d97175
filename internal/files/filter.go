package files

import "github.com/filedrop/service/internal/filekey"

// FilterByOwner selects the records believed to belong to ownerID. Ownership
// is convention-based: the owner id is embedded in the display name at upload
// time and matched back by substring (see filekey.BelongsTo for the caveats).
func FilterByOwner(records []Record, ownerID string) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if filekey.BelongsTo(rec.Name, ownerID) {
			out = append(out, rec)
		}
	}
	return out
}
