package tracker

import (
	"strings"
	"unicode/utf8"

	"github.com/codetrackhq/codetrack/tracker/models"
)

// ComputeDiff compares the current scan against the last persisted baseline
// and returns one record per added, modified or deleted file. Unchanged files
// are never reported. When hasBaseline is false (first run) every current
// file is reported as added.
//
// LinesAdded for a modified file is the total line count of the new content,
// not a true added-line delta; the server-side history relies on this value,
// so it is kept as-is. LinesRemoved for deleted files is always 0: no
// removed-line counting is performed.
func ComputeDiff(current map[string]models.TrackedFile, baseline map[string]models.ManifestEntry, hasBaseline bool) []models.ChangeRecord {
	var changes []models.ChangeRecord

	for path, file := range current {
		if !hasBaseline {
			changes = append(changes, addedRecord(path, file))
			continue
		}

		prev, known := baseline[path]
		switch {
		case !known:
			changes = append(changes, addedRecord(path, file))
		case prev.Hash != file.Hash:
			content := decodeContent(file.Content)
			changes = append(changes, models.ChangeRecord{
				Path:         path,
				Type:         models.ChangeModified,
				Hash:         file.Hash,
				Content:      content,
				Size:         file.Size,
				PreviousHash: prev.Hash,
				LinesAdded:   countLines(content),
			})
		}
	}

	if hasBaseline {
		for path, prev := range baseline {
			if _, ok := current[path]; !ok {
				changes = append(changes, models.ChangeRecord{
					Path:         path,
					Type:         models.ChangeDeleted,
					PreviousHash: prev.Hash,
					LinesRemoved: 0,
				})
			}
		}
	}

	return changes
}

func addedRecord(path string, file models.TrackedFile) models.ChangeRecord {
	content := decodeContent(file.Content)
	return models.ChangeRecord{
		Path:       path,
		Type:       models.ChangeAdded,
		Hash:       file.Hash,
		Content:    content,
		Size:       file.Size,
		LinesAdded: countLines(content),
	}
}

// decodeContent turns raw file bytes into text, replacing invalid UTF-8
// sequences instead of failing. Binary-ish tracked files still produce a
// usable record this way.
func decodeContent(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}

func countLines(content string) int {
	return strings.Count(content, "\n") + 1
}
