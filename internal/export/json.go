package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/calma/internal/mood"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Average    *float64    `json:"average"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Date    string `json:"date"`
	Emotion string `json:"emotion"`
	Value   int    `json:"value"`
}

// ToJSON writes entries most recent first with the overall average, which is
// null for an empty history.
func ToJSON(entries []mood.Entry, path string) error {
	sorted := mood.SortDescending(entries)
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sorted),
		Entries:    make([]jsonEntry, 0, len(sorted)),
	}
	if st := mood.ComputeStats(sorted); st.HasData() {
		avg := st.Average
		export.Average = &avg
	}

	for _, e := range sorted {
		export.Entries = append(export.Entries, jsonEntry{
			Date:    e.Date,
			Emotion: string(e.Emotion),
			Value:   e.Value(),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
