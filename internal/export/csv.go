// Package export writes the mood history to CSV or JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/calma/internal/mood"
)

// ToCSV writes entries most recent first. Value is the 1-5 ordinal.
func ToCSV(entries []mood.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Emotion", "Value"}); err != nil {
		return err
	}

	for _, e := range mood.SortDescending(entries) {
		row := []string{e.Date, string(e.Emotion), strconv.Itoa(e.Value())}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
