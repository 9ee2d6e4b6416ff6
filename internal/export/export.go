package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sadopc/calma/internal/mood"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var Formats = []string{FormatCSV, FormatJSON}

// ToFile writes entries to path in the named format.
func ToFile(format string, entries []mood.Entry, path string) error {
	switch format {
	case FormatCSV:
		return ToCSV(entries, path)
	case FormatJSON:
		return ToJSON(entries, path)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// DefaultPath is dir/calma-export-YYYYMMDD.<format>.
func DefaultPath(dir, format string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("calma-export-%s.%s", now.Format("20060102"), format))
}
