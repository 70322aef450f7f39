package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// allFormats is written by GenerateReport for the pseudo-format "all".
var allFormats = []string{"console", "detailed-csv", "json", "html"}

// GenerateReport writes a report in the named format (or "all") into dir and returns
// the written file names.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range allFormats {
			written, err := GenerateReport(results, name, dir)
			if err != nil {
				return files, err
			}
			files = append(files, written...)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	ext, ok := fileExtensions[f.Name()]
	if !ok {
		ext = "txt"
	}
	name, err := WriteFormatted(f, results, dir, ext)
	if err != nil {
		return nil, fmt.Errorf("writing %s report: %w", f.Name(), err)
	}
	return []string{name}, nil
}
