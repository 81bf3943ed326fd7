package fileio

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/penwyp/TubeWrapped/models"
)

// ReadExportFile reads a watch-history export file and returns its raw
// records. The export is a single JSON array of heterogeneous objects;
// records that fail to decode individually are dropped by the parser, not
// here, so the only fatal conditions are I/O failures and a body that is
// not a JSON array at all.
func ReadExportFile(path string) ([]models.RawWatchEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file %s: %w", path, err)
	}
	defer file.Close()

	return ReadExport(file)
}

// ReadExport decodes a watch-history export from a reader.
func ReadExport(r io.Reader) ([]models.RawWatchEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read export data: %w", err)
	}

	var records []models.RawWatchEntry
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("export file is not a valid JSON array: %w", err)
	}

	return records, nil
}
