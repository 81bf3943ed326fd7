package enrich

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded signals that the metadata source refused further
// requests. It aborts the whole enrichment run; retrying the remaining
// batches would only burn more quota.
var ErrQuotaExceeded = errors.New("metadata API quota exceeded, try again tomorrow or use a different API key")

// NoDataError reports that parsing retained zero watch events for a year.
type NoDataError struct {
	Year int
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no watch history found for %d - make sure you supplied the correct export file", e.Year)
}
