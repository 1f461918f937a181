package validation

import (
	"fmt"
	"time"

	"github.com/rvosse/Currency-Rate-Sync-Backend/internal/apperrors"
)

// ParseDateRange parses optional start/end date query values in
// YYYY-MM-DD form. Empty strings yield zero times (no constraint).
func ParseDateRange(start, end string) (time.Time, time.Time, error) {
	var startDate, endDate time.Time
	var err error

	if start != "" {
		startDate, err = time.Parse("2006-01-02", start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", start)
		}
	}
	if end != "" {
		endDate, err = time.Parse("2006-01-02", end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", end)
		}
	}

	if !startDate.IsZero() && !endDate.IsZero() && startDate.After(endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date is after end date", apperrors.ErrInvalidDateRange)
	}

	return startDate, endDate, nil
}
