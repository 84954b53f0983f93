package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// DateOptions selects a calendar day.
type DateOptions struct {
	DateString string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.DateString, "date", "",
		`Specify a date, example: --date="2024-3-13" or --date="3/13". Defaults to today.`)
}

// GetDateKey returns the selected day as a date key, today when unset.
func (o *DateOptions) GetDateKey(now time.Time, loc *time.Location) (string, error) {
	if o.DateString == "" {
		return timeutil.DateKey(now, loc), nil
	}
	t, err := time.ParseInLocation(layoutISO, o.DateString, loc)
	if err != nil {
		// Let the year be the same. Unlike a due date, a record is about the
		// past, so a short date later than today means last year.
		t, err = time.ParseInLocation(layoutISOShort, o.DateString, loc)
		if err != nil {
			return "", err
		}
		t = t.AddDate(now.In(loc).Year(), 0, 0)
		if t.After(now) {
			t = t.AddDate(-1, 0, 0)
		}
	}
	return timeutil.DateKey(t, loc), nil
}
