package icron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// parser accepts standard 5-field cron expressions plus descriptors
// like "@hourly", matching what cron.New() schedules with.
var parser = cron.NewParser(cron.Minute | cron.Hour |
	cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate checks that expr is a schedulable cron expression.
func Validate(expr string) error {
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// Next returns the first trigger time after refTime for the given
// expression. A zero time is returned when the expression is invalid.
func Next(expr string, refTime time.Time) time.Time {
	schedule, err := parser.Parse(expr)
	if err != nil {
		return time.Time{}
	}
	return schedule.Next(refTime)
}
