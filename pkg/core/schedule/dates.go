package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/escala/pkg/core/model"
)

// DefaultServiceRule is the weekly Saturday service
const DefaultServiceRule = "FREQ=WEEKLY;BYDAY=SA"

// ServiceCalendar enumerates service dates from a weekly rrule.
// Dates are calendar dates; all arithmetic happens at UTC midnight.
type ServiceCalendar struct {
	rule string
}

// NewServiceCalendar parses rule (an RRULE without DTSTART) and checks it is usable
func NewServiceCalendar(rule string) (*ServiceCalendar, error) {
	if rule == "" {
		rule = DefaultServiceRule
	}
	if err := ValidateServiceRule(rule); err != nil {
		return nil, fmt.Errorf("invalid service rule %q: %w", rule, err)
	}
	return &ServiceCalendar{rule: rule}, nil
}

// ValidateServiceRule accepts plain weekly rules only: FREQ=WEEKLY with no
// INTERVAL above 1, COUNT, UNTIL, BYSETPOS or DTSTART. Each query anchors the
// rule at its own start date, so only rules whose occurrences do not depend on
// the anchor give the same dates in every view.
func ValidateServiceRule(rule string) error {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return err
	}
	switch {
	case opt.Freq != rrule.WEEKLY:
		return fmt.Errorf("FREQ must be WEEKLY")
	case opt.Interval > 1:
		return fmt.Errorf("INTERVAL is not supported")
	case opt.Count > 0:
		return fmt.Errorf("COUNT is not supported")
	case !opt.Until.IsZero():
		return fmt.Errorf("UNTIL is not supported")
	case len(opt.Bysetpos) > 0:
		return fmt.Errorf("BYSETPOS is not supported")
	case !opt.Dtstart.IsZero():
		return fmt.Errorf("DTSTART is not supported")
	}
	return nil
}

// Rule returns the RRULE string
func (c *ServiceCalendar) Rule() string {
	return c.rule
}

// anchored builds the rule starting at dtstart
func (c *ServiceCalendar) anchored(dtstart time.Time) (*rrule.RRule, error) {
	opt, err := rrule.StrToROption(c.rule)
	if err != nil {
		return nil, fmt.Errorf("invalid service rule %q: %w", c.rule, err)
	}
	opt.Dtstart = dtstart
	return rrule.NewRRule(*opt)
}

// ServiceDates returns the service dates within month of year, ascending
func (c *ServiceCalendar) ServiceDates(year int, month time.Month) ([]string, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	r, err := c.anchored(first)
	if err != nil {
		return nil, err
	}

	occurrences := r.Between(first, last, true)
	dates := make([]string, 0, len(occurrences))
	for _, t := range occurrences {
		dates = append(dates, model.FormatDate(t))
	}
	return dates, nil
}

// NextServiceDate returns the first service date on or after from's calendar day
func (c *ServiceCalendar) NextServiceDate(from time.Time) (string, error) {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	r, err := c.anchored(day)
	if err != nil {
		return "", err
	}

	next := r.After(day, true)
	if next.IsZero() {
		return "", fmt.Errorf("service rule %q has no occurrence after %s", c.rule, model.FormatDate(day))
	}
	return model.FormatDate(next), nil
}

// Shift moves date by n occurrences of the rule (negative n moves backwards).
// date itself need not be a service date.
func (c *ServiceCalendar) Shift(date string, n int) (string, error) {
	t, err := model.ParseDate(date)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return date, nil
	}

	// Anchor far enough back to walk backwards
	anchor := t.AddDate(0, -(abs(n) + 1), 0)
	r, err := c.anchored(anchor)
	if err != nil {
		return "", err
	}

	cur := t
	for i := 0; i < abs(n); i++ {
		var next time.Time
		if n > 0 {
			next = r.After(cur, false)
		} else {
			next = r.Before(cur, false)
		}
		if next.IsZero() {
			return "", fmt.Errorf("no service date %d steps from %s", n, date)
		}
		cur = next
	}
	return model.FormatDate(cur), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
