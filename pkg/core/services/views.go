package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/escala/pkg/core/model"
	"github.com/jakechorley/escala/pkg/core/schedule"
	"github.com/jakechorley/escala/pkg/core/store"
)

// DashboardResult is the view of a single service date
type DashboardResult struct {
	Summary  schedule.DateSummary
	Roster   []schedule.RoomRoster
	Previous string
	Next     string
}

// Dashboard builds the view for date, defaulting to the next service date on
// or after now when date is empty
func Dashboard(snap store.Snapshot, cal *schedule.ServiceCalendar, logger *zap.Logger, date string, now time.Time) (*DashboardResult, error) {
	logger.Debug("Starting dashboard", zap.String("date", date))

	if date == "" {
		next, err := cal.NextServiceDate(now)
		if err != nil {
			return nil, fmt.Errorf("failed to find next service date: %w", err)
		}
		date = next
	}

	prev, err := cal.Shift(date, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to find previous service date: %w", err)
	}
	next, err := cal.Shift(date, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to find next service date: %w", err)
	}

	result := &DashboardResult{
		Summary:  schedule.Summarize(snap, date),
		Roster:   schedule.Roster(snap, date),
		Previous: prev,
		Next:     next,
	}

	logger.Debug("Dashboard built",
		zap.String("date", date),
		zap.Int("filled", result.Summary.Filled),
		zap.Int("total_slots", result.Summary.TotalSlots))

	return result, nil
}

// MonthResult summarises every service date in a month
type MonthResult struct {
	Year  int
	Month time.Month
	Dates []schedule.DateSummary
}

// MonthOverview summarises each service date of month in year
func MonthOverview(snap store.Snapshot, cal *schedule.ServiceCalendar, logger *zap.Logger, year int, month time.Month) (*MonthResult, error) {
	logger.Debug("Starting monthOverview", zap.Int("year", year), zap.Int("month", int(month)))

	dates, err := cal.ServiceDates(year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate service dates: %w", err)
	}

	result := &MonthResult{Year: year, Month: month}
	for _, d := range dates {
		result.Dates = append(result.Dates, schedule.Summarize(snap, d))
	}

	logger.Debug("Month overview built", zap.Int("dates", len(result.Dates)))
	return result, nil
}

// ReportResult holds the participation report
type ReportResult struct {
	TotalVolunteers  int
	ActiveVolunteers int
	TotalAssignments int
	Ranking          []schedule.Participation
	Unscheduled      []model.Volunteer
}

// Report ranks volunteers by distinct service days and lists those never scheduled
func Report(snap store.Snapshot, logger *zap.Logger) *ReportResult {
	result := &ReportResult{
		TotalVolunteers:  len(snap.Volunteers),
		TotalAssignments: len(snap.Assignments),
		Ranking:          schedule.ParticipationRanking(snap),
		Unscheduled:      schedule.UnscheduledVolunteers(snap),
	}
	for _, v := range snap.Volunteers {
		if v.IsActive {
			result.ActiveVolunteers++
		}
	}

	logger.Debug("Report built",
		zap.Int("volunteers", result.TotalVolunteers),
		zap.Int("unscheduled", len(result.Unscheduled)))

	return result
}
