package commands

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/escala/internal/config"
	"github.com/jakechorley/escala/pkg/core/advisor"
	"github.com/jakechorley/escala/pkg/core/schedule"
	"github.com/jakechorley/escala/pkg/core/store"
)

// ErrManagerModeRequired is returned by management commands while manager mode is off
var ErrManagerModeRequired = errors.New("manager mode is off (run 'managerMode on' first)")

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Store    *store.Store
	Calendar *schedule.ServiceCalendar
	Advisor  advisor.Advisor
	Logger   *zap.Logger
	Ctx      context.Context
	Now      func() time.Time
}

func (app *AppContext) requireManager() error {
	if !app.Store.ManagerMode() {
		return ErrManagerModeRequired
	}
	return nil
}

func (app *AppContext) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func (app *AppContext) minVolunteers() int {
	if app.Cfg != nil && app.Cfg.Advisor.MinVolunteers != nil {
		return *app.Cfg.Advisor.MinVolunteers
	}
	return config.DefaultMinVolunteers
}
