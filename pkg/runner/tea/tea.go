// Package teaui launches the Bubble Tea interface.
package teaui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	appsvc "tableflip.dev/moodtrack/pkg/app"
	tuiapp "tableflip.dev/moodtrack/pkg/tui/app"
)

// UI runs the terminal interface against App.
type UI struct {
	App    *appsvc.App
	Logger *zap.Logger
}

// Do loads the mood cache, starts the day monitor and blocks until the user
// quits.
func (u *UI) Do(ctx context.Context) error {
	if u.App == nil {
		return errors.New("can not start ui, no app")
	}
	logger := u.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := u.App.Initialize(ctx); err != nil {
		return err
	}
	return tuiapp.Run(ctx, u.App, logger.Named("ui"))
}
