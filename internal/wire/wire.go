// Package wire provides dependency injection for the launchgate application.
// New builds every service once at process start; Close tears them down.
package wire

import (
	"database/sql"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"

	cliadapter "github.com/example/launchgate/internal/adapters/cli"
	"github.com/example/launchgate/internal/adapters/sqlite"
	"github.com/example/launchgate/internal/adapters/terminal"
	"github.com/example/launchgate/internal/app"
	"github.com/example/launchgate/internal/config"
	"github.com/example/launchgate/internal/db"
	"github.com/example/launchgate/internal/ports/primary"
)

// Container holds the application's services.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	LaunchService   primary.LaunchService
	UpdateService   primary.UpdateService
	UpdateAdmin     primary.UpdateAdminService
	SettingsService primary.SettingsService

	database *sql.DB
}

// Options overrides the process streams used by the container.
// Zero values mean os.Stdin and os.Stderr.
type Options struct {
	In  io.Reader
	Err io.Writer
}

// New opens the database and constructs every service.
func New(cfg *config.Config, opts Options) (*Container, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	logger := NewLogger(opts.Err, cfg.LogLevel)

	database, err := db.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}

	// Create repository adapters (secondary ports) with the injected DB
	preferenceRepo := sqlite.NewPreferenceRepository(database)
	updatePlatform := sqlite.NewUpdatePlatform(database)
	eventRepo := sqlite.NewLaunchEventRepository(database)
	presenter := terminal.NewChallengePresenter(preferenceRepo, opts.In, opts.Err, cfg.ChallengeAttempts)

	executor := app.NewEffectExecutor(eventRepo, updatePlatform, cfg.UpdateRequestCode, logger)
	updates := app.NewUpdateSupervisor(updatePlatform, executor, uuid.NewString, logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		LaunchService:   app.NewLaunchService(preferenceRepo, presenter, updates, eventRepo, executor, uuid.NewString, logger),
		UpdateService:   updates,
		UpdateAdmin:     app.NewUpdateAdminService(updatePlatform, updatePlatform),
		SettingsService: app.NewSettingsService(preferenceRepo, presenter, logger),
		database:        database,
	}, nil
}

// Close releases the database.
func (c *Container) Close() error {
	if c.database != nil {
		return c.database.Close()
	}
	return nil
}

// LaunchAdapter returns a new LaunchAdapter writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func (c *Container) LaunchAdapter(out io.Writer) *cliadapter.LaunchAdapter {
	return cliadapter.NewLaunchAdapter(c.LaunchService, out)
}

// UpdateAdapter returns a new UpdateAdapter writing to out.
func (c *Container) UpdateAdapter(out io.Writer) *cliadapter.UpdateAdapter {
	return cliadapter.NewUpdateAdapter(c.UpdateService, c.UpdateAdmin, out)
}

// SettingsAdapter returns a new SettingsAdapter writing to out.
func (c *Container) SettingsAdapter(out io.Writer) *cliadapter.SettingsAdapter {
	return cliadapter.NewSettingsAdapter(c.SettingsService, out)
}

// NewLogger builds the process logger: text on a terminal, JSON otherwise.
func NewLogger(w io.Writer, level string) *slog.Logger {
	options := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
