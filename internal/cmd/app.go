package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/config"
	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/log"
	"github.com/staffdesk/staffdesk/internal/metrics"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/storage"
	"github.com/staffdesk/staffdesk/internal/tui"
	"github.com/staffdesk/staffdesk/internal/ux"
	"github.com/staffdesk/staffdesk/internal/version"
)

// Command annotations read by the root command.
const (
	// annotationView names the router view a command opens. The guard runs
	// before the command body.
	annotationView = "view"
	// annotationNoSetup marks commands that run without config, session or
	// backend, such as version.
	annotationNoSetup = "nosetup"
)

// App holds the flags and dependencies every command shares. It replaces
// package-level state so each command tree is independent.
type App struct {
	// Flags
	ConfigPath  string
	Format      string
	OutFile     string
	NoColor     bool
	LogLevel    string
	LogFormat   string
	MetricsFile string
	BaseURL     string

	// Set up by PersistentPreRunE
	Config   *config.Config
	Logger   *log.Logger
	Store    storage.Store
	Session  *session.Context
	Router   *router.Router
	Client   *api.Client
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	// Interactive reports whether prompts may be shown.
	Interactive func() bool
	// Now is the clock used for time filters.
	Now func() time.Time
}

// NewApp returns an App with production defaults.
func NewApp() *App {
	return &App{
		Interactive: tui.ShouldPrompt,
		Now:         time.Now,
	}
}

func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationNoSetup]; ok {
			return true
		}
	}
	return false
}

// setup loads configuration and wires the session, router and backend client.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Format = a.Format
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = a.NoColor
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.LogFormat
	}
	if flags.Changed("base-url") {
		cfg.API.BaseURL = a.BaseURL
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Enabled = true
		cfg.Metrics.File = a.MetricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.Config = cfg

	logCfg := log.ConfigFromStrings(cfg.Log.Level, cfg.Log.Format, version.Version)
	logCfg.Output = log.NewOutput(cmd.ErrOrStderr())
	a.Logger = log.New(logCfg)
	log.SetDefaultLogger(a.Logger)

	a.Registry, a.Metrics = metrics.NewRegistry()

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageFailed, "failed to open session storage", err).
			WithSuggestion("Check storage.driver and storage.path in 'staffdesk config view'")
	}
	a.Store = store

	a.Session = session.Load(cmd.Context(), store, a.Logger)
	a.Session.Subscribe(func(ev session.Event) {
		a.Metrics.RecordSessionEvent(ev.Kind.String())
	})
	a.Router = router.New(a.Session, router.WithLogger(a.Logger), router.WithObserver(a.Metrics))
	a.Client = api.NewClient(cfg.API.BaseURL, a.Session,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(a.Logger),
		api.WithRecorder(a.Metrics),
		api.WithUserAgent(version.GetInfo().UserAgent()),
	)
	return nil
}

// guard runs the router guard for the command's view. Anonymous sessions get
// a login required error and other roles an access denied error, both before
// anything is sent to the backend.
func (a *App) guard(cmd *cobra.Command) error {
	view, ok := cmd.Annotations[annotationView]
	if !ok {
		return nil
	}
	return a.open(router.View(view))
}

func (a *App) open(view router.View) error {
	d := a.Router.Guard(view)
	switch d.Outcome {
	case router.Authorized:
		return nil
	case router.Redirected:
		return errors.NewLoginRequiredError(string(view))
	default:
		return errors.NewAccessDeniedError(string(view), d.Role.String())
	}
}

// finish records the command and flushes metrics. It runs after every command,
// failed ones included.
func (a *App) finish(cmd *cobra.Command, elapsed time.Duration, err error) {
	if a.Metrics != nil && cmd != nil {
		a.Metrics.RecordCommand(cmd.CommandPath(), elapsed, err)
	}
	if a.Config != nil && a.Config.Metrics.Enabled && a.Registry != nil {
		if werr := metrics.WriteTextfile(a.Registry, a.Config.Metrics.File); werr != nil {
			log.OrDefault(a.Logger).WithError(werr).Warn("failed to write metrics", "file", a.Config.Metrics.File)
		}
	}
	if a.Store != nil {
		if cerr := a.Store.Close(); cerr != nil {
			log.OrDefault(a.Logger).WithError(cerr).Warn("failed to close session storage")
		}
		a.Store = nil
	}
}

// render writes data in the selected output format.
func (a *App) render(cmd *cobra.Command, data interface{}) error {
	format, noColor := a.Format, a.NoColor
	if a.Config != nil {
		format, noColor = a.Config.Output.Format, a.Config.Output.NoColor
	}
	f, err := ux.NewFormatter(format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: noColor,
		Path:    a.OutFile,
	})
	if err != nil {
		return errors.NewInvalidFieldError("--output", err.Error())
	}
	return f.Format(data)
}

// say prints a status line. Structured formats stay machine readable, so the
// line goes to stderr for them.
func (a *App) say(cmd *cobra.Command, format string, args ...interface{}) {
	w := cmd.OutOrStdout()
	if a.Config != nil && a.Config.Output.Format != ux.FormatText {
		w = cmd.ErrOrStderr()
	}
	fmt.Fprintf(w, format+"\n", args...)
}

func (a *App) interactive() bool {
	return a.Interactive != nil && a.Interactive()
}

func (a *App) ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// parseID parses a positional id argument.
func parseID(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidFieldError(name, fmt.Sprintf("%s must be a positive number, got %q", name, arg))
	}
	return id, nil
}

// withView annotates cmd with the view its guard checks.
func withView(cmd *cobra.Command, view router.View) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationView] = string(view)
	return cmd
}

func noSetup(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationNoSetup] = "true"
	return cmd
}
