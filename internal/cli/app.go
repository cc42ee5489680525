package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rollcall/internal/config"
	"github.com/roach88/rollcall/internal/directory"
	"github.com/roach88/rollcall/internal/ledger"
	"github.com/roach88/rollcall/internal/model"
	"github.com/roach88/rollcall/internal/store"
)

// Main runs the CLI with args and returns the process exit code.
// Errors are rendered in the selected format: the JSON envelope on stdout,
// plain text on stderr.
func Main(args []string, stdout, stderr io.Writer) int {
	return run(&RootOptions{}, args, stdout, stderr)
}

func run(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitCommandError, Reason: ErrCodeInvalidInput, Message: err.Error()}
	})

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		// Unwrapped errors come from cobra's argument validation.
		err = &ExitError{Code: ExitCommandError, Reason: ErrCodeInvalidInput, Message: err.Error()}
	}

	f := &OutputFormatter{Format: opts.Format, Writer: stderr, Verbose: opts.Verbose}
	if f.IsJSON() {
		f.Writer = stdout
	}
	_ = f.Error(ErrorCode(err), err.Error(), nil)
	return GetExitCode(err)
}

// app is the environment a command runs in: resolved config, open store and
// the loaded directory and ledger.
type app struct {
	opts   *RootOptions
	cfg    config.Config
	loc    *time.Location
	store  *store.SQLite
	dir    *directory.Directory
	ledger *ledger.Ledger
	out    *OutputFormatter
	logger *slog.Logger
}

// openApp resolves configuration (flag > config file > default), opens the
// database and loads the collections.
func openApp(cmd *cobra.Command, opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Reason: ErrCodeInvalidInput, Message: "failed to load config", Err: err}
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Timezone != "" {
		cfg.Timezone = opts.Timezone
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Reason: ErrCodeInvalidInput, Message: "invalid time zone", Err: err}
	}

	logger := slog.Default()
	if dir := filepath.Dir(cfg.Database); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &ExitError{Code: ExitCommandError, Reason: ErrCodeStorage, Message: "failed to create database directory", Err: err}
		}
	}

	logger.Debug("opening database", "path", cfg.Database)
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Reason: ErrCodeStorage, Message: "failed to open database", Err: err}
	}

	ctx := commandContext(cmd)
	dir, err := directory.Open(ctx, st, directory.WithLogger(logger))
	if err != nil {
		_ = st.Close()
		return nil, &ExitError{Code: ExitCommandError, Reason: ErrCodeStorage, Message: "failed to load teachers", Err: err}
	}
	l, err := ledger.Open(ctx, st, ledger.WithLocation(loc), ledger.WithLogger(logger))
	if err != nil {
		_ = st.Close()
		return nil, &ExitError{Code: ExitCommandError, Reason: ErrCodeStorage, Message: "failed to load attendance", Err: err}
	}

	return &app{
		opts:   opts,
		cfg:    cfg,
		loc:    loc,
		store:  st,
		dir:    dir,
		ledger: l,
		out:    newFormatter(cmd, opts),
		logger: logger,
	}, nil
}

// withApp runs fn against an opened app and closes it afterwards.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, a *app) error) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.store.Close(); closeErr != nil {
			a.logger.Error("error closing database", "error", closeErr)
		}
	}()
	return fn(commandContext(cmd), a)
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// today returns date, or the current day in the configured zone when empty.
func (a *app) today(date string) string {
	if date != "" {
		return date
	}
	return a.opts.now().In(a.loc).Format(ledger.DateLayout)
}

// clock returns t, or the current time of day in the configured zone when empty.
func (a *app) clock(t string) string {
	if t != "" {
		return t
	}
	return a.opts.now().In(a.loc).Format(ledger.TimeLayout)
}

// teacher looks up id, failing with TEACHER_NOT_FOUND.
func (a *app) teacher(id string) (model.Teacher, error) {
	t, ok := a.dir.Get(id)
	if !ok {
		return model.Teacher{}, &ExitError{Code: ExitFailure, Reason: ErrCodeNotFound, Message: "teacher not found: " + id}
	}
	return t, nil
}

// activeTeacher is teacher, additionally rejecting inactive teachers.
func (a *app) activeTeacher(id string) (model.Teacher, error) {
	t, err := a.teacher(id)
	if err != nil {
		return t, err
	}
	if !t.IsActive {
		return t, &ExitError{Code: ExitFailure, Reason: ErrCodeInactive, Message: "teacher is inactive: " + t.Name}
	}
	return t, nil
}

// failure wraps an operation error. Ledger rejections keep their code through
// Unwrap; anything else is reported as a storage error.
func failure(message string, err error) error {
	var ledgerErr *ledger.Error
	if errors.As(err, &ledgerErr) {
		return &ExitError{Code: ExitFailure, Message: message, Err: err}
	}
	return &ExitError{Code: ExitFailure, Reason: ErrCodeStorage, Message: message, Err: err}
}
