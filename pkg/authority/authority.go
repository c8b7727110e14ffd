// Package authority maintains the authoritative record of datasets and data files.
//
// The record is an append-only log of commands. Loading an authority replays
// the log, in file order, into a fresh model.Store. Mutations build new
// commands, apply them right away and keep them in memory until Write
// appends them to the log.
//
// An Authority is not safe for concurrent use, and assumes it is the only
// writer of its log.
package authority

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/datatool/pkg/authority/status"
	"github.com/oneconcern/datatool/pkg/command"
	"github.com/oneconcern/datatool/pkg/dlogger"
	"github.com/oneconcern/datatool/pkg/logline"
	"github.com/oneconcern/datatool/pkg/model"
)

// Authority owns the entity store and the command history replayed into it
type Authority struct {
	fs        afero.Fs
	path      string
	store     *model.Store
	commands  []command.Command
	persisted int
	l         *zap.Logger
}

// Option for an Authority
type Option func(*Authority)

// Logger sets a logger for this authority
func Logger(logger *zap.Logger) Option {
	return func(a *Authority) {
		if logger != nil {
			a.l = logger
		}
	}
}

func defaultAuthority() *Authority {
	logger, _ := dlogger.GetLogger(dlogger.LogLevelInfo)
	return &Authority{
		store: model.NewStore(),
		l:     logger,
	}
}

// New builds an empty authority, not backed by any log file
func New(opts ...Option) *Authority {
	a := defaultAuthority()
	for _, apply := range opts {
		apply(a)
	}
	return a
}

// Load replays the authority log at path.
//
// A log which does not exist yet is loaded as an empty authority, and will be
// created on the first Write. Any malformed line, unknown command or failed
// command aborts the load.
func Load(fs afero.Fs, path string, opts ...Option) (*Authority, error) {
	a := New(opts...)
	a.fs = fs
	a.path = path

	f, err := fs.Open(path)
	switch {
	case os.IsNotExist(err):
		a.l.Debug("no authority log yet", zap.String("path", path))
		return a, nil
	case err != nil:
		return nil, status.ErrLoad.Wrap(err)
	}
	defer f.Close()

	if err = a.replay(f); err != nil {
		return nil, status.ErrLoad.WrapWithLog(a.l, err, zap.String("path", path))
	}
	return a, nil
}

// Parse replays an authority log from a stream. The result is not backed by a log file.
func Parse(r io.Reader, opts ...Option) (*Authority, error) {
	a := New(opts...)
	if err := a.replay(r); err != nil {
		return nil, status.ErrLoad.Wrap(err)
	}
	return a, nil
}

func (a *Authority) replay(r io.Reader) error {
	a.l.Debug("applying authority log commands")
	lines, err := logline.ReadAll(r)
	if err != nil {
		return err
	}
	for _, line := range lines {
		cmd, err := command.FromLine(line)
		if err != nil {
			return err
		}
		if err = a.apply(cmd); err != nil {
			return fmt.Errorf("line %d: %w", line.Num, err)
		}
	}
	a.persisted = len(a.commands)
	a.l.Debug("authority log replayed", zap.Int("commands", a.persisted))
	return nil
}

// apply a command to the store, and record it in history when it succeeds
func (a *Authority) apply(cmd command.Command) error {
	a.l.Debug("applying", zap.Stringer("command", cmd))
	if err := cmd.Apply(a.store); err != nil {
		return err
	}
	a.commands = append(a.commands, cmd)
	return nil
}

// Write appends the commands which are not persisted yet to the authority log
func (a *Authority) Write() error {
	if a.fs == nil || a.path == "" {
		return status.ErrNotPersistent
	}
	pending := a.commands[a.persisted:]
	if len(pending) == 0 {
		return nil
	}
	lines := make([]string, 0, len(pending))
	for _, cmd := range pending {
		line, err := command.Format(cmd)
		if err != nil {
			return status.ErrWrite.Wrap(err)
		}
		a.l.Debug("writing", zap.String("line", line[:len(line)-1]))
		lines = append(lines, line)
	}
	if err := logline.Append(a.fs, a.path, lines); err != nil {
		return status.ErrWrite.WrapWithLog(a.l, err, zap.String("path", a.path))
	}
	a.persisted = len(a.commands)
	return nil
}

// Path of the authority log, if any
func (a *Authority) Path() string {
	return a.path
}

// Store holding the current state. It must not be mutated directly.
func (a *Authority) Store() *model.Store {
	return a.store
}

// Commands in history, persisted or not
func (a *Authority) Commands() []command.Command {
	return append([]command.Command(nil), a.commands...)
}

// Pending is the number of commands not written to the log yet
func (a *Authority) Pending() int {
	return len(a.commands) - a.persisted
}
