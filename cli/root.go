// Package cli implements the pto command: kong command structs, logging and
// environment setup, and exit-code classification.
package cli

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/warp/vacation-planner/factory"
	"github.com/warp/vacation-planner/generic"
	"github.com/warp/vacation-planner/holidays"
	"github.com/warp/vacation-planner/render"
)

// ErrUsage marks invalid flag combinations.
var ErrUsage = errors.New("usage error")

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitConfig  = 2
)

// Root is the top-level command line.
type Root struct {
	LogLevel string `help:"Log level (${enum})." default:"warn" enum:"debug,info,warn,error" env:"PTO_LOG_LEVEL"`

	Optimize OptimizeCmd `cmd:"" default:"withargs" help:"Optimize PTO placement for maximum time off."`
	Holidays HolidaysCmd `cmd:"" help:"List holidays for a country preset."`
}

// Context is passed to every command's Run method.
type Context struct {
	Out      io.Writer
	Log      logrus.FieldLogger
	Renderer *render.Renderer
	Now      func() time.Time
}

func (c *Context) currentYear() int {
	if c.Now == nil {
		return time.Now().Year()
	}
	return c.Now().Year()
}

// NewParser builds the kong parser for root.
func NewParser(root *Root, opts ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("pto"),
		kong.Description("Optimize PTO placement for maximum time off."),
		kong.UsageOnError(),
	}
	return kong.New(root, append(base, opts...)...)
}

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(level string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l, nil
}

// LoadEnv reads .env from the working directory when present, without
// overriding variables that are already set.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case generic.IsConfigError(err),
		errors.Is(err, factory.ErrInvalidConfig),
		errors.Is(err, holidays.ErrUnknownPreset),
		errors.Is(err, ErrUsage):
		return ExitConfig
	default:
		return ExitFailure
	}
}
