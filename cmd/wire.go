package cmd

import (
	"fmt"
	"io"
	"os"

	timelinerender "github.com/bnema/timeline-viewer/internal/adapters/render/timeline"
	"github.com/bnema/timeline-viewer/internal/adapters/timeline/text"
	"github.com/bnema/timeline-viewer/internal/application"
	"github.com/bnema/timeline-viewer/internal/config"
	applog "github.com/bnema/timeline-viewer/internal/log"
	"github.com/bnema/timeline-viewer/internal/ports"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const defaultTerminalWidth = 100

type app struct {
	cfg      config.Config
	loader   ports.TimelineLoader
	clock    ports.Clock
	renderer func([]application.Row, timelinerender.RenderOptions) (string, error)
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &app{
		cfg:      cfg,
		loader:   text.NewLoader(),
		clock:    ports.SystemClock{},
		renderer: timelinerender.Render,
	}, nil
}

// startSession initialises logging and returns a fresh session. A nil console keeps log
// records off the terminal.
func (a *app) startSession(console io.Writer) *application.Session {
	opts := a.cfg.Log.Options()
	opts.Console = console
	applog.Init(opts)

	return application.NewSession(a.loader, a.cfg.Pool, a.clock)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultTerminalWidth
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
