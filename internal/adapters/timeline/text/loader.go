package text

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bnema/timeline-viewer/internal/domain"
	applog "github.com/bnema/timeline-viewer/internal/log"
	"github.com/bnema/timeline-viewer/internal/ports"
)

const utf8BOM = "\uFEFF"

var errNotUTF8 = errors.New("file is not valid UTF-8 text")

// Loader reads timeline scripts from disk.
type Loader struct{}

var _ ports.TimelineLoader = Loader{}

func NewLoader() Loader {
	return Loader{}
}

func (Loader) Load(ctx context.Context, path string) ([]domain.TimelineEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &domain.LoadError{Path: path, Err: errNotUTF8}
	}

	entries, skipped := parse(strings.TrimPrefix(string(data), utf8BOM))

	applog.WithOperation(applog.WithComponent("timeline"), "parse").Debug("timeline parsed",
		slog.String("path", path),
		slog.Int("entries", len(entries)),
		slog.Int("skipped", skipped),
	)

	return entries, nil
}
