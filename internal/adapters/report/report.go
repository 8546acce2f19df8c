package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/timeline-viewer/internal/application"
	"github.com/bnema/timeline-viewer/internal/domain"
	"github.com/bytedance/sonic"
	toml "github.com/pelletier/go-toml/v2"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatJSON, FormatTOML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (want text, json or toml)", raw)
	}
}

// Report is the projection of a timeline after a set of uses.
type Report struct {
	Source      string
	GeneratedAt time.Time
	Pool        domain.PoolConfig
	Rows        []application.Row
	Uses        []domain.ConsumptionEvent
}

func WriteJSON(w io.Writer, r Report) error {
	data, err := sonic.ConfigStd.MarshalIndent(toSchema(r), "", "  ")
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}

func WriteTOML(w io.Writer, r Report) error {
	if err := toml.NewEncoder(w).Encode(toSchema(r)); err != nil {
		return fmt.Errorf("encode toml report: %w", err)
	}
	return nil
}

// ReadTOML decodes a report written by WriteTOML. Reports from a newer schema are rejected.
func ReadTOML(r io.Reader) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("read toml report: %w", err)
	}

	var decoded reportSchema
	if err := toml.Unmarshal(data, &decoded); err != nil {
		return Report{}, fmt.Errorf("decode toml report: %w", err)
	}
	if err := decoded.validateVersion(); err != nil {
		return Report{}, err
	}
	decoded.applyDefaults()

	return fromSchema(decoded), nil
}

func toSchema(r Report) reportSchema {
	rows := make([]rowSchema, 0, len(r.Rows))
	for _, row := range r.Rows {
		encoded := rowSchema{
			Time:    row.Entry.Time,
			Label:   row.Entry.Label,
			Charges: row.Charges,
			Full:    row.Full,
		}
		if row.Regen != nil {
			encoded.Regen = &regenSchema{
				Label:     row.Regen.Label,
				Progress:  row.Regen.Progress,
				Remaining: row.Regen.Remaining,
			}
		}
		rows = append(rows, encoded)
	}

	uses := make([]useSchema, 0, len(r.Uses))
	for _, use := range r.Uses {
		uses = append(uses, useSchema{Time: use.Time, Label: use.Label})
	}

	return reportSchema{
		Version:     currentSchemaVersion,
		Source:      r.Source,
		GeneratedAt: formatTime(r.GeneratedAt),
		Pool: poolSchema{
			Name:          r.Pool.Name,
			Capacity:      r.Pool.Capacity,
			RegenInterval: r.Pool.RegenInterval,
		},
		Rows: rows,
		Uses: uses,
	}
}

func fromSchema(s reportSchema) Report {
	rows := make([]application.Row, 0, len(s.Rows))
	for i, row := range s.Rows {
		decoded := application.Row{
			Index:   i,
			Entry:   domain.TimelineEntry{Time: row.Time, Label: row.Label},
			Charges: row.Charges,
			Full:    row.Full,
		}
		if row.Regen != nil {
			decoded.Regen = &domain.Regeneration{
				Label:     row.Regen.Label,
				Progress:  row.Regen.Progress,
				Remaining: row.Regen.Remaining,
			}
		}
		rows = append(rows, decoded)
	}

	uses := make([]domain.ConsumptionEvent, 0, len(s.Uses))
	for _, use := range s.Uses {
		uses = append(uses, domain.ConsumptionEvent{Time: use.Time, Label: use.Label})
	}

	return Report{
		Source:      s.Source,
		GeneratedAt: parseTime(s.GeneratedAt),
		Pool: domain.PoolConfig{
			Name:          s.Pool.Name,
			Capacity:      s.Pool.Capacity,
			RegenInterval: s.Pool.RegenInterval,
		},
		Rows: rows,
		Uses: uses,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed.UTC()
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
