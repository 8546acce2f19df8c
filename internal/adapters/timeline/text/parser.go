package text

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/timeline-viewer/internal/domain"
)

const (
	commentMarker  = "#"
	controlKeyword = "hideall"
)

var (
	// 7.9 "Quadruple Crossing" sync /.../
	quotedLine = regexp.MustCompile(`^(\d+\.?\d*)\s+"([^"]+)"`)
	// 12 raging claw B: the label stops before the first whitespace + capital letter.
	unquotedLine = regexp.MustCompile(`^(\d+\.?\d*)\s+([^"#\s][^#]*?)(?:\s+[A-Z]|$)`)

	reservedLabelPrefixes = []string{"label", "--"}
)

// Parse extracts timeline entries from a script and returns them sorted by time.
// Lines that match neither accepted shape are skipped.
func Parse(content string) []domain.TimelineEntry {
	entries, _ := parse(content)
	return entries
}

func parse(content string) ([]domain.TimelineEntry, int) {
	var entries []domain.TimelineEntry
	skipped := 0

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if ignoredLine(line) {
			continue
		}

		entry, ok := parseLine(line)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	domain.SortEntries(entries)
	return entries, skipped
}

func ignoredLine(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, commentMarker) ||
		strings.HasPrefix(line, controlKeyword)
}

func parseLine(line string) (domain.TimelineEntry, bool) {
	if m := quotedLine.FindStringSubmatch(line); m != nil {
		at, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return domain.TimelineEntry{}, false
		}
		return domain.TimelineEntry{Time: at, Label: m[2]}, true
	}

	m := unquotedLine.FindStringSubmatch(line)
	if m == nil {
		return domain.TimelineEntry{}, false
	}

	label := strings.TrimSpace(m[2])
	if label == "" || hasReservedPrefix(label) {
		return domain.TimelineEntry{}, false
	}

	at, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return domain.TimelineEntry{}, false
	}

	return domain.TimelineEntry{Time: at, Label: label}, true
}

func hasReservedPrefix(label string) bool {
	for _, prefix := range reservedLabelPrefixes {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}
	return false
}
