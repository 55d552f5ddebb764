package parser

import (
	"strings"
	"time"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

// GenericParser is the fallback for files without a dedicated parser: one
// event per non-blank line, with best-effort timestamp/level/node extraction.
type GenericParser struct{}

func (p *GenericParser) Parse(content []byte, info models.FileInfo) []models.LogEvent {
	var events []models.LogEvent

	for i, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		ts := extractTimestamp(line)
		if ts.IsZero() {
			// Position offset keeps intra-file ordering stable.
			ts = info.ModTime.Add(time.Duration(i) * time.Millisecond)
		}

		level := extractLevel(line)
		if level == "" {
			level = "DEBUG"
		}

		nodeID := extractNodeID(line)
		if nodeID == "" {
			nodeID = "system"
		}

		events = append(events, models.LogEvent{
			ID:         NewEventID(line, i),
			Timestamp:  ts,
			Level:      level,
			Source:     "system.generic",
			Message:    line,
			NodeID:     nodeID,
			Type:       models.SourceGeneric,
			Filename:   info.Name,
			LineNumber: i + 1,
			FilePath:   info.Path,
		})
	}

	return events
}
