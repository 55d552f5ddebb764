package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

var veinsFilenameRe = regexp.MustCompile(`(vehicle|drone|ship|rsu|ca)\[(\d+)\]`)

// VeinsParser handles per-entity simulation logs. The owning node comes from
// the filename pattern "<kind>[<index>]", with a line-embedded identity
// taking precedence; mobility and network details are extracted per line.
type VeinsParser struct{}

func (p *VeinsParser) Parse(content []byte, info models.FileInfo) []models.LogEvent {
	baseNodeID := "system"
	if m := veinsFilenameRe.FindStringSubmatch(info.Name); m != nil {
		baseNodeID = fmt.Sprintf("%s[%s]", m[1], m[2])
	}

	var events []models.LogEvent
	for i, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		nodeID := extractNodeID(line)
		if nodeID == "" {
			nodeID = baseNodeID
		}

		ts := extractTimestamp(line)
		if ts.IsZero() {
			ts = info.ModTime.Add(time.Duration(i) * 100 * time.Millisecond)
		}

		level := extractLevel(line)
		if level == "" {
			level = "INFO"
		}

		events = append(events, models.LogEvent{
			ID:           NewEventID(info.Name+"_"+line, i),
			Timestamp:    ts,
			Level:        level,
			Source:       extractSource(line, "veins.simulation"),
			Message:      line,
			NodeID:       nodeID,
			Type:         models.SourceVeins,
			Filename:     info.Name,
			LineNumber:   i + 1,
			FilePath:     info.Path,
			PositionInfo: extractPosition(line),
			VelocityInfo: extractVelocity(line),
			NetworkInfo:  extractNetwork(line),
		})
	}

	return events
}
