package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

var (
	timestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}`)
	levelRe     = regexp.MustCompile(`(?i)\b(DEBUG|INFO|WARN|WARNING|ERROR|FATAL)\b`)
	nodeRe      = regexp.MustCompile(`(?i)\b(vehicle|drone|ship|rsu|ca|qca|node|port|warehouse)\[?\d*\]?`)
	sourceRe    = regexp.MustCompile(`\[([\w.]+)\]`)
	positionRe  = regexp.MustCompile(`(?i)pos[ition]*[\s:=]+\(?(-?[\d.]+)[,\s]+(-?[\d.]+)\)?`)
	velocityRe  = regexp.MustCompile(`(?i)vel[ocity]*[\s:=]+\(?(-?[\d.]+)[,\s]+(-?[\d.]+)\)?`)
)

// Direction keywords in priority order. Direction verbs outrank cast types
// so "broadcast sent via UDP" classifies as a send.
var networkKeywords = []string{"received", "sent", "broadcast", "unicast", "multicast"}

// extractTimestamp pulls a "YYYY-MM-DD HH:MM:SS" timestamp out of a line.
// Returns the zero time when none is found.
func extractTimestamp(line string) time.Time {
	match := timestampRe.FindString(line)
	if match == "" {
		return time.Time{}
	}
	normalized := strings.Join(strings.Fields(match), " ")
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", normalized, time.Local)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// extractLevel returns the uppercased log level embedded in a line, or "".
func extractLevel(line string) string {
	return strings.ToUpper(levelRe.FindString(line))
}

// extractNodeID returns a node identifier mentioned in a message, or "".
func extractNodeID(message string) string {
	return nodeRe.FindString(message)
}

func extractPosition(line string) *models.PositionInfo {
	m := positionRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	x, errX := strconv.ParseFloat(m[1], 64)
	y, errY := strconv.ParseFloat(m[2], 64)
	if errX != nil || errY != nil {
		return nil
	}
	return &models.PositionInfo{X: x, Y: y}
}

func extractVelocity(line string) *models.VelocityInfo {
	m := velocityRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	x, errX := strconv.ParseFloat(m[1], 64)
	y, errY := strconv.ParseFloat(m[2], 64)
	if errX != nil || errY != nil {
		return nil
	}
	return &models.VelocityInfo{
		X:     x,
		Y:     y,
		Speed: fmt.Sprintf("%.2f", math.Hypot(x, y)),
	}
}

func extractNetwork(line string) *models.NetworkInfo {
	lower := strings.ToLower(line)
	for _, kw := range networkKeywords {
		if strings.Contains(lower, kw) {
			return &models.NetworkInfo{
				Type:     kw,
				Protocol: extractProtocol(line),
			}
		}
	}
	return nil
}

func extractProtocol(line string) string {
	switch {
	case strings.Contains(line, "TCP"):
		return "TCP"
	case strings.Contains(line, "UDP"):
		return "UDP"
	default:
		return "unknown"
	}
}

// extractSource infers a dotted component path from a line: an explicit
// [component] tag wins, then content heuristics, then the given default.
func extractSource(line, fallback string) string {
	if m := sourceRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	switch {
	case strings.Contains(line, "position") || strings.Contains(line, "velocity"):
		return "veins.mobility"
	case strings.Contains(line, "received") || strings.Contains(line, "sent"):
		return "veins.network"
	case strings.Contains(line, "beacon") || strings.Contains(line, "broadcast"):
		return "veins.application"
	}
	return fallback
}
