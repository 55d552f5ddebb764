package nodes

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

const recentMessageLimit = 50

var bracketIndexRe = regexp.MustCompile(`\[(\d+)\]`)

// typeDirs maps a node kind to its plural transcript directory.
var typeDirs = map[string]string{
	"vehicle":   "vehicles",
	"drone":     "drones",
	"ship":      "ships",
	"rsu":       "rsus",
	"port":      "ports",
	"warehouse": "warehouses",
	"ca":        "cas",
}

// ConvertNodeID maps a bracketed node id to the on-disk filename convention:
// "vehicle[6]" becomes "vehicle_6".
func ConvertNodeID(nodeID string) string {
	return bracketIndexRe.ReplaceAllString(nodeID, "_$1")
}

// Communications summarizes a node's message transcript. An absent
// transcript yields a well-formed empty summary, never an error.
func (a *Aggregator) Communications(nodeID string) *models.Communications {
	summary := &models.Communications{
		RecentMessages: []models.Message{},
		MessageTypes:   map[string]int{},
	}

	typeDir, ok := typeDirs[NodeType(nodeID)]
	if !ok {
		typeDir = "vehicles"
	}

	path := filepath.Join(a.commRoot, typeDir, ConvertNodeID(nodeID)+"__messages.txt")
	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("no communications transcript", "node_id", nodeID, "file", path)
		return summary
	}

	messages := ParseMessages(string(raw))
	if len(messages) == 0 {
		return summary
	}

	for _, msg := range messages {
		summary.MessageTypes[msg.Type]++
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.After(messages[j].Timestamp)
	})

	recent := messages
	if len(recent) > recentMessageLimit {
		recent = recent[:recentMessageLimit]
	}

	last := messages[0].Timestamp
	summary.HasMessages = true
	summary.TotalMessages = len(messages)
	summary.RecentMessages = recent
	summary.LastActivity = &last
	summary.FilePath = path
	return summary
}

// AllCommunications parses every transcript under the communications root,
// grouped by plural type directory and node filename stem.
func (a *Aggregator) AllCommunications() map[string]map[string][]models.Message {
	result := make(map[string]map[string][]models.Message)

	for _, typeDir := range typeDirs {
		dir := filepath.Join(a.commRoot, typeDir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		byNode := make(map[string][]models.Message)
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, "__messages.txt") {
				continue
			}
			raw, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				slog.Warn("failed to read transcript", "file", name, "error", err)
				continue
			}
			byNode[strings.TrimSuffix(name, "__messages.txt")] = ParseMessages(string(raw))
		}
		if len(byNode) > 0 {
			result[typeDir] = byNode
		}
	}

	return result
}

// Transcript reads one node's transcript by plural type directory and
// filename stem (already underscore-converted). Returns the parsed messages
// and the file's last-modified time; a missing file is an os.ErrNotExist.
func (a *Aggregator) Transcript(typeDir, nodeStem string) ([]models.Message, time.Time, error) {
	path := filepath.Join(a.commRoot, typeDir, nodeStem+"__messages.txt")
	stat, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	return ParseMessages(string(raw)), stat.ModTime(), nil
}

// ParseMessages splits a transcript into records. Records are delimited by
// "Timestamp:" lines; separator and banner lines are skipped. A record with
// an unparsable timestamp is still emitted best-effort.
func ParseMessages(content string) []models.Message {
	var messages []models.Message
	var current *rawMessage

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "===") || strings.HasPrefix(line, "---") {
			continue
		}

		if strings.HasPrefix(line, "Timestamp:") {
			if current != nil {
				messages = append(messages, current.toMessage())
			}
			current = &rawMessage{
				timestamp: strings.TrimSpace(strings.TrimPrefix(line, "Timestamp:")),
				raw:       line,
			}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Sender:"):
			current.sender = strings.TrimSpace(strings.TrimPrefix(line, "Sender:"))
		case strings.HasPrefix(line, "Receiver:"):
			current.receiver = strings.TrimSpace(strings.TrimPrefix(line, "Receiver:"))
		case strings.HasPrefix(line, "Encryption:"):
			current.encryption = strings.TrimSpace(strings.TrimPrefix(line, "Encryption:"))
		case strings.HasPrefix(line, "Plaintext:"):
			current.plaintext = strings.TrimSpace(strings.TrimPrefix(line, "Plaintext:"))
		case strings.HasPrefix(line, "Signature:"):
			current.signature = strings.TrimSpace(strings.TrimPrefix(line, "Signature:"))
		}
		current.raw += "\n" + line
	}

	if current != nil {
		messages = append(messages, current.toMessage())
	}
	return messages
}

type rawMessage struct {
	timestamp  string
	sender     string
	receiver   string
	encryption string
	plaintext  string
	signature  string
	raw        string
}

func (r *rawMessage) toMessage() models.Message {
	var ts time.Time
	if secs, err := strconv.ParseInt(r.timestamp, 10, 64); err == nil {
		ts = time.Unix(secs, 0)
	}

	msgType := r.encryption
	if msgType == "" {
		msgType = "unknown"
	}

	content := r.plaintext
	if content == "" {
		content = r.sender
	}
	if content == "" {
		content = "Communication message"
	}

	return models.Message{
		ID:         fmt.Sprintf("msg_%s_%s", r.timestamp, uuid.NewString()[:8]),
		Timestamp:  ts,
		Type:       msgType,
		Content:    content,
		Sender:     r.sender,
		Receiver:   r.receiver,
		Encryption: r.encryption,
		Signature:  r.signature,
		Raw:        r.raw,
	}
}
