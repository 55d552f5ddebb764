package nodes

import (
	"fmt"
	"log/slog"
	"math/rand"
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

const (
	signatureDelimiter = "-----NEW SIGNATURE RECORD-----"
	operationLimit     = 20
)

var (
	opTimestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}`)
	nonDigitRe    = regexp.MustCompile(`[^\d]`)
)

// QuantumInfo aggregates a node's quantum-key file, signature log and
// operations history. Absence of any artifact yields empty sub-fields,
// never a failure.
func (a *Aggregator) QuantumInfo(nodeID string) *models.QuantumInfo {
	info := &models.QuantumInfo{
		Signatures:    []models.SignatureRecord{},
		OperationsLog: []models.Operation{},
	}

	keyPath := filepath.Join(a.qcaRoot, "keys", fmt.Sprintf("node_%s_key.dat", nodeID))
	if keyInfo := parseQuantumKeyFile(keyPath, nodeID); keyInfo != nil {
		info.HasQuantumKey = true
		info.KeyInfo = keyInfo
	}

	sigPath := filepath.Join(a.qcaRoot, "signatures", fmt.Sprintf("node_%s_signatures.log", nodeID))
	if sigs := parseSignatureLog(sigPath); len(sigs) > 0 {
		info.HasSignatures = true
		info.Signatures = sigs
		info.SignatureCount = len(sigs)
		info.LastSignature = &sigs[0]
	}

	opsPath := filepath.Join(a.qcaRoot, "logs", "qca_operations.log")
	if ops := parseOperationsLog(opsPath, nodeID); len(ops) > 0 {
		info.OperationsLog = ops
		info.LastOperation = &ops[0]
	}

	return info
}

// parseQuantumKeyFile describes a key-material file: provenance, length,
// Shannon entropy, and sampled quantum characteristics. Returns nil when the
// file is unreadable.
func parseQuantumKeyFile(path, nodeID string) *models.QuantumKeyInfo {
	stat, err := os.Stat(path)
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read quantum key file", "file", path, "error", err)
		return nil
	}

	quality := "low"
	switch {
	case len(data) > 1024:
		quality = "high"
	case len(data) > 512:
		quality = "medium"
	}

	return &models.QuantumKeyInfo{
		FileName:     filepath.Base(path),
		FileSize:     stat.Size(),
		ModifiedTime: stat.ModTime(),
		KeyType:      "quantum",
		Algorithm:    "BB84",
		KeyLength:    len(data),
		Entropy:      Entropy(data),
		Status:       "active",
		NodeID:       nodeID,
		Quality:      quality,
		// Sampled descriptive metadata, not measured quantities.
		QuantumProperties: &models.QuantumProperties{
			Entanglement:  rand.Float64() > 0.3,
			Superposition: rand.Float64() > 0.4,
			CoherenceTime: rand.Intn(1000) + 100,
			Fidelity:      fmt.Sprintf("%.3f", 0.8+rand.Float64()*0.2),
			ErrorRate:     fmt.Sprintf("%.4f", rand.Float64()*0.05),
		},
	}
}

// parseSignatureLog splits the log on the record delimiter and keeps blocks
// carrying both a timestamp and a signature, sorted newest first. Malformed
// blocks are dropped silently.
func parseSignatureLog(path string) []models.SignatureRecord {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	blocks := strings.Split(string(raw), signatureDelimiter)
	if len(blocks) < 2 {
		return nil
	}

	var records []models.SignatureRecord
	for _, block := range blocks[1:] {
		record := models.SignatureRecord{}
		for _, raw := range strings.Split(block, "\n") {
			line := strings.TrimSpace(raw)
			switch {
			case strings.HasPrefix(line, "Timestamp:"):
				record.Timestamp = strings.TrimSpace(strings.TrimPrefix(line, "Timestamp:"))
			case strings.HasPrefix(line, "Node ID:"):
				record.NodeID = strings.TrimSpace(strings.TrimPrefix(line, "Node ID:"))
			case strings.HasPrefix(line, "Signed Data"):
				if _, after, ok := strings.Cut(line, ":"); ok {
					record.SignedData = strings.TrimSpace(after)
				}
			case strings.HasPrefix(line, "Signature:"):
				record.Signature = strings.TrimSpace(strings.TrimPrefix(line, "Signature:"))
			}
		}

		if record.Timestamp == "" || record.Signature == "" {
			continue
		}

		record.ID = fmt.Sprintf("sig_%s_%s", nonDigitRe.ReplaceAllString(record.Timestamp, ""), uuid.NewString()[:6])
		record.Algorithm = "QCA-SIG"
		record.KeyType = "quantum"
		record.VerificationStatus = "verified"
		record.ParsedTime = parseFlexibleTime(record.Timestamp)
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ParsedTime.After(records[j].ParsedTime)
	})
	return records
}

// parseOperationsLog keeps lines mentioning this node or the literal token
// "global", classified by operation kind, newest first, capped.
func parseOperationsLog(path, nodeID string) []models.Operation {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var ops []models.Operation
	for _, rawLine := range strings.Split(string(raw), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if !strings.Contains(line, nodeID) && !strings.Contains(line, "global") {
			continue
		}

		ts := time.Now()
		if m := opTimestampRe.FindString(line); m != "" {
			if parsed := parseFlexibleTime(m); !parsed.IsZero() {
				ts = parsed
			}
		}

		ops = append(ops, models.Operation{
			ID:            "op_" + uuid.NewString()[:12],
			Timestamp:     ts,
			Type:          "operation",
			Message:       line,
			NodeID:        nodeID,
			Raw:           line,
			OperationType: classifyOperation(line),
		})
	}

	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Timestamp.After(ops[j].Timestamp)
	})
	if len(ops) > operationLimit {
		ops = ops[:operationLimit]
	}
	return ops
}

func classifyOperation(line string) string {
	switch {
	case strings.Contains(line, "key"):
		return "key_management"
	case strings.Contains(line, "signature") || strings.Contains(line, "sign"):
		return "signature"
	case strings.Contains(line, "encrypt") || strings.Contains(line, "decrypt"):
		return "encryption"
	case strings.Contains(line, "entangle"):
		return "entanglement"
	default:
		return "general"
	}
}

// parseFlexibleTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" or unix seconds.
func parseFlexibleTime(value string) time.Time {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	normalized := strings.Join(strings.Fields(value), " ")
	if ts, err := time.ParseInLocation("2006-01-02 15:04:05", normalized, time.Local); err == nil {
		return ts
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0)
	}
	return time.Time{}
}
