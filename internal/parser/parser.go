// Package parser converts raw artifact files into normalized log events.
//
// Each source type has its own parser; files from unregistered types fall
// back to the generic line parser. Parsing never fails past its own
// boundary: malformed input yields an empty slice and a warning log.
package parser

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

// Parser turns one file's raw content plus metadata into zero or more events.
type Parser interface {
	Parse(content []byte, info models.FileInfo) []models.LogEvent
}

// Registry maps source types to parsers, defaulting to the generic parser.
type Registry struct {
	parsers  map[models.SourceType]Parser
	fallback Parser
}

// NewRegistry constructs a registry with all built-in parsers registered.
func NewRegistry() *Registry {
	return &Registry{
		parsers: map[models.SourceType]Parser{
			models.SourceVeins:       &VeinsParser{},
			models.SourceCertificate: &CertificateParser{},
			models.SourceQCA:         &QCAParser{},
			models.SourceConfig:      &ConfigParser{},
		},
		fallback: &GenericParser{},
	}
}

// Lookup returns the parser for a source type, or the generic fallback.
func (r *Registry) Lookup(t models.SourceType) Parser {
	if p, ok := r.parsers[t]; ok {
		return p
	}
	return r.fallback
}

// ParseFile reads and parses a single file. Any filesystem error is a soft
// miss: the file may have been deleted by a concurrent writer between a
// directory listing and this read, so the result is empty, never an error.
func (r *Registry) ParseFile(path string, t models.SourceType) []models.LogEvent {
	stat, err := os.Stat(path)
	if err != nil {
		slog.Warn("failed to stat file", "file", path, "error", err)
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read file", "file", path, "error", err)
		return nil
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil
	}

	info := models.FileInfo{
		Path:    path,
		Name:    filepath.Base(path),
		Type:    t,
		Size:    stat.Size(),
		ModTime: stat.ModTime(),
	}
	return r.Lookup(t).Parse(content, info)
}

// NewEventID derives an event identifier from source content and position.
// IDs are stable within one ingestion pass but include generation time, so
// they are not comparable across passes.
func NewEventID(content string, line int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d_%d", content, line, time.Now().UnixNano())))
	return "log_" + hex.EncodeToString(sum[:])[:8]
}
