package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()

	assert.IsType(t, &VeinsParser{}, r.Lookup(models.SourceVeins))
	assert.IsType(t, &CertificateParser{}, r.Lookup(models.SourceCertificate))
	assert.IsType(t, &QCAParser{}, r.Lookup(models.SourceQCA))
	assert.IsType(t, &ConfigParser{}, r.Lookup(models.SourceConfig))

	// Anything unregistered falls back to the generic line parser.
	assert.IsType(t, &GenericParser{}, r.Lookup(models.SourceType("mystery")))
}

func TestRegistry_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.log")
	require.NoError(t, os.WriteFile(path, []byte("2024-03-15 10:30:00 INFO started\n"), 0o644))

	r := NewRegistry()
	events := r.ParseFile(path, models.SourceType("mystery"))

	require.Len(t, events, 1)
	assert.Equal(t, "system.log", events[0].Filename)
	assert.Equal(t, path, events[0].FilePath)
}

func TestRegistry_ParseFile_MissingFile(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.ParseFile(filepath.Join(t.TempDir(), "gone.log"), models.SourceVeins))
}

func TestRegistry_ParseFile_BlankContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.log")
	require.NoError(t, os.WriteFile(path, []byte("   \n\t\n"), 0o644))

	r := NewRegistry()
	assert.Empty(t, r.ParseFile(path, models.SourceVeins))
}

func TestRegistry_ParseFile_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vehicle[1].log")
	content := "2024-03-15 10:00:00 INFO position: (1, 2)\nbroadcast sent via UDP\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := NewRegistry()
	first := r.ParseFile(path, models.SourceVeins)
	second := r.ParseFile(path, models.SourceVeins)

	// Ids differ across passes; the semantic content does not.
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Timestamp, second[i].Timestamp)
		assert.Equal(t, first[i].Message, second[i].Message)
		assert.Equal(t, first[i].NodeID, second[i].NodeID)
		assert.Equal(t, first[i].PositionInfo, second[i].PositionInfo)
		assert.Equal(t, first[i].NetworkInfo, second[i].NetworkInfo)
	}
}

func TestNewEventID(t *testing.T) {
	id := NewEventID("some line", 3)
	assert.True(t, strings.HasPrefix(id, "log_"))
	assert.Len(t, id, len("log_")+8)
}
