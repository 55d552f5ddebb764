package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
	"github.com/ZQisAmalou/v2x-log-server/internal/parser"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	veinsRoot := t.TempDir()
	roots := map[models.SourceType]string{
		models.SourceVeins:       veinsRoot,
		models.SourceCertificate: t.TempDir(),
		models.SourceQCA:         t.TempDir(),
		models.SourceConfig:      t.TempDir(),
	}
	return New(roots, parser.NewRegistry(), 10), veinsRoot
}

func TestIngest_RealEventsSortedNewestFirst(t *testing.T) {
	svc, veinsRoot := newTestService(t)

	content := "2024-03-15 10:00:00 INFO departing\n" +
		"2024-03-15 10:05:00 INFO arriving\n"
	require.NoError(t, os.WriteFile(filepath.Join(veinsRoot, "vehicle[0].log"), []byte(content), 0o644))

	events := svc.Ingest(context.Background(), models.SourceVeins)

	require.Len(t, events, 2)
	assert.Contains(t, events[0].Message, "arriving")
	assert.Contains(t, events[1].Message, "departing")
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.After(events[i-1].Timestamp))
	}
}

func TestIngest_EmptyStoresFallBackToSynthetic(t *testing.T) {
	svc, _ := newTestService(t)

	events := svc.Ingest(context.Background(), models.SourceAll)

	require.Len(t, events, 10)
	for _, event := range events {
		assert.True(t, strings.HasPrefix(event.ID, "synthetic_"))
	}
}

func TestIngest_UnknownTypeFallsBackToSynthetic(t *testing.T) {
	svc, veinsRoot := newTestService(t)
	require.NoError(t, os.WriteFile(filepath.Join(veinsRoot, "vehicle[0].log"), []byte("real line\n"), 0o644))

	events := svc.Ingest(context.Background(), models.SourceType("bogus"))

	require.Len(t, events, 10)
	assert.True(t, strings.HasPrefix(events[0].ID, "synthetic_"))
}

func TestIngest_AllMergesEveryStore(t *testing.T) {
	svc, veinsRoot := newTestService(t)
	require.NoError(t, os.WriteFile(filepath.Join(veinsRoot, "vehicle[0].log"),
		[]byte("2024-03-15 10:00:00 INFO beacon emitted\n"), 0o644))

	events := svc.Ingest(context.Background(), models.SourceAll)

	require.Len(t, events, 1)
	assert.Equal(t, models.SourceVeins, events[0].Type)
}

func TestIngest_VeinsMobilityScenario(t *testing.T) {
	svc, veinsRoot := newTestService(t)

	content := "2024-01-01 10:00:00 INFO position: (10.0, 20.0)\nbroadcast sent via UDP\n"
	require.NoError(t, os.WriteFile(filepath.Join(veinsRoot, "vehicle[0].log"), []byte(content), 0o644))

	events := svc.Ingest(context.Background(), models.SourceVeins)
	require.Len(t, events, 2)

	var position, network *models.LogEvent
	for i := range events {
		assert.Equal(t, "vehicle[0]", events[i].NodeID)
		if events[i].PositionInfo != nil {
			position = &events[i]
		}
		if events[i].NetworkInfo != nil {
			network = &events[i]
		}
	}

	require.NotNil(t, position)
	assert.Equal(t, 10.0, position.PositionInfo.X)
	assert.Equal(t, 20.0, position.PositionInfo.Y)

	require.NotNil(t, network)
	assert.Equal(t, "sent", network.NetworkInfo.Type)
	assert.Equal(t, "UDP", network.NetworkInfo.Protocol)
}

func TestIngestNode_FiltersAndLimits(t *testing.T) {
	svc, veinsRoot := newTestService(t)

	content := strings.Repeat("2024-03-15 10:00:00 INFO vehicle[7] cruising\n", 5) +
		"2024-03-15 10:00:00 INFO rsu[0] beacon\n"
	require.NoError(t, os.WriteFile(filepath.Join(veinsRoot, "mixed.log"), []byte(content), 0o644))

	events := svc.IngestNode(context.Background(), "vehicle[7]", 3)

	require.Len(t, events, 3)
	for _, event := range events {
		assert.Equal(t, "vehicle[7]", event.NodeID)
	}
}

func TestNew_DefaultsSyntheticCount(t *testing.T) {
	svc := New(nil, parser.NewRegistry(), 0)
	assert.Equal(t, 100, svc.syntheticCount)
}
