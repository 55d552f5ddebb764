package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

func TestVeinsParser_NodeFromFilename(t *testing.T) {
	info := models.FileInfo{Name: "vehicle[6].log", ModTime: time.Now()}

	p := &VeinsParser{}
	events := p.Parse([]byte("moving along the route\n"), info)

	require.Len(t, events, 1)
	assert.Equal(t, "vehicle[6]", events[0].NodeID)
	assert.Equal(t, models.SourceVeins, events[0].Type)
	assert.Equal(t, "INFO", events[0].Level)
}

func TestVeinsParser_LineNodeOverridesFilename(t *testing.T) {
	info := models.FileInfo{Name: "vehicle[6].log", ModTime: time.Now()}

	p := &VeinsParser{}
	events := p.Parse([]byte("collision warning from rsu[1]\n"), info)

	require.Len(t, events, 1)
	assert.Equal(t, "rsu[1]", events[0].NodeID)
}

func TestVeinsParser_MobilityAndNetworkPayloads(t *testing.T) {
	info := models.FileInfo{Name: "drone[2].log", ModTime: time.Now()}

	p := &VeinsParser{}
	events := p.Parse([]byte("2024-03-15 10:30:00 INFO position: (10, 20) vel: (3, 4) broadcast sent via UDP\n"), info)

	require.Len(t, events, 1)
	event := events[0]

	require.NotNil(t, event.PositionInfo)
	assert.Equal(t, 10.0, event.PositionInfo.X)
	assert.Equal(t, 20.0, event.PositionInfo.Y)

	require.NotNil(t, event.VelocityInfo)
	assert.Equal(t, "5.00", event.VelocityInfo.Speed)

	require.NotNil(t, event.NetworkInfo)
	assert.Equal(t, "sent", event.NetworkInfo.Type)
	assert.Equal(t, "UDP", event.NetworkInfo.Protocol)
}

func TestVeinsParser_FallbackTimestampsKeepFileOrder(t *testing.T) {
	mod := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	info := models.FileInfo{Name: "ship[0].log", ModTime: mod}

	p := &VeinsParser{}
	events := p.Parse([]byte("leaving harbor\ncruising\n"), info)

	require.Len(t, events, 2)
	assert.Equal(t, mod, events[0].Timestamp)
	assert.Equal(t, mod.Add(100*time.Millisecond), events[1].Timestamp)
}

func TestVeinsParser_UnrecognizedFilename(t *testing.T) {
	info := models.FileInfo{Name: "plain.log", ModTime: time.Now()}

	p := &VeinsParser{}
	events := p.Parse([]byte("startup complete\n"), info)

	require.Len(t, events, 1)
	assert.Equal(t, "system", events[0].NodeID)
}
