package nodes

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeQCAStore(t *testing.T, nodeID string, keyData []byte, sigLog, opsLog string) string {
	t.Helper()
	root := t.TempDir()
	for _, sub := range []string{"keys", "signatures", "logs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, sub), 0o755))
	}
	if keyData != nil {
		path := filepath.Join(root, "keys", "node_"+nodeID+"_key.dat")
		require.NoError(t, os.WriteFile(path, keyData, 0o644))
	}
	if sigLog != "" {
		path := filepath.Join(root, "signatures", "node_"+nodeID+"_signatures.log")
		require.NoError(t, os.WriteFile(path, []byte(sigLog), 0o644))
	}
	if opsLog != "" {
		path := filepath.Join(root, "logs", "qca_operations.log")
		require.NoError(t, os.WriteFile(path, []byte(opsLog), 0o644))
	}
	return root
}

func TestQuantumInfo_EmptyStore(t *testing.T) {
	a := New("", t.TempDir(), "", nil, 0)
	info := a.QuantumInfo("vehicle_1")

	require.NotNil(t, info)
	assert.False(t, info.HasQuantumKey)
	assert.False(t, info.HasSignatures)
	assert.NotNil(t, info.Signatures)
	assert.Empty(t, info.Signatures)
	assert.NotNil(t, info.OperationsLog)
	assert.Nil(t, info.KeyInfo)
}

func TestQuantumInfo_KeyFile(t *testing.T) {
	keyData := bytes.Repeat([]byte{'A'}, 2000)
	root := writeQCAStore(t, "vehicle_1", keyData, "", "")

	a := New("", root, "", nil, 0)
	info := a.QuantumInfo("vehicle_1")

	require.True(t, info.HasQuantumKey)
	require.NotNil(t, info.KeyInfo)
	assert.Equal(t, "node_vehicle_1_key.dat", info.KeyInfo.FileName)
	assert.Equal(t, 2000, info.KeyInfo.KeyLength)
	assert.Equal(t, "high", info.KeyInfo.Quality)
	assert.Equal(t, "0.000", info.KeyInfo.Entropy)
	assert.Equal(t, "vehicle_1", info.KeyInfo.NodeID)
	require.NotNil(t, info.KeyInfo.QuantumProperties)
}

func TestParseQuantumKeyFile_Quality(t *testing.T) {
	dir := t.TempDir()

	write := func(n int) string {
		path := filepath.Join(dir, "key.dat")
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, n), 0o644))
		return path
	}

	assert.Equal(t, "low", parseQuantumKeyFile(write(100), "n").Quality)
	assert.Equal(t, "medium", parseQuantumKeyFile(write(600), "n").Quality)
	assert.Equal(t, "high", parseQuantumKeyFile(write(2000), "n").Quality)
	assert.Nil(t, parseQuantumKeyFile(filepath.Join(dir, "absent.dat"), "n"))
}

const sampleSignatureLog = `QCA signature log
-----NEW SIGNATURE RECORD-----
Timestamp: 2024-01-01 10:00:00
Node ID: vehicle_1
Signed Data (hex): 0a0b0c
Signature: deadbeef
-----NEW SIGNATURE RECORD-----
Timestamp: 2024-01-02 10:00:00
Signature: cafef00d
-----NEW SIGNATURE RECORD-----
Node ID: vehicle_1
Signed Data (hex): ffff
`

func TestParseSignatureLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sig.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleSignatureLog), 0o644))

	records := parseSignatureLog(path)

	// The block without a signature line is dropped.
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "2024-01-02 10:00:00", records[0].Timestamp)
	assert.Equal(t, "cafef00d", records[0].Signature)

	second := records[1]
	assert.Equal(t, "vehicle_1", second.NodeID)
	assert.Equal(t, "0a0b0c", second.SignedData)
	assert.Equal(t, "QCA-SIG", second.Algorithm)
	assert.Equal(t, "quantum", second.KeyType)
	assert.Equal(t, "verified", second.VerificationStatus)
	assert.True(t, strings.HasPrefix(second.ID, "sig_20240101100000_"))
}

func TestQuantumInfo_Signatures(t *testing.T) {
	root := writeQCAStore(t, "vehicle_1", nil, sampleSignatureLog, "")

	a := New("", root, "", nil, 0)
	info := a.QuantumInfo("vehicle_1")

	assert.True(t, info.HasSignatures)
	assert.Equal(t, 2, info.SignatureCount)
	require.NotNil(t, info.LastSignature)
	assert.Equal(t, "2024-01-02 10:00:00", info.LastSignature.Timestamp)
}

func TestParseOperationsLog(t *testing.T) {
	opsLog := "2024-01-01 10:00:00 quantum key generated for vehicle_1\n" +
		"2024-01-01 11:00:00 entangle pair refreshed (global)\n" +
		"2024-01-01 12:00:00 encrypt payload for vehicle_2\n"
	path := filepath.Join(t.TempDir(), "ops.log")
	require.NoError(t, os.WriteFile(path, []byte(opsLog), 0o644))

	ops := parseOperationsLog(path, "vehicle_1")

	// Lines for this node plus global ones, newest first.
	require.Len(t, ops, 2)
	assert.Equal(t, "entanglement", ops[0].OperationType)
	assert.Equal(t, "key_management", ops[1].OperationType)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.Local), ops[0].Timestamp)
}

func TestParseOperationsLog_Cap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("2024-01-01 10:00:00 key refresh for vehicle_1\n")
	}
	path := filepath.Join(t.TempDir(), "ops.log")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	assert.Len(t, parseOperationsLog(path, "vehicle_1"), operationLimit)
}

func TestClassifyOperation(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"quantum key generated", "key_management"},
		{"signature created", "signature"},
		{"encrypt payload", "encryption"},
		{"decrypt payload", "encryption"},
		{"entangled pair refreshed", "entanglement"},
		{"routine check", "general"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyOperation(tt.line), tt.line)
	}
}

func TestParseFlexibleTime(t *testing.T) {
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		parseFlexibleTime("2024-01-01T10:00:00Z").UTC())
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local),
		parseFlexibleTime("2024-01-01 10:00:00"))
	assert.Equal(t, time.Unix(1700000000, 0), parseFlexibleTime("1700000000"))
	assert.True(t, parseFlexibleTime("not a time").IsZero())
}
