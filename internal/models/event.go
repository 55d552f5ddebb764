package models

import "time"

// SourceType identifies the logical artifact store an event came from.
type SourceType string

const (
	SourceAll         SourceType = "all"
	SourceVeins       SourceType = "veins"
	SourceCertificate SourceType = "certificate"
	SourceQCA         SourceType = "qca"
	SourceConfig      SourceType = "config"
	SourceGeneric     SourceType = "generic"
)

// Known returns true for source types with a registered root directory.
func (s SourceType) Known() bool {
	switch s {
	case SourceVeins, SourceCertificate, SourceQCA, SourceConfig:
		return true
	}
	return false
}

// LogEvent is the canonical normalized event. Immutable once produced;
// a changed file yields new events, never patched ones.
type LogEvent struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	Level      string     `json:"level"`
	Source     string     `json:"source"`
	Message    string     `json:"message"`
	NodeID     string     `json:"nodeId"`
	Type       SourceType `json:"type"`
	Filename   string     `json:"filename"`
	LineNumber int        `json:"lineNumber"`
	FilePath   string     `json:"filePath"`

	CertificateInfo *CertificateInfo `json:"certificateInfo,omitempty"`
	QCAInfo         *QCAInfo         `json:"qcaInfo,omitempty"`
	PositionInfo    *PositionInfo    `json:"positionInfo,omitempty"`
	VelocityInfo    *VelocityInfo    `json:"velocityInfo,omitempty"`
	NetworkInfo     *NetworkInfo     `json:"networkInfo,omitempty"`
	ConfigInfo      *ConfigInfo      `json:"configInfo,omitempty"`
}

// CertificateInfo describes a node's certificate material. Fields not read
// from an auxiliary info file carry fixed placeholder values.
type CertificateInfo struct {
	Subject        string    `json:"subject"`
	Issuer         string    `json:"issuer"`
	SerialNumber   string    `json:"serialNumber"`
	IssuedDate     time.Time `json:"issuedDate"`
	ValidFrom      time.Time `json:"validFrom"`
	ValidTo        time.Time `json:"validTo"`
	Fingerprint    string    `json:"fingerprint"`
	HasCertificate bool      `json:"hasCertificate"`
	HasPrivateKey  bool      `json:"hasPrivateKey"`
	HasCSR         bool      `json:"hasCSR"`
	KeySize        string    `json:"keySize"`
	CertFiles      []string  `json:"certFiles,omitempty"`
	KeyFiles       []string  `json:"keyFiles,omitempty"`
	CSRFiles       []string  `json:"csrFiles,omitempty"`
}

// QCAInfo carries descriptive quantum-key metadata. The entanglement,
// algorithm, state and error-rate fields are sampled placeholders, not
// measured physical quantities.
type QCAInfo struct {
	KeyType           string    `json:"keyType"`
	KeyFile           string    `json:"keyFile"`
	KeySize           string    `json:"keySize"`
	Entangled         bool      `json:"entangled"`
	Algorithm         string    `json:"algorithm"`
	QuantumState      string    `json:"quantumState"`
	ErrorRate         string    `json:"errorRate"`
	Fidelity          string    `json:"fidelity,omitempty"`
	KeyGenerationTime time.Time `json:"keyGenerationTime,omitempty"`
}

type PositionInfo struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VelocityInfo carries a 2D velocity vector; Speed is the Euclidean norm
// formatted with two decimals.
type VelocityInfo struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Speed string  `json:"speed"`
}

type NetworkInfo struct {
	Type     string `json:"type"`
	Protocol string `json:"protocol"`
}

// ConfigInfo describes a parsed configuration file. Only the fields relevant
// to the emitting event are populated.
type ConfigInfo struct {
	Type           string   `json:"type,omitempty"`
	Size           int64    `json:"size,omitempty"`
	LastModified   string   `json:"lastModified,omitempty"`
	Encoding       string   `json:"encoding,omitempty"`
	Importance     string   `json:"importance,omitempty"`
	Affects        []string `json:"affects,omitempty"`
	ParameterCount int      `json:"parameterCount,omitempty"`
	TotalLines     int      `json:"totalLines,omitempty"`
	Parsed         bool     `json:"parsed,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// FileInfo is the metadata handed to every parser alongside raw content.
type FileInfo struct {
	Path    string
	Name    string
	Type    SourceType
	Size    int64
	ModTime time.Time
}
