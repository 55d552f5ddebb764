package models

import "time"

// NodeProfile is a read-only snapshot of one simulated entity, assembled per
// request from the certificate store, the event stream, the communications
// transcripts and the quantum-key store.
type NodeProfile struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Type               string              `json:"type"`
	Status             string              `json:"status"`
	LastActivity       time.Time           `json:"lastActivity"`
	Certificate        *CertificateSummary `json:"certificate"`
	PrivateKey         string              `json:"privateKey,omitempty"`
	CertificateContent string              `json:"certificateContent,omitempty"`
	CertificateRequest string              `json:"certificateRequest,omitempty"`
	Logs               []LogEvent          `json:"logs"`
	Communications     *Communications     `json:"communications,omitempty"`
	QCA                *QuantumInfo        `json:"qca,omitempty"`
}

// CertificateSummary holds the fields read from a node's ca_info.txt.
type CertificateSummary struct {
	Subject      string `json:"subject,omitempty"`
	Issuer       string `json:"issuer,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
	IssuedDate   int64  `json:"issuedDate,omitempty"`
}

// Communications summarizes a node's message transcript. A node without a
// transcript file gets a well-formed empty summary, not an error.
type Communications struct {
	HasMessages    bool           `json:"hasMessages"`
	TotalMessages  int            `json:"totalMessages"`
	RecentMessages []Message      `json:"recentMessages"`
	MessageTypes   map[string]int `json:"messageTypes"`
	LastActivity   *time.Time     `json:"lastActivity"`
	FilePath       string         `json:"filePath,omitempty"`
}

// Message is one unit of a communications transcript.
type Message struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	Sender     string    `json:"sender,omitempty"`
	Receiver   string    `json:"receiver,omitempty"`
	Encryption string    `json:"encryption,omitempty"`
	Signature  string    `json:"signature,omitempty"`
	Raw        string    `json:"raw"`
}

// QuantumInfo aggregates a node's quantum-key artifacts.
type QuantumInfo struct {
	HasQuantumKey  bool              `json:"hasQuantumKey"`
	HasSignatures  bool              `json:"hasSignatures"`
	Signatures     []SignatureRecord `json:"signatures"`
	OperationsLog  []Operation       `json:"operationsLog"`
	KeyInfo        *QuantumKeyInfo   `json:"keyInfo"`
	SignatureCount int               `json:"signatureCount"`
	LastSignature  *SignatureRecord  `json:"lastSignature"`
	LastOperation  *Operation        `json:"lastOperation"`
}

// QuantumKeyInfo describes a key-material file. Entropy is Shannon entropy
// in bits over the byte-value distribution, formatted with three decimals.
// QuantumProperties are sampled descriptive metadata.
type QuantumKeyInfo struct {
	FileName          string             `json:"fileName"`
	FileSize          int64              `json:"fileSize"`
	ModifiedTime      time.Time          `json:"modifiedTime"`
	KeyType           string             `json:"keyType"`
	Algorithm         string             `json:"algorithm"`
	KeyLength         int                `json:"keyLength"`
	Entropy           string             `json:"entropy"`
	Status            string             `json:"status"`
	NodeID            string             `json:"nodeId"`
	Quality           string             `json:"quality"`
	QuantumProperties *QuantumProperties `json:"quantumProperties,omitempty"`
}

type QuantumProperties struct {
	Entanglement  bool   `json:"entanglement"`
	Superposition bool   `json:"superposition"`
	CoherenceTime int    `json:"coherenceTime"`
	Fidelity      string `json:"fidelity"`
	ErrorRate     string `json:"errorRate"`
}

// SignatureRecord is one retained block of a node's signature log. The raw
// timestamp string is kept verbatim; ParsedTime backs the descending sort.
type SignatureRecord struct {
	ID                 string    `json:"id"`
	Timestamp          string    `json:"timestamp"`
	NodeID             string    `json:"nodeId,omitempty"`
	SignedData         string    `json:"signedData,omitempty"`
	Signature          string    `json:"signature"`
	Algorithm          string    `json:"algorithm"`
	KeyType            string    `json:"keyType"`
	VerificationStatus string    `json:"verificationStatus"`
	ParsedTime         time.Time `json:"-"`
}

// Operation is one line of the shared QCA operations log attributed to a node.
type Operation struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	NodeID        string    `json:"nodeId"`
	Raw           string    `json:"raw"`
	OperationType string    `json:"operationType"`
}
