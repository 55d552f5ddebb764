// Package nodes assembles per-entity profiles from the disjoint artifact
// stores: certificates, communications transcripts, quantum-key material and
// the merged event stream.
package nodes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZQisAmalou/v2x-log-server/internal/ingest"
	"github.com/ZQisAmalou/v2x-log-server/internal/metrics"
	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

// ErrNodeNotFound is returned when a caller asks for a node whose
// certificate-store directory does not exist. It is the only error the
// engine propagates; everything else degrades to empty sub-fields.
var ErrNodeNotFound = errors.New("node not found")

// Aggregator builds read-only NodeProfile snapshots. Profiles own copies of
// everything they aggregate and never reference shared mutable state.
type Aggregator struct {
	certRoot string
	qcaRoot  string
	commRoot string
	ingest   *ingest.Service
	logLimit int
}

// New constructs an Aggregator over the three artifact roots.
func New(certRoot, qcaRoot, commRoot string, ing *ingest.Service, logLimit int) *Aggregator {
	if logLimit <= 0 {
		logLimit = 50
	}
	return &Aggregator{
		certRoot: certRoot,
		qcaRoot:  qcaRoot,
		commRoot: commRoot,
		ingest:   ing,
		logLimit: logLimit,
	}
}

// Details returns the fully merged profile for one node. The node's
// certificate-store directory must exist; everything else is optional and
// absence yields empty sub-fields.
func (a *Aggregator) Details(ctx context.Context, nodeID string) (*models.NodeProfile, error) {
	nodeDir := filepath.Join(a.certRoot, nodeID)
	info, err := os.Stat(nodeDir)
	if err != nil || !info.IsDir() {
		metrics.NodeProfileRequests.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	profile := a.baseProfile(nodeDir, nodeID)
	profile.Logs = a.ingest.IngestNode(ctx, nodeID, a.logLimit)
	profile.Communications = a.Communications(nodeID)
	profile.QCA = a.QuantumInfo(nodeID)

	metrics.NodeProfileRequests.WithLabelValues("ok").Inc()
	return profile, nil
}

// List enumerates every node directory under the certificate-store root.
// A missing root yields an empty list, not an error.
func (a *Aggregator) List(ctx context.Context) []models.NodeProfile {
	entries, err := os.ReadDir(a.certRoot)
	if err != nil {
		slog.Warn("certificate store root unavailable", "dir", a.certRoot, "error", err)
		return nil
	}

	// One ingestion pass shared across all nodes.
	all := a.ingest.Ingest(ctx, models.SourceAll)

	var profiles []models.NodeProfile
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		nodeID := entry.Name()
		profile := a.baseProfile(filepath.Join(a.certRoot, nodeID), nodeID)
		for _, event := range all {
			if event.NodeID != nodeID {
				continue
			}
			profile.Logs = append(profile.Logs, event)
			if len(profile.Logs) >= a.logLimit {
				break
			}
		}
		profiles = append(profiles, *profile)
	}
	return profiles
}

// baseProfile reads the certificate-store artifacts for one node directory.
// Every read is best-effort; a missing file leaves its field empty.
func (a *Aggregator) baseProfile(nodeDir, nodeID string) *models.NodeProfile {
	profile := &models.NodeProfile{
		ID:           nodeID,
		Name:         nodeID,
		Type:         NodeType(nodeID),
		Status:       "active",
		LastActivity: time.Now(),
		Logs:         []models.LogEvent{},
	}

	if raw, err := os.ReadFile(filepath.Join(nodeDir, "ca_info.txt")); err == nil {
		profile.Certificate = parseCAInfo(string(raw))
	}

	profile.PrivateKey = firstFileContent(nodeDir, []string{"private_key.pem", "private.key", "key.pem"})
	profile.CertificateContent = firstFileContent(nodeDir, []string{"certificate.pem", "cert.pem", "public_key.pem"})

	if entries, err := os.ReadDir(filepath.Join(nodeDir, "requests")); err == nil {
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".csr") {
				profile.CertificateRequest = firstFileContent(filepath.Join(nodeDir, "requests"), []string{e.Name()})
				break
			}
		}
	}

	return profile
}

// parseCAInfo extracts the ca_info.txt summary fields. First match per
// prefix wins.
func parseCAInfo(content string) *models.CertificateSummary {
	summary := &models.CertificateSummary{}
	for _, line := range strings.Split(content, "\n") {
		switch {
		case summary.Subject == "" && strings.Contains(line, "Certificate Subject:"):
			summary.Subject = valueAfter(line, "Certificate Subject:")
		case summary.Issuer == "" && strings.Contains(line, "Certificate Issuer:"):
			summary.Issuer = valueAfter(line, "Certificate Issuer:")
		case summary.SerialNumber == "" && strings.Contains(line, "Certificate Serial Number:"):
			summary.SerialNumber = valueAfter(line, "Certificate Serial Number:")
		case summary.IssuedDate == 0 && strings.Contains(line, "Issued Date:"):
			fmt.Sscanf(valueAfter(line, "Issued Date:"), "%d", &summary.IssuedDate)
		}
	}
	return summary
}

func valueAfter(line, prefix string) string {
	return strings.TrimSpace(strings.SplitN(line, prefix, 2)[1])
}

// firstFileContent returns the content of the first existing candidate file.
func firstFileContent(dir string, names []string) string {
	for _, name := range names {
		if raw, err := os.ReadFile(filepath.Join(dir, name)); err == nil {
			return string(raw)
		}
	}
	return ""
}

// NodeType infers a node's kind from its identifier.
func NodeType(nodeID string) string {
	for _, kind := range []string{"vehicle", "drone", "ship", "rsu", "port", "warehouse", "qca", "ca"} {
		if strings.Contains(nodeID, kind) {
			return kind
		}
	}
	return "unknown"
}
