package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

var nodeDirRe = regexp.MustCompile(`nodes/([^/]+)/`)

var (
	certFileNames = []string{"cert.pem", "certificate.pem", "public_key.pem"}
	keyFileNames  = []string{"private.key", "key.pem", "private_key.pem"}
)

// CertificateParser synthesizes certificate-store events for files living in
// a per-node directory (".../nodes/<nodeId>/..."). Files outside a node
// directory produce nothing. Metadata not present in an auxiliary ca_info.txt
// is filled with fixed placeholder values; that is the store's contract, not
// a gap to fix here.
type CertificateParser struct{}

func (p *CertificateParser) Parse(content []byte, info models.FileInfo) []models.LogEvent {
	m := nodeDirRe.FindStringSubmatch(filepath.ToSlash(info.Path))
	if m == nil {
		return nil
	}
	nodeID := m[1]
	nodeDir := filepath.Dir(info.Path)

	certInfo := readNodeCertificateInfo(nodeDir, nodeID)
	csrFiles := findCSRFiles(nodeDir)

	dirInfo := certInfo
	dirInfo.CertFiles = existingFiles(nodeDir, certFileNames)
	dirInfo.KeyFiles = existingFiles(nodeDir, keyFileNames)
	dirInfo.CSRFiles = csrFiles

	events := []models.LogEvent{{
		ID:              NewEventID("ca_cert_"+nodeID, 0),
		Timestamp:       info.ModTime,
		Level:           "INFO",
		Source:          "ca.certificate.manager",
		Message:         fmt.Sprintf("certificate information updated for node %s", nodeID),
		NodeID:          nodeID,
		Type:            models.SourceCertificate,
		Filename:        info.Name,
		LineNumber:      1,
		FilePath:        info.Path,
		CertificateInfo: &dirInfo,
	}}

	keyPath := filepath.Join(nodeDir, "private.key")
	if fileExists(keyPath) {
		keyInfo := certInfo
		events = append(events, models.LogEvent{
			ID:              NewEventID("ca_key_"+nodeID, 1),
			Timestamp:       info.ModTime.Add(1 * time.Second),
			Level:           "DEBUG",
			Source:          "ca.key.manager",
			Message:         fmt.Sprintf("private key verified for node %s", nodeID),
			NodeID:          nodeID,
			Type:            models.SourceCertificate,
			Filename:        "private.key",
			LineNumber:      1,
			FilePath:        keyPath,
			CertificateInfo: &keyInfo,
		})
	}

	for i, csr := range csrFiles {
		csrInfo := certInfo
		events = append(events, models.LogEvent{
			ID:              NewEventID(fmt.Sprintf("ca_csr_%s_%d", nodeID, i), i+2),
			Timestamp:       info.ModTime.Add(time.Duration(i+2) * time.Second),
			Level:           "INFO",
			Source:          "ca.request.processor",
			Message:         fmt.Sprintf("certificate request %s processed for node %s", csr, nodeID),
			NodeID:          nodeID,
			Type:            models.SourceCertificate,
			Filename:        csr,
			LineNumber:      1,
			FilePath:        filepath.Join(nodeDir, csr),
			CertificateInfo: &csrInfo,
		})
	}

	return events
}

// readNodeCertificateInfo assembles certificate metadata for a node
// directory, preferring values from ca_info.txt over placeholders.
func readNodeCertificateInfo(nodeDir, nodeID string) models.CertificateInfo {
	now := time.Now()
	certInfo := models.CertificateInfo{
		Subject:        fmt.Sprintf("CN = %s, O = Veins V2X Network, C = DE, L = Erlangen", nodeID),
		Issuer:         `CN = "CN=Veins CA,O=Veins Project,C=US"`,
		SerialNumber:   "01",
		IssuedDate:     now,
		ValidFrom:      now,
		ValidTo:        now.Add(365 * 24 * time.Hour),
		Fingerprint:    "A1:B2:C3:D4:E5:F6:78:90:AB:CD:EF:12:34:56:78:90:AB:CD:EF:12",
		HasCertificate: fileExists(filepath.Join(nodeDir, "cert.pem")),
		HasPrivateKey:  fileExists(filepath.Join(nodeDir, "private.key")),
		HasCSR:         true,
		KeySize:        "2048",
	}

	if raw, err := os.ReadFile(filepath.Join(nodeDir, "ca_info.txt")); err == nil {
		applyCAInfo(&certInfo, string(raw))
	}
	return certInfo
}

// applyCAInfo overrides metadata from ca_info.txt lines. First match per
// prefix wins.
func applyCAInfo(info *models.CertificateInfo, content string) {
	seen := map[string]bool{}
	for _, line := range strings.Split(content, "\n") {
		for prefix, apply := range caInfoPrefixes {
			if seen[prefix] || !strings.Contains(line, prefix) {
				continue
			}
			value := strings.TrimSpace(strings.SplitN(line, prefix, 2)[1])
			apply(info, value)
			seen[prefix] = true
		}
	}
}

var caInfoPrefixes = map[string]func(*models.CertificateInfo, string){
	"Certificate Subject:":       func(c *models.CertificateInfo, v string) { c.Subject = v },
	"Certificate Issuer:":        func(c *models.CertificateInfo, v string) { c.Issuer = v },
	"Certificate Serial Number:": func(c *models.CertificateInfo, v string) { c.SerialNumber = v },
	"Issued Date:": func(c *models.CertificateInfo, v string) {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.IssuedDate = time.Unix(secs, 0)
		}
	},
}

// findCSRFiles lists request files in the node directory and its requests/
// subdirectory.
func findCSRFiles(nodeDir string) []string {
	var csrs []string
	for _, dir := range []string{nodeDir, filepath.Join(nodeDir, "requests")} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if strings.HasSuffix(name, ".csr") || strings.HasSuffix(name, ".req") {
				csrs = append(csrs, name)
			}
		}
	}
	return csrs
}

func existingFiles(dir string, names []string) []string {
	var found []string
	for _, name := range names {
		if fileExists(filepath.Join(dir, name)) {
			found = append(found, name)
		}
	}
	return found
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
