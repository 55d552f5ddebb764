// Package synthetic produces schema-conformant fallback events.
//
// The ingestion aggregator returns these when no real artifacts exist, so
// downstream consumers never need a "no data" branch. Values are randomly
// sampled; only the shape is deterministic.
package synthetic

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

var levels = []string{"INFO", "WARNING", "ERROR", "DEBUG"}

var sources = []string{
	"veins.mobility", "veins.network", "veins.application",
	"ca.server", "ca.certificate", "qca.quantum", "qca.encryption",
	"rsu.beacon", "vehicle.app", "drone.control", "ship.navigation",
}

var nodeIDs = []string{
	"vehicle[0]", "vehicle[1]", "vehicle[2]", "vehicle[3]",
	"drone[0]", "drone[1]", "drone[2]",
	"ship[0]", "ship[1]", "ship[2]",
	"rsu[0]", "rsu[1]", "port[0]", "warehouse[0]", "ca[0]", "qca_system",
}

var messages = []string{
	"vehicle position updated: (125.4, 67.8)",
	"received RSU broadcast message",
	"certificate verification succeeded",
	"quantum key exchange complete",
	"network topology change detected",
	"security threat detected",
	"performance metrics collected",
	"V2X connection established",
	"packet transmission complete",
	"system status normal",
	"CA certificate issued",
	"QCA quantum key distributed",
	"RSU beacon broadcast nominal",
	"vehicle handshake complete",
	"drone mission path planned",
	"ship navigation system started",
	"warehouse inventory state updated",
	"port vessel scheduling update",
}

// Generate returns count events sampled from fixed vocabularies with
// timestamps jittered within the past hour, newest first not guaranteed.
func Generate(count int) []models.LogEvent {
	events := make([]models.LogEvent, 0, count)
	now := time.Now()

	for i := 0; i < count; i++ {
		ts := now.Add(-time.Duration(gofakeit.IntRange(0, 3600)) * time.Second)
		source := gofakeit.RandomString(sources)
		nodeID := gofakeit.RandomString(nodeIDs)

		eventType := models.SourceVeins
		if gofakeit.Float64Range(0, 1) > 0.7 {
			eventType = models.SourceCertificate
		}

		event := models.LogEvent{
			ID:         fmt.Sprintf("synthetic_%d_%d", i, now.UnixMilli()),
			Timestamp:  ts,
			Level:      gofakeit.RandomString(levels),
			Source:     source,
			Message:    gofakeit.RandomString(messages),
			NodeID:     nodeID,
			Type:       eventType,
			Filename:   fmt.Sprintf("server_log_%d.log", i%10),
			LineNumber: gofakeit.IntRange(1, 1000),
		}

		if event.Type == models.SourceCertificate || source == "ca.certificate" {
			event.CertificateInfo = sampleCertificateInfo(nodeID, ts, i)
		}
		if source == "qca.quantum" || source == "qca.encryption" || nodeID == "qca_system" {
			event.QCAInfo = sampleQCAInfo(i)
		}

		events = append(events, event)
	}

	return events
}

func sampleCertificateInfo(nodeID string, ts time.Time, i int) *models.CertificateInfo {
	return &models.CertificateInfo{
		Subject:        fmt.Sprintf("CN = %s, O = Veins V2X Network, C = DE, L = Erlangen", nodeID),
		Issuer:         `CN = "CN=Veins CA,O=Veins Project,C=US"`,
		SerialNumber:   fmt.Sprintf("%02d", i),
		IssuedDate:     ts,
		ValidFrom:      ts,
		ValidTo:        ts.Add(365 * 24 * time.Hour),
		Fingerprint:    fmt.Sprintf("A1:B2:C3:D4:E5:F6:78:90:AB:CD:EF:12:34:56:78:90:AB:CD:EF:%02d", i%100),
		HasCertificate: true,
		HasPrivateKey:  gofakeit.Float64Range(0, 1) > 0.3,
		HasCSR:         gofakeit.Bool(),
		KeySize:        "2048",
		CSRFiles:       []string{fmt.Sprintf("request_%d.csr", ts.Unix())},
	}
}

func sampleQCAInfo(i int) *models.QCAInfo {
	algorithm := "SARG04"
	if gofakeit.Bool() {
		algorithm = "BB84"
	}
	state := "measured"
	if gofakeit.Bool() {
		state = "superposition"
	}
	return &models.QCAInfo{
		KeyType:      "quantum",
		KeyFile:      fmt.Sprintf("quantum_key_%03d.dat", i),
		KeySize:      "1024 bytes",
		Entangled:    gofakeit.Float64Range(0, 1) > 0.3,
		Algorithm:    algorithm,
		QuantumState: state,
		ErrorRate:    fmt.Sprintf("%.4f", gofakeit.Float64Range(0, 0.1)),
		Fidelity:     fmt.Sprintf("%.3f", gofakeit.Float64Range(0.8, 1.0)),
	}
}
