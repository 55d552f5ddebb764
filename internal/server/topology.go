package server

import (
	"net/http"

	"github.com/ZQisAmalou/v2x-log-server/common/httputil"
	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

// veinsTopology is the scenario's static node placement, simplified from the
// simulation configuration.
var veinsTopology = models.Topology{
	Nodes: map[string][]models.TopologyNode{
		"rsu":        {{ID: "rsu[0]", X: 2000, Y: 2000, Z: 3, BeaconInterval: 1000}},
		"drones":     {{ID: "drone[0]", X: 1800, Y: 2200, Z: 50, BeaconInterval: 500}},
		"ships":      {{ID: "ship[0]", X: 1500, Y: 2500, Z: 0, BeaconInterval: 2000}},
		"warehouses": {{ID: "warehouse[0]", X: 1700, Y: 1800, Z: 0, BeaconInterval: 3000}},
		"ports":      {{ID: "port[0]", X: 1600, Y: 1700, Z: 0, BeaconInterval: 2000}},
		"ca":         {{ID: "ca[0]", X: 1000, Y: 1250, Z: 8, BeaconInterval: 500}},
		"qca":        {{ID: "qca[0]", X: 1500, Y: 400, Z: 0}},
	},
	Security:   models.SecurityFeatures{QCA: true, CA: true},
	Playground: models.Playground{X: 2700, Y: 3100, Z: 50},
}

func (s *Server) handleVeinsConfig(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, veinsTopology)
}
