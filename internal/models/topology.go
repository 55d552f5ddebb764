package models

// Topology describes the simulation's static node placement, a simplified
// snapshot of the scenario configuration served to map consumers.
type Topology struct {
	Nodes      map[string][]TopologyNode `json:"nodes"`
	Security   SecurityFeatures          `json:"security"`
	Playground Playground                `json:"playground"`
}

// TopologyNode is one placed entity; BeaconInterval is in milliseconds and
// zero for entities that do not beacon.
type TopologyNode struct {
	ID             string  `json:"id"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Z              float64 `json:"z"`
	BeaconInterval int     `json:"beaconInterval,omitempty"`
}

// SecurityFeatures flags which security infrastructures the scenario runs.
type SecurityFeatures struct {
	QCA bool `json:"qca"`
	CA  bool `json:"ca"`
}

// Playground is the simulation area's extent.
type Playground struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
