package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ZQisAmalou/v2x-log-server/common/httputil"
	"github.com/ZQisAmalou/v2x-log-server/common/logging"
	"github.com/ZQisAmalou/v2x-log-server/internal/models"
	"github.com/ZQisAmalou/v2x-log-server/internal/nodes"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, map[string]any{
		"message": "V2X log server running",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"logs_all":     "/api/logs",
			"logs_typed":   "/api/logs/{type}",
			"veins_config": "/api/veins/config",
			"nodes":        "/api/nodes",
			"node_detail":  "/api/nodes/{nodeId}/details",
			"health":       "/api/health",
			"websocket":    "/ws",
			"metrics":      "/metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, map[string]any{
		"message": "log server healthy",
		"time":    time.Now(),
	})
}

// handleLogs serves the merged event stream for one source type, defaulting
// to all. The engine never fails here; unknown types yield synthetic events.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	sourceType := models.SourceAll
	if t, ok := mux.Vars(r)["type"]; ok {
		sourceType = models.SourceType(t)
	}

	events := s.ingest.Ingest(r.Context(), sourceType)
	httputil.WriteList(w, events, len(events), string(sourceType))
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	profiles := s.nodes.List(r.Context())
	httputil.WriteList(w, profiles, len(profiles), "nodes")
}

func (s *Server) handleNodeDetails(w http.ResponseWriter, r *http.Request) {
	nodeID := mux.Vars(r)["nodeId"]

	profile, err := s.nodes.Details(r.Context(), nodeID)
	if err != nil {
		if errors.Is(err, nodes.ErrNodeNotFound) {
			httputil.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "node details failed", logging.NodeID(nodeID), logging.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to read node details")
		return
	}

	httputil.WriteData(w, profile)
}

func (s *Server) handleAllCommunications(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, s.nodes.AllCommunications())
}

func (s *Server) handleNodeCommunications(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	nodeType, nodeID := vars["nodeType"], vars["nodeId"]

	messages, modTime, err := s.nodes.Transcript(nodeType, nodeID)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "node communications not found")
		return
	}

	httputil.WriteData(w, map[string]any{
		"nodeType":     nodeType,
		"nodeId":       nodeID,
		"messages":     messages,
		"lastUpdate":   modTime,
		"messageCount": len(messages),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "route not found", logging.Method(r.Method), logging.Path(r.URL.Path))
	httputil.WriteError(w, http.StatusNotFound, "resource not found")
}
