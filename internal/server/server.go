// Package server exposes the engine over HTTP and WebSocket.
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ZQisAmalou/v2x-log-server/common/logging"
	"github.com/ZQisAmalou/v2x-log-server/common/middleware"
	"github.com/ZQisAmalou/v2x-log-server/internal/ingest"
	"github.com/ZQisAmalou/v2x-log-server/internal/nodes"
	"github.com/ZQisAmalou/v2x-log-server/internal/watch"
)

// Server wires the engine services to the HTTP surface.
type Server struct {
	ingest  *ingest.Service
	nodes   *nodes.Aggregator
	watcher *watch.Watcher
	logger  *logging.Logger
}

// New constructs a Server. watcher may be nil, in which case the WebSocket
// endpoint reports unavailability.
func New(ing *ingest.Service, agg *nodes.Aggregator, watcher *watch.Watcher, logger *logging.Logger) *Server {
	return &Server{
		ingest:  ing,
		nodes:   agg,
		watcher: watcher,
		logger:  logger,
	}
}

// Router builds the HTTP handler with all API routes registered.
func (s *Server) Router(corsOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/logs", s.handleLogs).Methods(http.MethodGet)
	r.HandleFunc("/api/logs/{type}", s.handleLogs).Methods(http.MethodGet)

	r.HandleFunc("/api/veins/config", s.handleVeinsConfig).Methods(http.MethodGet)

	r.HandleFunc("/api/nodes", s.handleNodes).Methods(http.MethodGet)
	r.HandleFunc("/api/nodes/{nodeId}/details", s.handleNodeDetails).Methods(http.MethodGet)

	r.HandleFunc("/api/communications/nodes", s.handleAllCommunications).Methods(http.MethodGet)
	r.HandleFunc("/api/communications/node/{nodeType}/{nodeId}", s.handleNodeCommunications).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.handleWebSocket)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)

	cors := middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	return middleware.RequestID(cors(s.logRequests(r)))
}

// logRequests records one line per request, matching the engine's
// structured-logging conventions.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.InfoContext(r.Context(), "request",
			logging.Method(r.Method),
			logging.Path(r.URL.Path),
			logging.Duration(time.Since(start).Milliseconds()),
		)
	})
}
