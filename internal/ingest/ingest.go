// Package ingest drives directory walking and parsing across artifact
// stores and merges the result into one chronologically ordered stream.
package ingest

import (
	"context"
	"log/slog"
	"sort"

	"github.com/ZQisAmalou/v2x-log-server/internal/metrics"
	"github.com/ZQisAmalou/v2x-log-server/internal/models"
	"github.com/ZQisAmalou/v2x-log-server/internal/parser"
	"github.com/ZQisAmalou/v2x-log-server/internal/synthetic"
	"github.com/ZQisAmalou/v2x-log-server/internal/walker"
)

// Service aggregates events across the registered artifact stores. Every
// call re-walks and re-parses; there is no cache, trading throughput for
// freshness. Requests share no mutable state and may run concurrently.
type Service struct {
	roots          map[models.SourceType]string
	registry       *parser.Registry
	syntheticCount int
}

// New constructs a Service over the given source-type → root-directory map.
func New(roots map[models.SourceType]string, registry *parser.Registry, syntheticCount int) *Service {
	if syntheticCount <= 0 {
		syntheticCount = 100
	}
	return &Service{
		roots:          roots,
		registry:       registry,
		syntheticCount: syntheticCount,
	}
}

// Ingest returns the merged event stream for one source type, or for every
// registered type when sourceType is "all", sorted newest first. It never
// fails: unknown types, missing directories, parse failures and even
// internal panics all degrade to a synthetic fallback so the result is
// always renderable.
func (s *Service) Ingest(ctx context.Context, sourceType models.SourceType) (events []models.LogEvent) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("ingestion panicked, returning synthetic events", "source_type", string(sourceType), "panic", r)
			metrics.SyntheticFallbacks.Inc()
			events = synthetic.Generate(s.syntheticCount)
		}
	}()

	switch {
	case sourceType == models.SourceAll:
		for t, root := range s.roots {
			typed := s.ingestType(ctx, t, root)
			slog.Debug("ingested source type", "source_type", string(t), "count", len(typed))
			events = append(events, typed...)
		}
	case sourceType.Known():
		events = s.ingestType(ctx, sourceType, s.roots[sourceType])
	default:
		slog.Warn("unknown source type, returning synthetic events", "source_type", string(sourceType))
		metrics.SyntheticFallbacks.Inc()
		return synthetic.Generate(s.syntheticCount)
	}

	if len(events) == 0 {
		slog.Info("no real events found, returning synthetic events", "source_type", string(sourceType))
		metrics.SyntheticFallbacks.Inc()
		return synthetic.Generate(s.syntheticCount)
	}

	// Newest first. Tie order is unspecified.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	return events
}

// IngestNode returns up to limit most recent events whose node matches.
func (s *Service) IngestNode(ctx context.Context, nodeID string, limit int) []models.LogEvent {
	matched := []models.LogEvent{}
	for _, event := range s.Ingest(ctx, models.SourceAll) {
		if event.NodeID != nodeID {
			continue
		}
		matched = append(matched, event)
		if len(matched) >= limit {
			break
		}
	}
	return matched
}

func (s *Service) ingestType(ctx context.Context, t models.SourceType, root string) []models.LogEvent {
	var events []models.LogEvent
	for _, path := range walker.Walk(root) {
		if ctx.Err() != nil {
			break
		}
		fileEvents := s.registry.ParseFile(path, t)
		metrics.EventsParsed.WithLabelValues(string(t)).Add(float64(len(fileEvents)))
		events = append(events, fileEvents...)
	}
	return events
}
