package main

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"

	"github.com/revgraph-dev/revgraph/internal/manifest"
	"github.com/revgraph-dev/revgraph/internal/obslog"
	"github.com/revgraph-dev/revgraph/internal/revgraph"
	"github.com/revgraph-dev/revgraph/internal/telemetry"
)

// buildMap loads the manifest directory and constructs the frozen map,
// wrapped in a trace span and a node-count metric the way this
// codebase's storage layer instruments its own calls.
func buildMap(ctx context.Context) (*revgraph.Map, error) {
	providers := telemetry.Noop()
	if telemetryEnabled {
		p, err := telemetry.Setup(os.Stdout, os.Stdout)
		if err == nil {
			providers = p
			defer func() { _ = providers.Shutdown(ctx) }()
		}
	}

	ctx, span := providers.Tracer.Start(ctx, "revgraph.build")
	defer span.End()

	provider := manifest.Provider(ctx, manifestDir)
	m, err := revgraph.Build(provider)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("revgraph.node_count", m.Len()))
	counter, cerr := providers.Meter.Int64Counter("revgraph.builds")
	if cerr == nil {
		counter.Add(ctx, 1)
	}

	obslog.Debug("built revision map", "manifest_dir", manifestDir, "nodes", m.Len())
	return m, nil
}

var telemetryEnabled = false
