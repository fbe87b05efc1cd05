package namespace

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/tagtree/gid"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collidingRoots returns two distinct root names whose level-0 fields are equal, and so
// whose GIDs are equal. With 10k candidates and a 21-bit field a pair is all but certain.
func collidingRoots(t *testing.T) (string, string) {
	t.Helper()
	seen := make(map[uint64]string)
	for i := 0; i < 10000; i++ {
		name := fmt.Sprintf("N%d", i)
		h := gid.SegmentHash([]byte(name), gid.LevelWidth(0))
		if prev, ok := seen[h]; ok {
			require.Equal(t, gid.MustFromPath(prev), gid.MustFromPath(name))
			return prev, name
		}
		seen[h] = name
	}
	t.Fatal("no colliding root names found")
	return "", ""
}

func defsOf(paths ...string) []Def {
	defs := make([]Def, len(paths))
	for i, p := range paths {
		defs[i] = NewDef(p)
	}
	return defs
}

func pathsOf(t *testing.T, r *Registry, gids []gid.GID) []string {
	t.Helper()
	out := make([]string, len(gids))
	for i, g := range gids {
		p, ok := r.PathOf(g)
		require.True(t, ok, "gid %s not registered", g)
		out[i] = p
	}
	return out
}

func newTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	return reader, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
}

// sumInt64 totals all data points of the named int64 sum instrument.
func sumInt64(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}
