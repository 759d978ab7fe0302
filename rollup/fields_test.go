package rollup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{name: "AverageLatency", raw: 2e6, want: 2},
		{name: "Latency50thPercentile", raw: 1.5e6, want: 1.5},
		{name: "Latency80thPercentile", raw: 3e6, want: 3},
		{name: "Latency90thPercentile", raw: 4e6, want: 4},
		{name: "Latency95thPercentile", raw: 5e6, want: 5},
		{name: "Latency99thPercentile", raw: 6e6, want: 6},
		{name: "LatencyMin", raw: 1e3, want: 0.001},
		{name: "LatencyMax", raw: 9e6, want: 9},
		{name: "DurationTotal", raw: 3e9, want: 3},
		{name: "OperationThroughput", raw: 12345.6, want: 12345.6},
		{name: "ErrorRate", raw: 0.25, want: 0.25},
		{name: "ErrorsTotal", raw: 7, want: 7},
		{name: "OperationsTotal", raw: 100000, want: 100000},
		{name: "DocumentsTotal", raw: 42, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(tt.name, tt.raw)
			require.True(t, ok)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}

	// Every recognized field must be covered above.
	require.Len(t, tests, len(Fields()))
}

func TestConvertUnknownField(t *testing.T) {
	_, ok := Convert("WorkersMin", 5)
	require.False(t, ok)
}
