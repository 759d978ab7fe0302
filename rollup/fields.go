package rollup

// fields.go is the single place unit semantics live: the exact set of
// recognized rollup field names and how raw values are rescaled.
// Latency fields arrive in nanoseconds and are reported in
// milliseconds; DurationTotal arrives in nanoseconds and is reported
// in seconds; throughput, error and count fields pass through.

const (
	nanosPerMilli  = 1e6
	nanosPerSecond = 1e9
)

// fieldConversions maps each recognized field name to its value
// transform. Names absent from this map are dropped from the output,
// not an error.
var fieldConversions = map[string]func(float64) float64{
	"AverageLatency":        func(v float64) float64 { return v / nanosPerMilli },
	"Latency50thPercentile": func(v float64) float64 { return v / nanosPerMilli },
	"Latency80thPercentile": func(v float64) float64 { return v / nanosPerMilli },
	"Latency90thPercentile": func(v float64) float64 { return v / nanosPerMilli },
	"Latency95thPercentile": func(v float64) float64 { return v / nanosPerMilli },
	"Latency99thPercentile": func(v float64) float64 { return v / nanosPerMilli },
	"LatencyMin":            func(v float64) float64 { return v / nanosPerMilli },
	"LatencyMax":            func(v float64) float64 { return v / nanosPerMilli },
	"DurationTotal":         func(v float64) float64 { return v / nanosPerSecond },
	"OperationThroughput":   func(v float64) float64 { return v },
	"ErrorRate":             func(v float64) float64 { return v },
	"ErrorsTotal":           func(v float64) float64 { return v },
	"OperationsTotal":       func(v float64) float64 { return v },
	"DocumentsTotal":        func(v float64) float64 { return v },
}

// Convert rescales a raw rollup value into its reporting unit. The
// second return is false for unrecognized field names.
func Convert(name string, value float64) (float64, bool) {
	convert, ok := fieldConversions[name]
	if !ok {
		return 0, false
	}
	return convert(value), true
}

// Fields returns the set of recognized rollup field names.
func Fields() []string {
	names := make([]string, 0, len(fieldConversions))
	for name := range fieldConversions {
		names = append(names, name)
	}
	return names
}
