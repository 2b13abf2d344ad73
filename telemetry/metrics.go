package telemetry

// ConversionBuckets covers in-process AST rewrites, which run well under
// a millisecond for typical queries.
var ConversionBuckets = []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1}

// Conversion Metrics
var (
	// ConversionsTotal counts conversions by result (success, failed, unsupported)
	ConversionsTotal CounterVec = noopCounterVec{}

	// ConversionDurationSeconds measures end-to-end conversion latency
	ConversionDurationSeconds Histogram = NoopStat{}

	// RuleApplicationsTotal counts rule firings by rule name
	RuleApplicationsTotal CounterVec = noopCounterVec{}

	// CacheHitsTotal counts converted-query cache hits
	CacheHitsTotal Counter = NoopStat{}

	// CacheMissesTotal counts converted-query cache misses
	CacheMissesTotal Counter = NoopStat{}

	// DynamicFunctionsRegistered tracks the number of catalog-resolved
	// function operators held in the dynamic registry
	DynamicFunctionsRegistered Gauge = NoopStat{}

	// CachedConversions tracks the number of entries in the converted-query cache
	CachedConversions Gauge = NoopStat{}

	// FallbackUDFsTotal counts calls re-emitted against their original class
	FallbackUDFsTotal Counter = NoopStat{}

	// TransportedUDFsTotal counts calls re-emitted against a native implementation
	TransportedUDFsTotal Counter = NoopStat{}
)

// InitMetrics initializes all Prometheus metrics.
// Must be called after InitializeTelemetry().
func InitMetrics() {
	ConversionsTotal = NewCounterVec(
		"conversions_total",
		"Total conversions by result",
		[]string{"result"},
	)
	ConversionDurationSeconds = NewHistogramWithBuckets(
		"conversion_duration_seconds",
		"Conversion duration in seconds",
		ConversionBuckets,
	)
	RuleApplicationsTotal = NewCounterVec(
		"rule_applications_total",
		"Rule firings by rule name",
		[]string{"rule"},
	)
	CacheHitsTotal = NewCounter(
		"cache_hits_total",
		"Converted-query cache hits",
	)
	CacheMissesTotal = NewCounter(
		"cache_misses_total",
		"Converted-query cache misses",
	)
	DynamicFunctionsRegistered = NewGauge(
		"dynamic_functions_registered",
		"Catalog-resolved function operators held in the dynamic registry",
	)
	CachedConversions = NewGauge(
		"cached_conversions",
		"Entries in the converted-query cache",
	)
	FallbackUDFsTotal = NewCounter(
		"fallback_udfs_total",
		"Calls re-emitted against their original UDF class",
	)
	TransportedUDFsTotal = NewCounter(
		"transported_udfs_total",
		"Calls re-emitted against a native implementation",
	)
}
