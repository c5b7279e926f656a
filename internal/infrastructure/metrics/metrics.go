package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// creator-api metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Provider calls made by the orchestrator
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "provider_calls_total",
			Help:      "Provider calls by purpose and result",
		},
		[]string{"provider", "purpose", "status"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "provider_duration_seconds",
			Help:      "Provider call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"provider", "purpose"},
	)

	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "provider_errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"provider", "error_type"},
	)

	// Provider availability derived from configured credentials
	ProviderAvailable = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "provider_available",
			Help:      "Provider availability (1=credential configured, 0=missing)",
		},
		[]string{"provider"},
	)

	// Token counters
	TokensPromptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "tokens_prompt_total",
			Help:      "Total prompt tokens consumed",
		},
		[]string{"model", "provider"},
	)

	TokensCompletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "tokens_completion_total",
			Help:      "Total completion tokens generated",
		},
		[]string{"model", "provider"},
	)

	// Generations
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "generations_total",
			Help:      "Completed generations by category, platform and result",
		},
		[]string{"category", "platform", "result"},
	)

	HashtagFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "hashtag_fallbacks_total",
			Help:      "Generations that used the static fallback hashtags",
		},
	)

	QuotaDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "quota_denials_total",
			Help:      "Generations rejected by the daily quota",
		},
		[]string{"tier"},
	)

	DailyResetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "daily_resets_total",
			Help:      "Daily counter reset runs",
		},
		[]string{"status"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"backend"},
	)

	// User agent metrics (normalized to keep low cardinality)
	UserAgentFamilyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creator",
			Subsystem: "api",
			Name:      "user_agent_family_total",
			Help:      "Requests by user agent family (browser/cli/sdk/unknown)",
		},
		[]string{"family"},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordProviderCall records one adapter call
func RecordProviderCall(provider, purpose string, success bool, durationSec float64) {
	status := "success"
	if !success {
		status = "failure"
	}
	ProviderCallsTotal.WithLabelValues(provider, purpose, status).Inc()
	ProviderDuration.WithLabelValues(provider, purpose).Observe(durationSec)
}

// RecordProviderError records a provider error
func RecordProviderError(provider, errorType string) {
	ProviderErrorsTotal.WithLabelValues(provider, errorType).Inc()
}

// SetProviderAvailable sets the availability gauge of a provider
func SetProviderAvailable(provider string, available bool) {
	val := 0.0
	if available {
		val = 1.0
	}
	ProviderAvailable.WithLabelValues(provider).Set(val)
}

// RecordTokens records token usage reported by a provider
func RecordTokens(model, provider string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		TokensPromptTotal.WithLabelValues(model, provider).Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		TokensCompletionTotal.WithLabelValues(model, provider).Add(float64(completionTokens))
	}
}

// RecordGeneration records a completed generation. result is "success",
// "partial" or "failed" depending on how many providers succeeded.
func RecordGeneration(category, platform, result string) {
	GenerationsTotal.WithLabelValues(category, platform, result).Inc()
}

func RecordHashtagFallback() {
	HashtagFallbacksTotal.Inc()
}

func RecordQuotaDenial(tier string) {
	if tier == "" {
		tier = "unknown"
	}
	QuotaDenialsTotal.WithLabelValues(tier).Inc()
}

func RecordDailyReset(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	DailyResetsTotal.WithLabelValues(status).Inc()
}

func RecordRateLimited(backend string) {
	RateLimitedTotal.WithLabelValues(backend).Inc()
}

// RecordUserAgent records UA metrics bucketed by family
func RecordUserAgent(ua string) {
	UserAgentFamilyTotal.WithLabelValues(userAgentFamily(normalizeUserAgent(ua))).Inc()
}

func normalizeUserAgent(ua string) string {
	ua = strings.TrimSpace(strings.ToLower(ua))
	if ua == "" {
		return "unknown"
	}
	parts := strings.Fields(ua)
	norm := parts[0]
	if len(norm) > 60 {
		norm = norm[:60]
	}
	return norm
}

func userAgentFamily(normUA string) string {
	switch {
	case strings.Contains(normUA, "mozilla") || strings.Contains(normUA, "chrome") || strings.Contains(normUA, "safari"):
		return "browser"
	case strings.Contains(normUA, "curl") || strings.Contains(normUA, "wget") || strings.Contains(normUA, "httpie"):
		return "cli"
	case strings.Contains(normUA, "postman") || strings.Contains(normUA, "insomnia"):
		return "api_client"
	case strings.Contains(normUA, "okhttp") || strings.Contains(normUA, "cfnetwork") || strings.Contains(normUA, "dart"):
		return "mobile"
	case strings.Contains(normUA, "axios") || strings.Contains(normUA, "python-requests") || strings.Contains(normUA, "go-http-client"):
		return "sdk"
	default:
		return "unknown"
	}
}
