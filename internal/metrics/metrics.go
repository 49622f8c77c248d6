// Package metrics holds the Prometheus series exported by both services.
// Series share the ccphase2_ prefix; the scrape job tells the services apart.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ccphase2_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ccphase2_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ccphase2_upstream_requests_total",
		Help: "Calls made to the process and industry services by result",
	}, []string{"upstream", "result"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ccphase2_upstream_request_duration_seconds",
		Help:    "Duration of calls made to the process and industry services",
		Buckets: prometheus.DefBuckets,
	}, []string{"upstream"})

	skippedLinks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ccphase2_skipped_links_total",
		Help: "Linked ids dropped from aggregated responses because the upstream record no longer resolves",
	}, []string{"upstream"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveUpstream records one upstream call. result is "ok", "not_found", "status_<code>"
// for other non-200 replies, or "error" when no reply arrived.
func ObserveUpstream(upstream, result string, duration time.Duration) {
	upstreamRequestsTotal.WithLabelValues(upstream, result).Inc()
	upstreamRequestDuration.WithLabelValues(upstream).Observe(duration.Seconds())
}

// ObserveSkippedLink counts a link whose upstream record was missing during aggregation.
func ObserveSkippedLink(upstream string) {
	skippedLinks.WithLabelValues(upstream).Inc()
}

// HTTPMetrics instruments requests with Prometheus metrics. Unmatched routes share one label.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Handler exposes the default registry for scraping.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
