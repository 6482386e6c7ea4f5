package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"finsight/internal/log"
)

type readiness struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady fails only on the store. A disconnected broker degrades the
// status but events are optional for the server.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := readiness{
		Status:    "ready",
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{},
	}
	status := http.StatusOK

	if s.ready == nil {
		resp.Checks["store"] = "not_configured"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready.Ping(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			resp.Checks["store"] = "failed"
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
		} else {
			resp.Checks["store"] = "ok"
		}
	}

	switch {
	case s.broker == nil:
		resp.Checks["amqp"] = "not_configured"
	case s.broker.Healthy():
		resp.Checks["amqp"] = "ok"
	default:
		resp.Checks["amqp"] = "disconnected"
		if status == http.StatusOK {
			resp.Status = "degraded"
		}
	}

	writeJSON(w, status, resp)
}

// handleMetrics writes counters in the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	traceMetrics := s.tracer.GetMetrics()
	limitMetrics := s.limiter.GetMetrics()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	metric := func(name, kind, help string, value int64) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %d\n\n", name, help, name, kind, name, value)
	}
	metric("http_requests_total", "counter", "Total number of HTTP requests", traceMetrics.TotalRequests)
	metric("http_request_duration_avg_microseconds", "gauge", "Average response time", traceMetrics.AverageResponseTime)
	metric("rate_limit_rejected_total", "counter", "Requests refused by the rate limiter", limitMetrics.Rejected)
	metric("rate_limit_clients", "gauge", "Clients tracked in the current window", int64(limitMetrics.ClientCount))
	if s.reports != nil {
		metric("report_cache_entries", "gauge", "Cached month reports", int64(s.reports.Size()))
	}
	if s.broker != nil {
		connected := int64(0)
		if s.broker.Healthy() {
			connected = 1
		}
		metric("amqp_connected", "gauge", "Whether the event publisher is connected", connected)
	}
}
