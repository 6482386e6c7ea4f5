// Package http exposes transactions and month insights as a JSON API.
package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"finsight/internal/analysis"
	"finsight/internal/core"
	"finsight/internal/log"
	"finsight/internal/middleware/ratelimit"
	"finsight/internal/middleware/security"
	"finsight/internal/middleware/trace"
	"finsight/internal/services"
)

const maxBodyBytes = 64 << 10

type TransactionService interface {
	Create(ctx context.Context, in services.NewTransaction) (core.Transaction, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, year int, month time.Month) ([]core.Transaction, error)
}

type InsightService interface {
	Report(ctx context.Context, year int, month time.Month) (analysis.MonthReport, error)
	Nudges(ctx context.Context, year int, month time.Month) ([]string, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Broker is the optional event publisher's connection state.
type Broker interface {
	Healthy() bool
}

// Sizer reports how many entries a cache holds.
type Sizer interface {
	Size() int
}

type Options struct {
	Transactions TransactionService
	Insights     InsightService
	// Ready is checked by /readyz; nil means always ready.
	Ready Pinger
	// Broker and ReportCache only feed /readyz details and /metrics.
	Broker             Broker
	ReportCache        Sizer
	Currency           string
	Logger             *log.Logger
	RateLimitPerMinute int
	// TrustedProxies extends the private ranges allowed to set X-Forwarded-For.
	TrustedProxies []string
	Now            func() time.Time
}

type Server struct {
	http.Server
	txs      TransactionService
	insights InsightService
	ready    Pinger
	broker   Broker
	reports  Sizer
	currency string
	logger   *log.Logger
	now      func() time.Time

	limiter      *ratelimit.Limiter
	tracer       *trace.Middleware
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	resolver, err := security.NewIPResolver(opts.TrustedProxies...)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger.WithComponent(log.ComponentHTTP)
	s := &Server{
		txs:      opts.Transactions,
		insights: opts.Insights,
		ready:    opts.Ready,
		broker:   opts.Broker,
		reports:  opts.ReportCache,
		currency: opts.Currency,
		logger:   logger,
		now:      opts.Now,
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		tracer:   trace.NewMiddleware(logger, resolver.ClientIP),
	}

	limited := s.limiter.Middleware(resolver.ClientIP, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/transactions", s.handleListTransactions)
	api.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	api.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	api.HandleFunc("GET /api/insights", s.handleInsights)
	api.HandleFunc("GET /api/insights/nudges", s.handleNudges)
	api.HandleFunc("GET /api/categories", s.handleCategories)
	api.HandleFunc("GET /api/export.csv", s.handleExport)
	mux.Handle("/api/", limited(api))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.tracer.Middleware(headers.Middleware(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	return s, nil
}

// Shutdown stops the rate limiter and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// Run serves until ctx is cancelled, then shuts down within grace.
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	errCh := make(chan error, 1)
	s.logger.Info("HTTP server listening", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.limiter.Stop()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Draining HTTP connections", "grace", grace, log.FieldOperation, log.OpShutdown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
