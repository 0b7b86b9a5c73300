package main

// GET    /health               - database reachability
// GET    /metrics              - prometheus scrape endpoint
// GET    /cashiers             - list cashiers
// POST   /cashiers             - create a cashier
// GET    /cashiers/{id}        - cashier with orders and line items
// GET    /categories           - list categories
// GET    /products?search=     - list products, optional name/category search
// POST   /products             - create a product
// PUT    /products/{id}        - change a product's price
// GET    /orders?orderDate=    - list orders, optionally paid on one day
// GET    /orders/{id}          - order details with live total
// POST   /orders               - create an order with its line items
// DELETE /orders/{id}          - delete an order and its line items

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cornerstore/config"
	"cornerstore/handler"
	"cornerstore/logging"
	"cornerstore/metrics"
	"cornerstore/service"
	"cornerstore/store"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("cornerstore stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New("cornerstore", cfg.LogLevel, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	st, err := store.NewPostgresStore(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	// --- Migrations / seed ---
	if cfg.RunMigrations {
		if err := store.Migrate(ctx, st.DB); err != nil {
			return err
		}
		log.Info("database migrations applied")
	}
	if cfg.SeedData {
		if err := store.Seed(ctx, st.DB); err != nil {
			return err
		}
		log.Info("seed data applied")
	}

	// --- Service ---
	var svc service.ServiceInterface = service.NewService(st)

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewServerMetrics(reg)

	// --- Router ---
	r := mux.NewRouter()
	handler.NewHandler(svc, log, m, cfg.RequestTimeout).RegisterRoutes(r)
	r.Handle("/metrics", metrics.Handler(reg)).Methods(http.MethodGet)

	// --- Server ---
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
