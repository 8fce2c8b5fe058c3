package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mauromattos-lab/NexusLab/internal/diagnosis"
	"github.com/mauromattos-lab/NexusLab/internal/httpapi"
	"github.com/mauromattos-lab/NexusLab/internal/leadstore"
	"github.com/mauromattos-lab/NexusLab/internal/report"
)

func main() {
	var (
		addr           = flag.String("addr", ":8787", "HTTP listen address")
		dbPath         = flag.String("db", "leads.db", "SQLite path for captured leads (empty disables persistence)")
		provider       = flag.String("llm-provider", os.Getenv("LLM_PROVIDER"), "LLM provider: openai or anthropic")
		variancePolicy = flag.String("variance", "opportunity", "score variance policy: opportunity or fixed")
		displayFloor   = flag.Int("display-floor", 50, "lowest score shown to the visitor")
		displayCeiling = flag.Int("display-ceiling", 96, "highest score shown to the visitor")
	)
	flag.Parse()

	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := diagnosis.ScoringConfig{
		DisplayFloor:   *displayFloor,
		DisplayCeiling: *displayCeiling,
	}
	switch strings.ToLower(strings.TrimSpace(*variancePolicy)) {
	case "opportunity", "":
		cfg.Variance = diagnosis.OpportunityScaledVariance()
	case "fixed":
		cfg.Variance = diagnosis.FixedVariance(10)
	default:
		logger.Fatal("unknown variance policy", zap.String("variance", *variancePolicy))
	}

	var engine *diagnosis.Engine
	credErr := ""
	caller, err := diagnosis.NewCallerFromEnv(*provider)
	if err != nil {
		// Keep serving: the endpoint answers 500 with this exact message
		// so a misconfigured deployment is visible from the front end.
		credErr = err.Error()
		logger.Warn("LLM caller not configured", zap.Error(err))
	} else {
		engine = diagnosis.NewEngine(caller, cfg)
	}

	var leads httpapi.LeadStore
	if *dbPath != "" {
		store, err := leadstore.Open(*dbPath)
		if err != nil {
			logger.Fatal("open lead store", zap.String("db", *dbPath), zap.Error(err))
		}
		defer store.Close()
		leads = store
	} else {
		logger.Info("lead persistence disabled")
	}

	handler := httpapi.NewServer(engine, credErr, leads, report.NewChromiumPDFRenderer(), logger)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("nexus api listening", zap.String("addr", *addr), zap.String("db", *dbPath))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
