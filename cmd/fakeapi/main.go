package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/finny/internal/config"
	finnyHttp "github.com/MrJamesThe3rd/finny/internal/http"
	authHandler "github.com/MrJamesThe3rd/finny/internal/http/auth"
	financeHandler "github.com/MrJamesThe3rd/finny/internal/http/finance"
	importHandler "github.com/MrJamesThe3rd/finny/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/finny/internal/http/matching"
	profileHandler "github.com/MrJamesThe3rd/finny/internal/http/profile"
	"github.com/MrJamesThe3rd/finny/internal/importer"
	"github.com/MrJamesThe3rd/finny/internal/ledger"
	"github.com/MrJamesThe3rd/finny/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/finny/internal/matching/store"
)

// defaultRules categorize imported statement rows out of the box.
var defaultRules = map[string]string{
	"uber":       "Transport",
	"galp":       "Transport",
	"continente": "Groceries",
	"pingo doce": "Groceries",
	"netflix":    "Entertainment",
	"renda":      "Housing",
	"wise":       "Salary",
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	l := ledger.New()

	demo, err := l.Seed(cfg.FakeAPI.DemoUser, cfg.FakeAPI.DemoPassword, time.Now())
	if err != nil {
		return fmt.Errorf("seeding ledger: %w", err)
	}

	slog.Info("seeded demo account", "username", demo.Username)

	rules := matching.NewService(matchingStore.NewMemory())
	for pattern, category := range defaultRules {
		if err := rules.Learn(ctx, pattern, category); err != nil {
			return fmt.Errorf("learning rule %q: %w", pattern, err)
		}
	}

	importSvc := importer.NewService(rules)

	if cfg.FakeAPI.SeedCSV != "" {
		if err := seedStatement(ctx, importSvc, l, demo, cfg.FakeAPI.SeedCSV, cfg.FakeAPI.SeedBank); err != nil {
			return err
		}
	}

	tokens := authHandler.NewTokens(cfg.FakeAPI.Secret, cfg.FakeAPI.TokenTTL)

	var (
		authH    = authHandler.NewHandler(l, tokens)
		profileH = profileHandler.NewHandler(l)
		financeH = financeHandler.NewHandler(l, time.Now)
		importH  = importHandler.NewHandler(importSvc, l)
		rulesH   = matchingHandler.NewHandler(rules)
	)

	router := finnyHttp.New(tokens, cfg.FakeAPI.CORSOrigins, authH, profileH, financeH, importH, rulesH)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.FakeAPI.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// seedStatement loads a bank export into the demo account.
func seedStatement(ctx context.Context, svc *importer.Service, l *ledger.Ledger, demo ledger.User, path, bankName string) error {
	bank, err := importer.ParseBank(bankName)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening seed statement: %w", err)
	}
	defer f.Close()

	parsed, err := svc.Import(ctx, bank, f)
	if err != nil {
		return fmt.Errorf("parsing seed statement: %w", err)
	}

	res, err := l.Import(demo.ID, parsed.Transactions)
	if err != nil {
		return fmt.Errorf("importing seed statement: %w", err)
	}

	slog.Info("seeded statement",
		"path", path,
		"encoding", parsed.Charset,
		"imported", len(res.Added),
		"skipped", res.Skipped,
	)

	return nil
}
