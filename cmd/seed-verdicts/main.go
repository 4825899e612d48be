// seed-verdicts loads curated domain reputation data into the database from a
// JSON file of {"domain": "...", "verdict": "real"|"fake"} entries.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sujayx07/TruthScope/internal/adapter/repository"
	"github.com/sujayx07/TruthScope/internal/domain"
	"github.com/sujayx07/TruthScope/internal/infra"
	"github.com/sujayx07/TruthScope/internal/infra/config"
	"github.com/sujayx07/TruthScope/internal/infra/logger"
)

type seedEntry struct {
	Domain  string `json:"domain"`
	Verdict string `json:"verdict"`
}

func main() {
	var filePath string

	rootCmd := &cobra.Command{
		Use:   "seed-verdicts",
		Short: "Load curated domain reputation entries into the verdict store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), filePath)
		},
	}
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "path to the JSON seed file (required)")
	_ = rootCmd.MarkFlagRequired("file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, filePath string) error {
	log := logger.New()
	cfg := config.Load()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	var entries []seedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	pool, err := infra.NewPostgresDB(connCtx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	repo := repository.NewDomainVerdictRepository(pool)

	var loaded, skipped int
	for _, entry := range entries {
		verdict := domain.DomainVerdict(entry.Verdict)
		if verdict != domain.DomainVerdictReal && verdict != domain.DomainVerdictFake {
			log.Warn("skipping entry with unknown verdict", "domain", entry.Domain, "verdict", entry.Verdict)
			skipped++
			continue
		}
		if entry.Domain == "" {
			log.Warn("skipping entry with empty domain")
			skipped++
			continue
		}
		if err := repo.Upsert(ctx, entry.Domain, verdict); err != nil {
			return fmt.Errorf("failed to upsert %q: %w", entry.Domain, err)
		}
		loaded++
	}

	log.Info("seed complete", "loaded", loaded, "skipped", skipped)
	return nil
}
