package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/animo-game/go-server/internal/dataset"
	"github.com/animo-game/go-server/internal/hints"
	"github.com/animo-game/go-server/internal/httpserver"
	"github.com/animo-game/go-server/internal/question"
	"github.com/animo-game/go-server/internal/suggest"
	"github.com/animo-game/go-server/internal/taxonomy"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	taxa, err := taxonomy.Load(os.Getenv("TAXONOMY_DIR"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load taxonomy tables")
	}

	cache := dataset.NewCache(datasetSource(), cacheTTL(), nil)

	// Fail fast if the dataset and the lookup tables disagree.
	recs, err := cache.Records(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load observation dataset")
	}
	if err := dataset.Verify(recs, taxa); err != nil {
		log.Fatal().Err(err).Msg("dataset inconsistent with taxonomy tables")
	}
	log.Info().Int("records", len(recs)).Msg("observation dataset loaded")

	selector := question.NewSelector(cache,
		getEnv("DAILY_SALT", "local_dev_salt"),
		excludedGenera(), nil)
	wiki := hints.NewWikiClient(nil)
	resolver := hints.NewResolver(wiki)
	suggester := suggest.NewService(cache)

	srv := httpserver.New(taxa, cache, selector, resolver, suggester, wiki)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting animo go-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// datasetSource picks the record source: SQLite file, CSV file, or the
// embedded sample, in that order of preference.
func datasetSource() dataset.Source {
	if path := os.Getenv("OBSERVATIONS_DB"); path != "" {
		return dataset.SQLiteSource{Path: path}
	}
	if path := os.Getenv("OBSERVATIONS_FILE"); path != "" {
		return dataset.FileSource{Path: path}
	}
	return dataset.EmbeddedSource{}
}

// cacheTTL reads DATASET_CACHE_TTL (Go duration), defaulting to 5 minutes.
func cacheTTL() time.Duration {
	if raw := os.Getenv("DATASET_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
		log.Warn().Str("value", raw).Msg("bad DATASET_CACHE_TTL, using default")
	}
	return 5 * time.Minute
}

// excludedGenera reads the comma-separated EXCLUDED_GENERA list.
// Didelphis is suppressed by default: the source data is flooded with
// roadkill possum observations.
func excludedGenera() []string {
	raw := getEnv("EXCLUDED_GENERA", "Didelphis")
	var out []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
