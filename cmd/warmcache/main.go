// Command warmcache seeds the long-lived product cache tier from the upstream
// catalog so resolution can survive a catalog outage from the first request.
// Product ids are read from command-line arguments, or one per line from the
// file given with -ids-file.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/utafrali/wishlist-service/internal/catalog"
	"github.com/utafrali/wishlist-service/internal/config"
	redisrepo "github.com/utafrali/wishlist-service/internal/repository/redis"
	"github.com/utafrali/wishlist-service/internal/service"
	"github.com/utafrali/wishlist-service/pkg/database"
	"github.com/utafrali/wishlist-service/pkg/httpclient"
	"github.com/utafrali/wishlist-service/pkg/logger"
)

func main() {
	idsFile := flag.String("ids-file", "", "path to a file with one product id per line")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline for the warm run")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("wishlist-warmcache", cfg.LogLevel)

	ids := flag.Args()
	if *idsFile != "" {
		fileIDs, err := readIDs(*idsFile)
		if err != nil {
			log.Error("failed to read ids file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		ids = append(ids, fileIDs...)
	}
	if len(ids) == 0 {
		log.Error("no product ids given; pass ids as arguments or via -ids-file")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, *timeout)
	defer timeoutCancel()

	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Error("failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.CatalogTimeout
	httpClient := httpclient.New(httpCfg)
	catalogClient := catalog.NewClient(httpClient, cfg.CatalogBaseURL, cfg.CatalogTimeout)

	cache := redisrepo.NewProductCache(redisClient, cfg.CacheShortTTL, cfg.CacheLongTTL)
	resolver := service.NewProductResolver(cache, catalogClient, log)

	warmed, err := resolver.WarmLongCache(ctx, ids)
	if err != nil {
		log.Error("cache warm aborted",
			slog.Int("warmed", warmed),
			slog.Int("total", len(ids)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	log.Info("cache warm complete",
		slog.Int("warmed", warmed),
		slog.Int("total", len(ids)),
	)
}

func readIDs(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" || strings.HasPrefix(id, "#") {
			continue
		}
		ids = append(ids, id)
	}
	return ids, scanner.Err()
}
