// Command rsvp splits Japanese text into reading chunks and presents them
// one at a time.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/rsvp-cli/internal/adapters/driven/cache"
	"github.com/custodia-labs/rsvp-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/rsvp-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/rsvp-cli/internal/adapters/driven/tokenizer/kagome"
	"github.com/custodia-labs/rsvp-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/rsvp-cli/internal/core/services"
	"github.com/custodia-labs/rsvp-cli/internal/logger"
	"github.com/custodia-labs/rsvp-cli/internal/normalisers"
	"github.com/custodia-labs/rsvp-cli/internal/postprocessors"
	"github.com/custodia-labs/rsvp-cli/internal/segmenter"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the adapters and core services.
func buildServices() (*cli.Services, func(), error) {
	log := logger.Zap()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)

	settingsService := services.NewSettingsService(configStore, processors.Has)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}

	pipeline, err := processors.BuildPipeline(settings.PostProcessors, log.Named("postprocessors"))
	if err != nil {
		return nil, nil, fmt.Errorf("building post-processors: %w", err)
	}

	tokenizer := kagome.New(settings.Tokenizer.Dictionary, kagome.WithLogger(log.Named("tokenizer")))
	seg := segmenter.New(tokenizer,
		segmenter.WithPostProcessor(pipeline),
		segmenter.WithLogger(log.Named("segmenter")),
	)

	segmentOpts := []services.SegmentOption{
		services.WithBaseSettings(settings.Segmentation),
		services.WithSegmentLogger(log.Named("segment")),
	}
	var segmentCache *cache.SegmentCache
	if settings.Cache.TTL > 0 {
		segmentCache = cache.New(settings.Cache.TTL, cache.WithLogger(log.Named("cache")))
		segmentOpts = append(segmentOpts, services.WithSegmentCache(segmentCache))
	}
	segmentService := services.NewSegmentService(seg, segmentOpts...)

	store, err := sqlite.NewStore("")
	if err != nil {
		if segmentCache != nil {
			segmentCache.Close()
		}
		return nil, nil, fmt.Errorf("opening library: %w", err)
	}

	documentService := services.NewDocumentService(
		store.DocumentStore(),
		normalisers.NewDefaultRegistry(),
		segmentService,
		settings.Tokenizer.Dictionary,
		log.Named("documents"),
	)

	cleanup := func() {
		if segmentCache != nil {
			segmentCache.Close()
		}
		if err := store.Close(); err != nil {
			logger.Warn("closing library: %v", err)
		}
		_ = log.Sync()
	}

	return &cli.Services{
		Segment:  segmentService,
		Document: documentService,
		Settings: settingsService,
		Player:   services.NewPlayer(settings.Playback.Interval),
	}, cleanup, nil
}
