package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"yt-summarizer/server"
	"yt-summarizer/shared/config"
	"yt-summarizer/shared/monitoring"
	"yt-summarizer/shared/storage"
	"yt-summarizer/summarizer"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := storage.NewAudioStore(cfg.Audio.Dir)
	if err != nil {
		log.Fatalf("Failed to set up audio store: %v", err)
	}

	// Clear leftovers from a previous process before serving.
	if removed, err := store.PurgeStale(0); err != nil {
		log.Printf("Warning: startup audio cleanup failed: %v", err)
	} else if removed > 0 {
		log.Printf("Removed %d leftover audio files", removed)
	}

	pipeline := summarizer.New(ctx, cfg, store)
	monitor := monitoring.NewMonitor()

	healthServer := monitoring.NewHealthServer(monitor, fmt.Sprintf("%d", cfg.Server.HealthPort))
	healthServer.Start()

	// Janitor: purge stale audio files on a schedule in case a run
	// died before its cleanup.
	janitor := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := janitor.AddFunc(cfg.Audio.CleanupSchedule, func() {
		if removed, err := store.PurgeStale(cfg.Audio.MaxAge()); err != nil {
			log.Printf("Audio cleanup failed: %v", err)
		} else if removed > 0 {
			log.Printf("Purged %d stale audio files", removed)
		}
	}); err != nil {
		log.Fatalf("Invalid cleanup schedule %q: %v", cfg.Audio.CleanupSchedule, err)
	}
	janitor.Start()
	defer janitor.Stop()

	srv, err := server.New(cfg, pipeline, monitor)
	if err != nil {
		log.Fatalf("Failed to create dashboard server: %v", err)
	}

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}

	// Leave nothing behind on a clean shutdown.
	store.Discard()
	log.Println("Shutdown complete")
}
