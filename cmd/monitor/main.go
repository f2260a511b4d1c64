package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/kdimtricp/trafficwatch/internal/api"
	"github.com/kdimtricp/trafficwatch/internal/config"
	"github.com/kdimtricp/trafficwatch/internal/database"
	"github.com/kdimtricp/trafficwatch/internal/monitor"
	"github.com/kdimtricp/trafficwatch/internal/persist"
	"github.com/kdimtricp/trafficwatch/internal/tracker"
	"github.com/kdimtricp/trafficwatch/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, cfg.DBTable)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	repo := database.NewDetectionRepository(db)

	queue := persist.NewQueue(repo, cfg.QueueCapacity)
	queue.Start()

	conditions := weather.NewClient(cfg.WeatherURL, cfg.WeatherInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var source tracker.Source
	if cfg.ReplayFile != "" {
		source, err = tracker.NewReplay(cfg.ReplayFile)
	} else {
		source, err = tracker.NewSubprocess(ctx, cfg.TrackerCommand[0], cfg.TrackerCommand[1:]...)
	}
	if err != nil {
		log.Fatal("Failed to open frame source: ", err)
	}

	processor := monitor.NewProcessor(monitor.Geometry{
		StartLineX: cfg.StartLineX,
		EndLineX:   cfg.EndLineX,
		Distance:   cfg.LineDistance,
		Margin:     cfg.CrossingMargin,
		UnitFactor: cfg.SpeedUnitFactor,
	})

	service := monitor.NewService(monitor.ServiceConfig{
		Source:     source,
		Processor:  processor,
		Queue:      queue,
		Conditions: conditions,
		Summary:    os.Stdout,
		TrackTTL:   cfg.TrackTTL,
	})

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := service.Run(ctx); err != nil {
			log.Printf("monitor loop terminated: %v", err)
		}
		// Frame stream ended or failed: bring the rest of the process down.
		stop()
	}()

	router := api.NewRouter(&api.App{Detections: repo})
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("failed to start server: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.ListenAddr)
	log.Printf("Database driver: %s", cfg.DBDriver)
	log.Printf("Speed lines: start=%.0f end=%.0f margin=%.0f distance=%.1f",
		cfg.StartLineX, cfg.EndLineX, cfg.CrossingMargin, cfg.LineDistance)

	wg.Wait()

	if err := source.Close(); err != nil {
		log.Printf("frame source close: %v", err)
	}

	// Drain everything enqueued before shutdown, then release the store.
	drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := queue.Shutdown(drainCtx); err != nil {
		log.Printf("queue shutdown: %v", err)
	}

	log.Printf("Persisted %d detections (%d failed), %d tracks still in flight",
		queue.Written(), queue.Failed(), processor.Pending())
}
