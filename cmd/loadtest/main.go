// Command loadtest drives a configurable message storm through the runtime
// and reports throughput. Prometheus metrics are exposed while it runs.
//
// Run with: go run . [-config loadtest.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	promadapter "github.com/codewandler/loom-go/adapters/prometheus"
	"github.com/codewandler/loom-go/core/actor"
	"github.com/codewandler/loom-go/core/promise"
)

// Config is the loadtest shape, read from YAML. Zero fields fall back to the
// defaults below.
type Config struct {
	// Schedulers is the number of runtime schedulers.
	Schedulers int `yaml:"schedulers"`
	// Actors is the number of target actors, spread over the schedulers.
	Actors int `yaml:"actors"`
	// Senders is the number of producer goroutines.
	Senders int `yaml:"senders"`
	// MessagesPerSender is how many closures each producer sends.
	MessagesPerSender int `yaml:"messages_per_sender"`
	// ReportEvery batches the progress log.
	ReportEvery int `yaml:"report_every"`
	// PromAddr is the Prometheus listen address, empty disables it.
	PromAddr string `yaml:"prom_addr"`
}

func defaultConfig() Config {
	return Config{
		Schedulers:        runtime.NumCPU(),
		Actors:            64,
		Senders:           8,
		MessagesPerSender: 250_000,
		ReportEvery:       500_000,
		PromAddr:          ":2121",
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// target just counts what it receives.
type target struct {
	actor.Base
	received int
}

func (t *target) hit() { t.received++ }

func (t *target) drain(p promise.Promise[int]) { p.SetValue(t.received) }

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error("config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(log, cfg); err != nil {
		log.Error("loadtest failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(log *slog.Logger, cfg Config) error {
	log.Info("loadtest config",
		slog.Int("schedulers", cfg.Schedulers),
		slog.Int("actors", cfg.Actors),
		slog.Int("senders", cfg.Senders),
		slog.Int("messages_per_sender", cfg.MessagesPerSender),
	)

	reg := prometheus.NewRegistry()
	rtMetrics := promadapter.NewRuntimeMetrics(reg)

	if cfg.PromAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.PromAddr, Handler: mux}
		go func() {
			log.Info("metrics listening", slog.String("addr", cfg.PromAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server", slog.Any("error", err))
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	rt := actor.New(actor.Options{
		Schedulers:     cfg.Schedulers,
		BackgroundMain: true,
		Logger:         log,
		Metrics:        rtMetrics,
	})
	rt.Start()

	owns := make([]actor.ActorOwn[target], cfg.Actors)
	ids := make([]actor.ActorID[target], cfg.Actors)
	for i := range owns {
		owns[i] = actor.CreateActor(rt, fmt.Sprintf("target-%d", i), &target{})
		ids[i] = owns[i].ID()
	}

	total := cfg.Senders * cfg.MessagesPerSender
	start := time.Now()

	var eg errgroup.Group
	for s := range cfg.Senders {
		eg.Go(func() error {
			guard := rt.GetSendGuard()
			defer guard.Release()
			for i := range cfg.MessagesPerSender {
				id := ids[(s*cfg.MessagesPerSender+i)%len(ids)]
				actor.SendClosure(id, func(t *target) { t.hit() })
				if n := s*cfg.MessagesPerSender + i + 1; cfg.ReportEvery > 0 && n%cfg.ReportEvery == 0 {
					log.Info("progress", slog.Int("sent", n))
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	sendDone := time.Since(start)

	// drain: one promise per actor, pushed behind every send
	received := 0
	for i := range ids {
		f, p := promise.NewFuture[int]()
		actor.SendClosure(ids[i], func(t *target) { t.drain(p) })
		n, err := f.Get(context.Background())
		if err != nil {
			return fmt.Errorf("drain target %d: %w", i, err)
		}
		received += n
	}
	took := time.Since(start)

	for i := range owns {
		owns[i].Release()
	}
	rt.Finish()

	if received != total {
		return fmt.Errorf("lost messages: sent %d, received %d", total, received)
	}
	log.Info("loadtest done",
		slog.Int("messages", total),
		slog.Duration("send_took", sendDone),
		slog.Duration("total_took", took),
		slog.Int("msg_per_sec", int(float64(total)/took.Seconds())),
	)
	return nil
}
