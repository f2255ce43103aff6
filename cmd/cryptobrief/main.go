package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dwkim-dev/cryptobrief/internal/config"
	"github.com/dwkim-dev/cryptobrief/internal/engine"
	"github.com/dwkim-dev/cryptobrief/internal/logger"
	"github.com/dwkim-dev/cryptobrief/internal/mailer"
	"github.com/dwkim-dev/cryptobrief/internal/models"
	"github.com/dwkim-dev/cryptobrief/internal/report"
	"github.com/dwkim-dev/cryptobrief/internal/sources"
	"github.com/dwkim-dev/cryptobrief/internal/storage"
	"github.com/dwkim-dev/cryptobrief/internal/telegram"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	store, err := storage.New(cfg.Storage.MaxCycles, cfg.Storage.DBPath)
	if err != nil {
		logger.Fatal("Failed to initialize storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage: %v", err)
		}
	}()

	collector := sources.New(sources.Config{
		CoinGeckoURL:      cfg.Sources.CoinGeckoURL,
		FearGreedURL:      cfg.Sources.FearGreedURL,
		FREDURL:           cfg.Sources.FREDURL,
		FREDAPIKey:        cfg.Sources.FREDAPIKey,
		BinanceFuturesURL: cfg.Sources.BinanceFuturesURL,
		BinanceSpotURL:    cfg.Sources.BinanceSpotURL,
		UpbitURL:          cfg.Sources.UpbitURL,
		FXURL:             cfg.Sources.FXURL,
		DefiLlamaURL:      cfg.Sources.DefiLlamaURL,
		Timeout:           cfg.Sources.Timeout,
		MaxRetries:        cfg.Sources.MaxRetries,
		Pace:              cfg.Sources.Pace,
	})

	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		logger.Info("Telegram client initialized successfully")
	} else {
		logger.Debug("Telegram delivery disabled")
	}

	var mail *mailer.Mailer
	if cfg.Email.Enabled {
		mail, err = mailer.New(cfg.Email.Host, cfg.Email.Port, cfg.Email.Username, cfg.Email.Password, cfg.Email.From, cfg.Email.To)
		if err != nil {
			logger.Fatal("Failed to initialize mailer: %v", err)
		}
		logger.Info("SMTP mailer initialized for %d recipient(s)", len(cfg.Email.To))
	} else {
		logger.Debug("Email delivery disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	briefRequests := make(chan struct{}, 1)
	if cfg.Telegram.Enabled && telegramClient != nil {
		telegramClient.ListenForCommands(ctx, briefRequests)
	}

	logger.Info("Starting briefing service (interval: %v, aggregation: %v, history cap: %d cycles)",
		cfg.Report.Interval,
		cfg.Engine.Aggregation,
		cfg.Storage.MaxCycles,
	)

	ticker := time.NewTicker(cfg.Report.Interval)
	defer ticker.Stop()

	consecutiveFailures := 0

	handleCycleResult := func(err error) {
		if err != nil {
			consecutiveFailures++
			logger.Error("Briefing cycle failed: %v", err)
			if consecutiveFailures == 1 && cfg.Telegram.Enabled && telegramClient != nil {
				if sendErr := telegramClient.SendError(err); sendErr != nil {
					logger.Warn("Failed to send error notification to Telegram: %v", sendErr)
				}
			}
		} else {
			if consecutiveFailures > 0 && cfg.Telegram.Enabled && telegramClient != nil {
				if sendErr := telegramClient.SendRecovery(consecutiveFailures); sendErr != nil {
					logger.Warn("Failed to send recovery notification to Telegram: %v", sendErr)
				}
			}
			consecutiveFailures = 0
		}
	}

	logger.Debug("Running initial briefing cycle")
	handleCycleResult(runBriefingCycle(ctx, collector, store, telegramClient, mail, cfg))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Service stopped")
			return

		case <-ticker.C:
			logger.Debug("Starting scheduled briefing cycle")
			handleCycleResult(runBriefingCycle(ctx, collector, store, telegramClient, mail, cfg))

		case <-briefRequests:
			logger.Info("On-demand briefing requested via Telegram")
			handleCycleResult(runBriefingCycle(ctx, collector, store, telegramClient, mail, cfg))
		}
	}
}

func runBriefingCycle(
	ctx context.Context,
	collector *sources.Collector,
	store *storage.Storage,
	telegramClient *telegram.Client,
	mail *mailer.Mailer,
	cfg *config.Config,
) error {
	startTime := time.Now()
	logger.Info("Starting briefing cycle")

	snap, mktCtx := collector.Collect(ctx)
	present := presentCount(snap)
	logger.Info("Collected snapshot: %d of %d metrics present", present, len(snap))

	ev, err := engine.Evaluate(snap, engine.Options{Aggregation: cfg.Engine.Aggregation})
	if err != nil {
		return fmt.Errorf("failed to evaluate snapshot: %w", err)
	}
	if ev.Verdict != nil {
		logger.Info("Verdict: %s (bullish %d, bearish %d)", ev.Verdict.Call, ev.Verdict.Bullish, ev.Verdict.Bearish)
	}

	if prev, err := store.LatestCycle(); err != nil {
		logger.Warn("Failed to load previous cycle: %v", err)
	} else if change, ok := verdictChange(prev, ev.Verdict); ok {
		logger.Info("%s", change)
	}

	generatedAt := time.Now()
	in := report.Input{
		Snapshot:    snap,
		Context:     mktCtx,
		Tiers:       ev.Tiers,
		Verdict:     ev.Verdict,
		GeneratedAt: generatedAt,
	}

	var telegramErr, mailErr error
	if telegramClient != nil {
		if telegramErr = telegramClient.SendBriefing(report.Markdown(in)); telegramErr != nil {
			logger.Error("Failed to deliver briefing to Telegram: %v", telegramErr)
		} else {
			logger.Info("Delivered briefing to Telegram")
		}
	}

	if mail != nil {
		subject := "Daily Crypto Briefing " + generatedAt.Format("2006-01-02")
		if mailErr = mail.Send(subject, report.HTML(in)); mailErr != nil {
			logger.Error("Failed to deliver briefing via email: %v", mailErr)
		} else {
			logger.Info("Delivered briefing via email")
		}
	}

	rec := ev.Record(uuid.New().String(), generatedAt)
	if oi, ok := mktCtx.BTCOpenInterest.Get(); ok {
		rec.BTCOpenInterest = &oi
	}
	if err := store.AddCycle(rec); err != nil {
		logger.Warn("Failed to persist cycle record: %v", err)
	}
	if n, err := store.CountSince(generatedAt.Add(-24 * time.Hour)); err == nil {
		logger.Debug("%d briefing cycle(s) recorded in the last 24h", n)
	}

	logger.Info("Briefing cycle completed in %v", time.Since(startTime))
	return cycleError(present, len(snap), telegramErr, mailErr)
}

// cycleError classifies a finished cycle. A snapshot with nothing in it or a
// failed delivery counts as a cycle failure and drives the error/recovery
// notices; partial upstream outages do not, the briefing still went out.
func cycleError(present, total int, telegramErr, mailErr error) error {
	if present == 0 {
		return fmt.Errorf("all %d metric fetches failed", total)
	}
	if telegramErr != nil {
		return fmt.Errorf("telegram delivery failed: %w", telegramErr)
	}
	if mailErr != nil {
		return fmt.Errorf("email delivery failed: %w", mailErr)
	}
	return nil
}

// verdictChange describes a call flip relative to the previous recorded cycle.
func verdictChange(prev *models.CycleRecord, v *engine.Verdict) (string, bool) {
	if prev == nil || v == nil || prev.Verdict == "" {
		return "", false
	}
	if prev.Verdict == string(v.Call) {
		return "", false
	}
	return fmt.Sprintf("Verdict changed from %s to %s", prev.Verdict, v.Call), true
}

func presentCount(snap models.Snapshot) int {
	n := 0
	for _, m := range snap {
		if !m.Absent() {
			n++
		}
	}
	return n
}
