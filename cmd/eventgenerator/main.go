package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/fr0stylo/campaignfeed/pkg/eventpublisher"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := eventpublisher.Client{Endpoint: cfg.BaseURL, Token: cfg.Token, Timeout: 10 * time.Second}
	if err := run(ctx, client, cfg, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type publisher interface {
	Publish(ctx context.Context, event eventpublisher.ProcessEvent) (string, error)
}

func run(ctx context.Context, client publisher, cfg config, rng *rand.Rand) error {
	limiter := rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)
	for sent := 0; cfg.Limit <= 0 || sent < cfg.Limit; sent++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		event := nextEvent(cfg, rng)
		if cfg.SendStarted {
			started := event
			started.Type = eventpublisher.ProcessStartedType
			if _, err := client.Publish(ctx, started); err != nil {
				fmt.Fprintln(os.Stderr, "publish started:", err)
				continue
			}
		}
		id, err := client.Publish(ctx, event)
		if err != nil {
			fmt.Fprintln(os.Stderr, "publish completed:", err)
			continue
		}
		fmt.Printf("Published %s campaign=%s instance=%s outcome=%s\n", id, event.Campaign, event.InstanceID, event.Outcome)
	}
	return nil
}

func nextEvent(cfg config, rng *rand.Rand) eventpublisher.ProcessEvent {
	outcome := "matched"
	if rng.Float64() < cfg.DiscardRatio {
		outcome = "discarded"
	}
	instanceID := uuid.NewString()
	return eventpublisher.ProcessEvent{
		Type:        eventpublisher.ProcessCompletedType,
		Source:      cfg.Source,
		InstanceID:  instanceID,
		Campaign:    cfg.Campaigns[rng.IntN(len(cfg.Campaigns))],
		Author:      cfg.Authors[rng.IntN(len(cfg.Authors))],
		Content:     fmt.Sprintf("generated post %s", instanceID[:8]),
		Outcome:     outcome,
		CompletedAt: time.Now().UTC(),
	}
}
