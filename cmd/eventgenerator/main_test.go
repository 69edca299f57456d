package main

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fr0stylo/campaignfeed/pkg/eventpublisher"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventpublisher.ProcessEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event eventpublisher.ProcessEvent) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return event.InstanceID, nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "generator.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "base_url: http://localhost:8080\ncampaigns: [\" launch2024 \", \"\"]\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Campaigns) != 1 || cfg.Campaigns[0] != "launch2024" {
		t.Fatalf("unexpected campaigns: %v", cfg.Campaigns)
	}
	if cfg.Rate != 1 || cfg.Burst != 1 || cfg.Source != "eventgenerator" || len(cfg.Authors) == 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"missing campaigns": "base_url: http://localhost:8080\n",
		"negative rate":     "base_url: http://localhost:8080\ncampaigns: [a]\nrate: -1\n",
		"bad ratio":         "base_url: http://localhost:8080\ncampaigns: [a]\ndiscard_ratio: 2\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := loadConfig(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestRunPublishesUpToLimit(t *testing.T) {
	publisher := &recordingPublisher{}
	cfg := config{
		Campaigns:    []string{"a", "b"},
		Authors:      []string{"ada"},
		Rate:         1000,
		Burst:        10,
		DiscardRatio: 1,
		SendStarted:  true,
		Limit:        3,
	}
	if err := run(context.Background(), publisher, cfg, rand.New(rand.NewPCG(1, 2))); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(publisher.events) != 6 {
		t.Fatalf("expected started and completed per instance, got %d events", len(publisher.events))
	}
	for i := 0; i < len(publisher.events); i += 2 {
		started, completed := publisher.events[i], publisher.events[i+1]
		if started.Type != eventpublisher.ProcessStartedType || completed.Type != eventpublisher.ProcessCompletedType {
			t.Fatalf("unexpected event order: %s then %s", started.Type, completed.Type)
		}
		if started.InstanceID != completed.InstanceID || completed.Outcome != "discarded" {
			t.Fatalf("unexpected pair: %+v %+v", started, completed)
		}
	}
}
