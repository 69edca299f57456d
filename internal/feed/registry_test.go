package feed

import (
	"sync"
	"testing"
)

func TestRegistryGetOrCreateIsIdempotentUnderRace(t *testing.T) {
	registry := NewRegistry()

	const callers = 64
	results := make([]*Campaign, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			campaign := registry.GetOrCreate("launch2024")
			campaign.Processed.Append(Item{ID: "from-caller"})
			results[i] = campaign
		}(i)
	}
	close(start)
	wg.Wait()

	for i, campaign := range results {
		if campaign != results[0] {
			t.Fatalf("caller %d observed a different campaign instance", i)
		}
	}
	if registry.Len() != 1 {
		t.Fatalf("expected exactly one campaign, got %d", registry.Len())
	}
	if got := results[0].Processed.Len(); got != callers {
		t.Fatalf("expected %d appended items, got %d", callers, got)
	}
}

func TestRegistryKnownAndLookup(t *testing.T) {
	registry := NewRegistry()
	if _, ok := registry.Lookup("beta"); ok {
		t.Fatal("lookup must not create campaigns")
	}

	registry.GetOrCreate("beta")
	registry.GetOrCreate("alpha")
	registry.GetOrCreate("beta")

	known := registry.Known()
	if len(known) != 2 || known[0] != "alpha" || known[1] != "beta" {
		t.Fatalf("unexpected known campaigns: %v", known)
	}
	if _, ok := registry.Lookup("alpha"); !ok {
		t.Fatal("expected alpha to be registered")
	}
}

func TestRegistryChannelsAreIndependent(t *testing.T) {
	registry := NewRegistry()
	alpha := registry.GetOrCreate("alpha")
	beta := registry.GetOrCreate("beta")

	alpha.Buffer(ChannelProcessed).Append(Item{ID: "p1"})

	if alpha.Buffer(ChannelDiscarded).Len() != 0 {
		t.Fatal("processed append leaked into alpha discarded buffer")
	}
	if beta.Buffer(ChannelProcessed).Len() != 0 || beta.Buffer(ChannelDiscarded).Len() != 0 {
		t.Fatal("alpha append leaked into beta buffers")
	}
	if alpha.Buffer(Channel("other")) != nil {
		t.Fatal("expected nil buffer for unknown channel")
	}
}

func TestParseChannelAndCampaign(t *testing.T) {
	if _, err := ParseChannel("Processed"); err != nil {
		t.Fatalf("expected processed to parse, got %v", err)
	}
	if _, err := ParseChannel("archived"); err == nil {
		t.Fatal("expected error for unknown channel")
	}
	if _, err := ParseCampaignID("   "); err != ErrInvalidCampaign {
		t.Fatalf("expected ErrInvalidCampaign, got %v", err)
	}
	id, err := ParseCampaignID(" launch2024 ")
	if err != nil || id != "launch2024" {
		t.Fatalf("unexpected campaign parse: %q %v", id, err)
	}
}
