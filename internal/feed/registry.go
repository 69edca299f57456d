package feed

import (
	"sort"
	"sync"
)

// Campaign holds the two channel buffers of one campaign.
type Campaign struct {
	ID        CampaignID
	Processed *Buffer
	Discarded *Buffer
}

// Buffer returns the buffer for channel, or nil for an unknown channel.
func (c *Campaign) Buffer(channel Channel) *Buffer {
	switch channel {
	case ChannelProcessed:
		return c.Processed
	case ChannelDiscarded:
		return c.Discarded
	default:
		return nil
	}
}

// Registry maps campaign identifiers to their buffers. Entries are created
// lazily and never removed.
type Registry struct {
	mu        sync.RWMutex
	campaigns map[CampaignID]*Campaign
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{campaigns: make(map[CampaignID]*Campaign)}
}

// GetOrCreate returns the campaign's buffers, creating them on first use.
// Concurrent callers for the same id always observe the same instance.
func (r *Registry) GetOrCreate(id CampaignID) *Campaign {
	r.mu.RLock()
	campaign, ok := r.campaigns[id]
	r.mu.RUnlock()
	if ok {
		return campaign
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if campaign, ok := r.campaigns[id]; ok {
		return campaign
	}
	campaign = &Campaign{ID: id, Processed: &Buffer{}, Discarded: &Buffer{}}
	r.campaigns[id] = campaign
	return campaign
}

// Lookup returns a registered campaign without creating it.
func (r *Registry) Lookup(id CampaignID) (*Campaign, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	campaign, ok := r.campaigns[id]
	return campaign, ok
}

// Known returns the registered campaign ids in lexical order.
func (r *Registry) Known() []CampaignID {
	r.mu.RLock()
	ids := make([]CampaignID, 0, len(r.campaigns))
	for id := range r.campaigns {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of registered campaigns.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.campaigns)
}
