package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidCampaign indicates an empty campaign identifier.
	ErrInvalidCampaign = errors.New("invalid campaign")
	// ErrInvalidChannel indicates a channel other than processed or discarded.
	ErrInvalidChannel = errors.New("invalid channel")
)

// CampaignID identifies a campaign. Equality is by value.
type CampaignID string

// ParseCampaignID trims and validates a raw campaign identifier.
func ParseCampaignID(raw string) (CampaignID, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrInvalidCampaign
	}
	return CampaignID(value), nil
}

// Channel partitions a campaign feed.
type Channel string

const (
	// ChannelProcessed carries completed and matched instances.
	ChannelProcessed Channel = "processed"
	// ChannelDiscarded carries completed and discarded instances.
	ChannelDiscarded Channel = "discarded"
)

// Channels lists every channel in refresh order.
var Channels = []Channel{ChannelProcessed, ChannelDiscarded}

// ParseChannel validates a raw channel name.
func ParseChannel(raw string) (Channel, error) {
	channel := Channel(strings.ToLower(strings.TrimSpace(raw)))
	if !channel.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidChannel, raw)
	}
	return channel, nil
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c == ChannelProcessed || c == ChannelDiscarded
}

// Item is one feed event. Items are never mutated once appended.
type Item struct {
	ID        string     `json:"id"`
	Author    string     `json:"author"`
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
	Campaign  CampaignID `json:"campaign"`
	Channel   Channel    `json:"channel"`
}
