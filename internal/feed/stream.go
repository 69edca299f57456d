package feed

import (
	"context"
	"time"

	"github.com/juju/clock"
)

// DefaultStreamInterval is the tick interval of a subscription.
const DefaultStreamInterval = 5 * time.Second

// Streamer creates periodic snapshot subscriptions over registry buffers.
type Streamer struct {
	registry *Registry
	interval time.Duration
	clock    clock.Clock
	metrics  feedMetrics
}

// NewStreamer creates a Streamer. A non-positive interval falls back to
// DefaultStreamInterval and a nil clock to the wall clock.
func NewStreamer(registry *Registry, interval time.Duration, clk clock.Clock) *Streamer {
	if interval <= 0 {
		interval = DefaultStreamInterval
	}
	if clk == nil {
		clk = clock.WallClock
	}
	return &Streamer{
		registry: registry,
		interval: interval,
		clock:    clk,
		metrics:  newFeedMetrics(),
	}
}

// Interval returns the tick interval.
func (s *Streamer) Interval() time.Duration {
	return s.interval
}

// Subscribe registers interest in a campaign channel and starts emitting the
// channel's full snapshot once per interval. The subscription ends when ctx is
// cancelled or Close is called.
func (s *Streamer) Subscribe(ctx context.Context, id CampaignID, channel Channel) (*Subscription, error) {
	if id == "" {
		return nil, ErrInvalidCampaign
	}
	if !channel.Valid() {
		return nil, ErrInvalidChannel
	}
	buffer := s.registry.GetOrCreate(id).Buffer(channel)

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		Campaign: id,
		Channel:  channel,
		batches:  make(chan []Item, 1),
		done:     make(chan struct{}),
		cancel:   cancel,
	}

	s.metrics.recordSubscription(ctx, channel, 1)
	go func() {
		defer s.metrics.recordSubscription(context.WithoutCancel(ctx), channel, -1)
		sub.run(ctx, buffer, s.clock, s.interval)
	}()
	return sub, nil
}

// Subscription is one consumer's periodic view of a campaign channel.
type Subscription struct {
	Campaign CampaignID
	Channel  Channel

	batches chan []Item
	done    chan struct{}
	cancel  context.CancelFunc
}

// C delivers one cumulative snapshot per tick. It is closed when the
// subscription ends. A batch the consumer has not taken by the next tick is
// replaced by the newer one, so a slow consumer only ever sees the latest.
func (s *Subscription) C() <-chan []Item {
	return s.batches
}

// Done is closed once the subscription has stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close cancels the subscription and waits for its timer to be released.
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

func (s *Subscription) run(ctx context.Context, buffer *Buffer, clk clock.Clock, interval time.Duration) {
	defer close(s.done)
	defer close(s.batches)

	timer := clk.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			s.deliver(buffer.Snapshot())
			timer.Reset(interval)
		}
	}
}

func (s *Subscription) deliver(batch []Item) {
	if batch == nil {
		batch = []Item{}
	}
	select {
	case s.batches <- batch:
		return
	default:
	}
	// Drop the stale batch; the new one is a superset of it.
	select {
	case <-s.batches:
	default:
	}
	select {
	case s.batches <- batch:
	default:
	}
}
