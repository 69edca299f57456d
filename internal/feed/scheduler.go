package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/juju/clock"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/fr0stylo/campaignfeed/internal/app/ports"
	"github.com/fr0stylo/campaignfeed/internal/observability"
)

const (
	// DefaultRefreshConcurrency bounds how many campaigns refresh in parallel.
	DefaultRefreshConcurrency = 4

	refreshFlightKey = "refresh"
)

// SchedulerConfig holds the dependencies of a Scheduler.
type SchedulerConfig struct {
	Registry    *Registry
	Store       ports.ProcessInstanceReader
	Mapper      Mapper
	Period      time.Duration
	Concurrency int
	Clock       clock.Clock
	Logger      *slog.Logger
}

// Validate checks required fields and fills optional ones.
func (c *SchedulerConfig) Validate() error {
	if c.Registry == nil {
		return errors.New("nil Registry not valid")
	}
	if c.Store == nil {
		return errors.New("nil Store not valid")
	}
	if c.Period <= 0 {
		return fmt.Errorf("refresh period %s not valid", c.Period)
	}
	if c.Mapper == nil {
		c.Mapper = MapProcessInstances
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultRefreshConcurrency
	}
	if c.Clock == nil {
		c.Clock = clock.WallClock
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}

// CycleFailure records one failed store query within a cycle.
type CycleFailure struct {
	Campaign CampaignID `json:"campaign"`
	Channel  Channel    `json:"channel"`
	Error    string     `json:"error"`
}

// CycleReport summarizes one refresh cycle.
type CycleReport struct {
	StartedAt time.Time       `json:"startedAt"`
	Duration  time.Duration   `json:"duration"`
	Campaigns int             `json:"campaigns"`
	Appended  map[Channel]int `json:"appended"`
	Failures  []CycleFailure  `json:"failures,omitempty"`
}

type cursorKey struct {
	campaign CampaignID
	channel  Channel
}

// Scheduler periodically pulls completed process instances for every known
// campaign and appends them to the campaign buffers. Cycles never overlap.
//
// Each (campaign, channel) pair keeps the end of its last successful window;
// the next query starts there, so a failed or overrunning cycle does not open a
// gap. A pair seen for the first time starts one period back.
type Scheduler struct {
	cfg     SchedulerConfig
	flight  singleflight.Group
	metrics feedMetrics

	mu      sync.Mutex
	cursors map[cursorKey]time.Time
	base    context.Context

	wg sync.WaitGroup
}

// NewScheduler validates cfg and creates a Scheduler.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		cfg:     cfg,
		metrics: newFeedMetrics(),
		cursors: make(map[cursorKey]time.Time),
	}, nil
}

// Start runs a refresh cycle every period until ctx is cancelled.
// Cycles triggered through Refresh run under this ctx as well.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.base = ctx
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

// Wait blocks until the loop started by Start exits.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	timer := s.cfg.Clock.NewTimer(s.cfg.Period)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			started := s.cfg.Clock.Now()
			// Wait out the cycle even after ctx ends so Wait covers its store calls.
			<-s.join(ctx)

			// An overrun fires the next cycle immediately instead of stacking.
			next := s.cfg.Period - s.cfg.Clock.Now().Sub(started)
			if next < 0 {
				next = 0
			}
			timer.Reset(next)
		}
	}
}

// Refresh runs one cycle. A call made while a cycle is in flight waits for that
// cycle and returns its report. The cycle does not run under ctx: cancelling
// ctx only stops this caller from waiting.
func (s *Scheduler) Refresh(ctx context.Context) (CycleReport, error) {
	select {
	case res := <-s.join(ctx):
		return res.Val.(CycleReport), nil
	case <-ctx.Done():
		return CycleReport{}, ctx.Err()
	}
}

func (s *Scheduler) join(ctx context.Context) <-chan singleflight.Result {
	cycleCtx := s.cycleContext(ctx)
	return s.flight.DoChan(refreshFlightKey, func() (interface{}, error) {
		return s.runCycle(cycleCtx), nil
	})
}

// cycleContext returns the ctx given to Start, or ctx stripped of its
// cancellation when the loop is not running.
func (s *Scheduler) cycleContext(ctx context.Context) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.base != nil {
		return s.base
	}
	return context.WithoutCancel(ctx)
}

func (s *Scheduler) runCycle(ctx context.Context) CycleReport {
	until := s.cfg.Clock.Now()
	campaigns := s.cfg.Registry.Known()
	report := CycleReport{
		StartedAt: until,
		Campaigns: len(campaigns),
		Appended:  make(map[Channel]int, len(Channels)),
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for _, id := range campaigns {
		g.Go(func() error {
			appended, failures := s.refreshCampaign(ctx, id, until)
			mu.Lock()
			for channel, count := range appended {
				report.Appended[channel] += count
			}
			report.Failures = append(report.Failures, failures...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = s.cfg.Clock.Now().Sub(until)
	s.metrics.recordCycle(ctx, report)
	s.cfg.Logger.Debug("feed_refresh_cycle",
		"campaigns", report.Campaigns,
		"processed", report.Appended[ChannelProcessed],
		"discarded", report.Appended[ChannelDiscarded],
		"failures", len(report.Failures),
		"duration_ms", report.Duration.Milliseconds(),
	)
	if report.Duration > s.cfg.Period {
		s.cfg.Logger.Warn("feed_refresh_overrun",
			"duration_ms", report.Duration.Milliseconds(),
			"period_ms", s.cfg.Period.Milliseconds(),
		)
	}
	return report
}

func (s *Scheduler) refreshCampaign(ctx context.Context, id CampaignID, until time.Time) (map[Channel]int, []CycleFailure) {
	ctx, span := observability.StartFeedSpan(ctx, "feed.refresh_campaign", string(id))
	defer span.End()

	campaign := s.cfg.Registry.GetOrCreate(id)
	appended := make(map[Channel]int, len(Channels))
	var failures []CycleFailure

	for _, channel := range Channels {
		since := s.cursor(id, channel, until)
		records, err := s.query(ctx, id, channel, since, until)
		if err != nil {
			span.RecordError(err)
			if ctx.Err() == nil {
				s.cfg.Logger.WarnContext(ctx, "feed_refresh_query_failed",
					"campaign", id,
					"channel", channel,
					"since", since,
					"error", err,
				)
			}
			failures = append(failures, CycleFailure{Campaign: id, Channel: channel, Error: err.Error()})
			continue
		}

		items := s.cfg.Mapper(id, channel, records)
		campaign.Buffer(channel).Append(items...)
		appended[channel] += len(items)
		s.advance(id, channel, until)
	}
	return appended, failures
}

func (s *Scheduler) query(ctx context.Context, id CampaignID, channel Channel, since, until time.Time) ([]ports.ProcessInstance, error) {
	switch channel {
	case ChannelProcessed:
		return s.cfg.Store.FindCompletedAndMatchedSince(ctx, string(id), since, until)
	case ChannelDiscarded:
		return s.cfg.Store.FindCompletedAndDiscardedSince(ctx, string(id), since, until)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}
}

func (s *Scheduler) cursor(id CampaignID, channel Channel, until time.Time) time.Time {
	key := cursorKey{campaign: id, channel: channel}
	s.mu.Lock()
	defer s.mu.Unlock()
	since, ok := s.cursors[key]
	if !ok {
		// Pinned before the first query so a failed first window is retried.
		since = until.Add(-s.cfg.Period)
		s.cursors[key] = since
	}
	return since
}

func (s *Scheduler) advance(id CampaignID, channel Channel, until time.Time) {
	s.mu.Lock()
	s.cursors[cursorKey{campaign: id, channel: channel}] = until
	s.mu.Unlock()
}
