package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/campaignfeed/internal/feed"
)

// Refresher runs one refresh cycle on demand.
type Refresher interface {
	Refresh(ctx context.Context) (feed.CycleReport, error)
}

// Pinger reports backing store health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// APIRoutes registers API endpoints.
type APIRoutes struct {
	registry  *feed.Registry
	refresher Refresher
	store     Pinger
}

// NewAPIRoutes constructs campaign API routes.
func NewAPIRoutes(registry *feed.Registry, refresher Refresher, store Pinger) *APIRoutes {
	return &APIRoutes{registry: registry, refresher: refresher, store: store}
}

type campaignSummary struct {
	Campaign  feed.CampaignID `json:"campaign"`
	Processed int             `json:"processed"`
	Discarded int             `json:"discarded"`
}

type refreshResponse struct {
	StartedAt  time.Time           `json:"startedAt"`
	DurationMS int64               `json:"durationMs"`
	Campaigns  int                 `json:"campaigns"`
	Processed  int                 `json:"processed"`
	Discarded  int                 `json:"discarded"`
	Failures   []feed.CycleFailure `json:"failures"`
}

// RegisterRoutes registers API endpoints.
func (a *APIRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/health", a.handleHealth)

	api := s.Group("/api/v1")
	api.GET("/campaigns", a.handleListCampaigns)
	api.GET("/campaigns/:campaign/:channel", a.handleSnapshot)
	api.POST("/refresh", a.handleRefresh)
}

func (a *APIRoutes) handleHealth(c echo.Context) error {
	if a.store != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := a.store.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *APIRoutes) handleListCampaigns(c echo.Context) error {
	known := a.registry.Known()
	out := make([]campaignSummary, 0, len(known))
	for _, id := range known {
		campaign, ok := a.registry.Lookup(id)
		if !ok {
			continue
		}
		out = append(out, campaignSummary{
			Campaign:  id,
			Processed: campaign.Processed.Len(),
			Discarded: campaign.Discarded.Len(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// handleSnapshot returns the current buffer contents without registering the campaign.
func (a *APIRoutes) handleSnapshot(c echo.Context) error {
	id, err := feed.ParseCampaignID(c.Param("campaign"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	channel, err := feed.ParseChannel(c.Param("channel"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	campaign, ok := a.registry.Lookup(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown campaign")
	}
	items := campaign.Buffer(channel).Snapshot()
	if items == nil {
		items = []feed.Item{}
	}
	return c.JSON(http.StatusOK, items)
}

func (a *APIRoutes) handleRefresh(c echo.Context) error {
	report, err := a.refresher.Refresh(c.Request().Context())
	if err != nil {
		return err
	}
	failures := report.Failures
	if failures == nil {
		failures = []feed.CycleFailure{}
	}
	return c.JSON(http.StatusOK, refreshResponse{
		StartedAt:  report.StartedAt,
		DurationMS: report.Duration.Milliseconds(),
		Campaigns:  report.Campaigns,
		Processed:  report.Appended[feed.ChannelProcessed],
		Discarded:  report.Appended[feed.ChannelDiscarded],
		Failures:   failures,
	})
}
