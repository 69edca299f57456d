package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/campaignfeed/internal/feed"
)

type stubRefresher struct {
	calls  int
	report feed.CycleReport
}

func (s *stubRefresher) Refresh(ctx context.Context) (feed.CycleReport, error) {
	s.calls++
	return s.report, nil
}

type stubPinger struct {
	err error
}

func (s stubPinger) PingContext(ctx context.Context) error {
	return s.err
}

func newAPI(registry *feed.Registry, refresher Refresher, pinger Pinger) *echo.Echo {
	e := echo.New()
	NewAPIRoutes(registry, refresher, pinger).RegisterRoutes(e)
	return e
}

func TestAPIListsCampaignsWithBufferSizes(t *testing.T) {
	registry := feed.NewRegistry()
	registry.GetOrCreate("beta").Discarded.Append(feed.Item{ID: "d1"})
	registry.GetOrCreate("alpha").Processed.Append(feed.Item{ID: "p1"}, feed.Item{ID: "p2"})

	rec := httptest.NewRecorder()
	newAPI(registry, &stubRefresher{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var got []campaignSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].Campaign != "alpha" || got[0].Processed != 2 || got[1].Discarded != 1 {
		t.Fatalf("unexpected campaigns: %+v", got)
	}
}

func TestAPISnapshotDoesNotRegisterCampaigns(t *testing.T) {
	registry := feed.NewRegistry()
	registry.GetOrCreate("alpha").Processed.Append(feed.Item{ID: "p1"})
	e := newAPI(registry, &stubRefresher{}, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/alpha/processed", nil))
	var items []feed.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil || len(items) != 1 || items[0].ID != "p1" {
		t.Fatalf("unexpected snapshot: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/ghost/processed", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown campaign, got %d", rec.Code)
	}
	if registry.Len() != 1 {
		t.Fatal("snapshot lookup must not create campaigns")
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/alpha/archived", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown channel, got %d", rec.Code)
	}
}

func TestAPIRefreshReturnsCycleReport(t *testing.T) {
	refresher := &stubRefresher{report: feed.CycleReport{
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Campaigns: 2,
		Appended:  map[feed.Channel]int{feed.ChannelProcessed: 3, feed.ChannelDiscarded: 1},
		Failures:  []feed.CycleFailure{{Campaign: "a", Channel: feed.ChannelProcessed, Error: "timeout"}},
	}}

	rec := httptest.NewRecorder()
	newAPI(feed.NewRegistry(), refresher, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))
	if rec.Code != http.StatusOK || refresher.calls != 1 {
		t.Fatalf("unexpected refresh: status=%d calls=%d", rec.Code, refresher.calls)
	}
	var got refreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.DurationMS != 1500 || got.Processed != 3 || got.Discarded != 1 || len(got.Failures) != 1 {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestAPIHealthReflectsStore(t *testing.T) {
	rec := httptest.NewRecorder()
	newAPI(feed.NewRegistry(), &stubRefresher{}, stubPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthy, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	newAPI(feed.NewRegistry(), &stubRefresher{}, stubPinger{err: errors.New("closed")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
