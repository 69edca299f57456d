package routes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/campaignfeed/internal/feed"
)

// FeedRoutes serves campaign feeds as server-sent events.
type FeedRoutes struct {
	streamer *feed.Streamer
	log      *slog.Logger
}

// NewFeedRoutes constructs feed stream routes.
func NewFeedRoutes(streamer *feed.Streamer, log *slog.Logger) *FeedRoutes {
	if log == nil {
		log = slog.Default()
	}
	return &FeedRoutes{streamer: streamer, log: log}
}

// RegisterRoutes registers feed stream endpoints.
func (f *FeedRoutes) RegisterRoutes(s *echo.Echo) {
	reactive := s.Group("/reactive")
	reactive.GET("/processed/:campaign", f.handleStream(feed.ChannelProcessed))
	reactive.GET("/discarded/:campaign", f.handleStream(feed.ChannelDiscarded))
}

// handleStream writes the full channel snapshot every tick. The page and size
// query parameters are accepted for client compatibility and ignored.
func (f *FeedRoutes) handleStream(channel feed.Channel) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := feed.ParseCampaignID(c.Param("campaign"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		res := c.Response()
		flusher, ok := res.Writer.(http.Flusher)
		if !ok {
			return fmt.Errorf("streaming unsupported")
		}

		ctx := c.Request().Context()
		sub, err := f.streamer.Subscribe(ctx, id, channel)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		defer sub.Close()

		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set(echo.HeaderCacheControl, "no-cache")
		res.Header().Set(echo.HeaderConnection, "keep-alive")
		res.WriteHeader(http.StatusOK)
		flusher.Flush()

		f.log.DebugContext(ctx, "feed_stream_opened", "campaign", id, "channel", channel)
		defer f.log.DebugContext(ctx, "feed_stream_closed", "campaign", id, "channel", channel)

		for {
			select {
			case <-ctx.Done():
				return nil
			case batch, ok := <-sub.C():
				if !ok {
					return nil
				}
				if err := writeBatch(res, batch); err != nil {
					return nil
				}
				flusher.Flush()
			}
		}
	}
}

func writeBatch(res *echo.Response, batch []feed.Item) error {
	if len(batch) == 0 {
		_, err := fmt.Fprint(res, ": keep-alive\n\n")
		return err
	}
	for _, item := range batch {
		payload, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(res, "id: %s\ndata: %s\n\n", item.ID, payload); err != nil {
			return err
		}
	}
	return nil
}
