package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fr0stylo/campaignfeed/pkg/eventpublisher"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file loaded:", err)
	}
	v := viper.New()
	v.AutomaticEnv()

	endpoint := flag.String("endpoint", strings.TrimSpace(v.GetString("FEED_ENDPOINT")), "Feed server base URL (or FEED_ENDPOINT)")
	token := flag.String("token", strings.TrimSpace(v.GetString("FEED_INGEST_TOKEN")), "Ingest token (or FEED_INGEST_TOKEN)")
	eventType := flag.String("type", "completed", "Event type: completed or started")
	instanceID := flag.String("instance", "", "Process instance id")
	campaign := flag.String("campaign", "", "Campaign id")
	author := flag.String("author", "", "Author (optional)")
	content := flag.String("content", "", "Content (optional)")
	outcome := flag.String("outcome", "matched", "Outcome for completed events: matched or discarded")
	completedAt := flag.String("completed-at", "", "Completion time in RFC3339 (defaults to now)")
	source := flag.String("source", strings.TrimSpace(v.GetString("FEED_EVENT_SOURCE")), "Event source")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout")
	flag.Parse()

	if strings.TrimSpace(*endpoint) == "" {
		exitErr("endpoint is required (or set FEED_ENDPOINT)")
	}

	var completed time.Time
	if value := strings.TrimSpace(*completedAt); value != "" {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			exitErr(fmt.Sprintf("invalid completed-at: %v", err))
		}
		completed = parsed
	}

	client := eventpublisher.Client{
		Endpoint: strings.TrimSpace(*endpoint),
		Token:    strings.TrimSpace(*token),
		Timeout:  *timeout,
	}
	id, err := client.Publish(context.Background(), eventpublisher.ProcessEvent{
		Type:        strings.TrimSpace(*eventType),
		Source:      strings.TrimSpace(*source),
		InstanceID:  strings.TrimSpace(*instanceID),
		Campaign:    strings.TrimSpace(*campaign),
		Author:      strings.TrimSpace(*author),
		Content:     *content,
		Outcome:     strings.TrimSpace(*outcome),
		CompletedAt: completed,
	})
	if err != nil {
		exitErr(err.Error())
	}

	fmt.Printf("Published %s for instance=%s campaign=%s\n", id, strings.TrimSpace(*instanceID), strings.TrimSpace(*campaign))
}

func exitErr(message string) {
	fmt.Fprintln(os.Stderr, message)
	os.Exit(1)
}
