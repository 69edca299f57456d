package feed

import (
	"strings"

	"github.com/fr0stylo/campaignfeed/internal/app/ports"
)

const anonymousAuthor = "anonymous"

// Mapper turns backing-store records into feed items for one campaign channel.
// Implementations must be pure.
type Mapper func(campaign CampaignID, channel Channel, records []ports.ProcessInstance) []Item

// MapProcessInstances is the default Mapper. Record order is preserved.
func MapProcessInstances(campaign CampaignID, channel Channel, records []ports.ProcessInstance) []Item {
	if len(records) == 0 {
		return nil
	}
	items := make([]Item, 0, len(records))
	for _, record := range records {
		author := strings.TrimSpace(record.Author)
		if author == "" {
			author = anonymousAuthor
		}
		items = append(items, Item{
			ID:        record.ID,
			Author:    author,
			Content:   record.Content,
			Timestamp: record.CompletedAt.UTC(),
			Campaign:  campaign,
			Channel:   channel,
		})
	}
	return items
}
