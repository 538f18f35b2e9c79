// ABOUTME: Read-only accessors, lookups and filters over the catalog fixtures
// ABOUTME: Every accessor returns copies so callers can never mutate the catalog
package catalog

import (
	"github.com/harperreed/nexus/models"
)

// Entity type filters accepted by FilterEntities.
const (
	FilterAll      = "all"
	FilterPerson   = models.EntityPerson
	FilterBusiness = models.EntityBusiness
)

// Inbox filters accepted by FilterInbox.
const (
	InboxAll      = "all"
	InboxMessages = "messages"
	InboxSystem   = "system"
)

func copyEntity(e models.Entity) models.Entity {
	if e.Coords != nil {
		c := *e.Coords
		e.Coords = &c
	}
	return e
}

func Entities() []models.Entity {
	out := make([]models.Entity, len(entities))
	for i, e := range entities {
		out[i] = copyEntity(e)
	}
	return out
}

func People() []models.Entity {
	return FilterEntities(FilterPerson)
}

func Businesses() []models.Entity {
	return FilterEntities(FilterBusiness)
}

// FilterEntities narrows by type; any unrecognised filter behaves like "all".
func FilterEntities(typeFilter string) []models.Entity {
	var out []models.Entity
	for _, e := range entities {
		if typeFilter == FilterPerson || typeFilter == FilterBusiness {
			if e.Type != typeFilter {
				continue
			}
		}
		out = append(out, copyEntity(e))
	}
	return out
}

func EntityByID(id int) (models.Entity, bool) {
	for _, e := range entities {
		if e.ID == id {
			return copyEntity(e), true
		}
	}
	return models.Entity{}, false
}

// EntitiesByIDs resolves ids in order, skipping ids that are not in the catalog.
func EntitiesByIDs(ids []int) []models.Entity {
	var out []models.Entity
	for _, id := range ids {
		if e, ok := EntityByID(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func Channels() []models.Channel {
	return append([]models.Channel(nil), channels...)
}

func ChannelByID(id string) (models.Channel, bool) {
	for _, c := range channels {
		if c.ID == id {
			return c, true
		}
	}
	return models.Channel{}, false
}

// ChannelsByIDs resolves channel ids in order, omitting unknown ids.
func ChannelsByIDs(ids []string) []models.Channel {
	var out []models.Channel
	for _, id := range ids {
		if c, ok := ChannelByID(id); ok {
			out = append(out, c)
		}
	}
	return out
}

func Products() []models.Product {
	return append([]models.Product(nil), products...)
}

func ProductByName(name string) (models.Product, bool) {
	for _, p := range products {
		if p.Name == name {
			return p, true
		}
	}
	return models.Product{}, false
}

func Campaigns() []models.Campaign {
	out := make([]models.Campaign, len(campaigns))
	for i, c := range campaigns {
		c.Channels = append([]string(nil), c.Channels...)
		out[i] = c
	}
	return out
}

func CampaignByID(id int) (models.Campaign, bool) {
	for _, c := range Campaigns() {
		if c.ID == id {
			return c, true
		}
	}
	return models.Campaign{}, false
}

func Inbox() []models.InboxItem {
	return append([]models.InboxItem(nil), inbox...)
}

func FilterInbox(filter string) []models.InboxItem {
	var out []models.InboxItem
	for _, item := range inbox {
		switch filter {
		case InboxMessages:
			if item.Category != models.InboxCategoryMessage {
				continue
			}
		case InboxSystem:
			if item.Category != models.InboxCategorySystem {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func InboxItemByID(id int) (models.InboxItem, bool) {
	for _, item := range inbox {
		if item.ID == id {
			return item, true
		}
	}
	return models.InboxItem{}, false
}

// UnreadCount feeds the inbox badge on the dock.
func UnreadCount() int {
	n := 0
	for _, item := range inbox {
		if item.Unread {
			n++
		}
	}
	return n
}

func ChatHistory() []models.ChatMessage {
	return append([]models.ChatMessage(nil), chatHistory...)
}

func KPIs() []models.KPI {
	return append([]models.KPI(nil), kpis...)
}

func Funnel() []models.FunnelStage {
	return append([]models.FunnelStage(nil), funnel...)
}

func Plans() []models.Plan {
	return append([]models.Plan(nil), plans...)
}

func Providers() []models.Provider {
	return append([]models.Provider(nil), providers...)
}

func ProvidersIn(category string) []models.Provider {
	var out []models.Provider
	for _, p := range providers {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func ProviderByKey(key string) (models.Provider, bool) {
	for _, p := range providers {
		if p.Key == key {
			return p, true
		}
	}
	return models.Provider{}, false
}

// Groups returns the directory sidebar; the "all" group counts the whole catalog.
func Groups() []Group {
	out := append([]Group(nil), groups...)
	out[0].Count = len(entities)
	return out
}
