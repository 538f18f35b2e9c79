// ABOUTME: Data models for the nexus CRM dashboard
// ABOUTME: Defines Entity, Channel, Product, Campaign, InboxItem, ChatMessage and DraftConfig
package models

import (
	"fmt"
	"time"
)

// Entity types.
const (
	EntityPerson   = "person"
	EntityBusiness = "business"
)

// Coords places an entity on the map view, as percentages of width and height.
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity is either a person or a business. Type selects which variant fields are set.
type Entity struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Status string `json:"status"`
	Group  string `json:"group"`

	// Person fields
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`

	// Business fields
	Industry string `json:"industry,omitempty"`
	Location string `json:"location,omitempty"`

	Coords *Coords `json:"coords,omitempty"`
	Source string  `json:"source,omitempty"`
}

func (e Entity) IsPerson() bool {
	return e.Type == EntityPerson
}

func (e Entity) IsBusiness() bool {
	return e.Type == EntityBusiness
}

// Subtitle is the one-line description shown under the entity name.
func (e Entity) Subtitle() string {
	if e.IsPerson() {
		return fmt.Sprintf("%s @ %s", e.Role, e.Company)
	}
	return fmt.Sprintf("%s • %s", e.Industry, e.Location)
}

// Affiliation is the company for people and the industry for businesses.
func (e Entity) Affiliation() string {
	if e.IsPerson() {
		return e.Company
	}
	return e.Industry
}

type Channel struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Badge string `json:"badge,omitempty"`
}

// Channel ids.
const (
	ChannelEmail     = "email"
	ChannelLinkedIn  = "linkedin"
	ChannelWhatsApp  = "whatsapp"
	ChannelFacebook  = "facebook"
	ChannelInstagram = "instagram"
)

// Product types.
const (
	ProductTypeProduct = "Product"
	ProductTypePlan    = "Plan"
	ProductTypeEvent   = "Event"
	ProductTypeOffer   = "Offer"
)

type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Sentiment constants.
const (
	SentimentHigh    = "high"
	SentimentNeutral = "neutral"
	SentimentLow     = "low"
)

type Campaign struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Status    bool     `json:"status"`
	Volume    int      `json:"volume"`
	Sentiment string   `json:"sentiment"`
	Tips      string   `json:"tips,omitempty"`
	Leads     int      `json:"leads"`
	Channels  []string `json:"channels"`
	Replies   int      `json:"replies,omitempty"`
	Sent      int      `json:"sent,omitempty"`
}

// Progress returns sent/leads as a percentage in [0, 100].
func (c Campaign) Progress() int {
	if c.Leads <= 0 {
		return 0
	}
	pct := c.Sent * 100 / c.Leads
	if pct > 100 {
		return 100
	}
	return pct
}

// Inbox categories and types.
const (
	InboxCategoryMessage = "message"
	InboxCategorySystem  = "system"

	InboxTypeWhatsApp = "whatsapp"
	InboxTypeLinkedIn = "linkedin"
	InboxTypeAlert    = "alert"
	InboxTypeWarning  = "warning"
)

type InboxItem struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Preview  string `json:"preview"`
	Time     string `json:"time"`
	Unread   bool   `json:"unread"`
	Avatar   string `json:"avatar,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// Chat senders.
const (
	SenderMe   = "me"
	SenderThem = "them"
)

type ChatMessage struct {
	ID     int    `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Time   string `json:"time"`
}

// DraftConfig is the campaign being assembled between the search, config and flow views.
type DraftConfig struct {
	Leads    []int    `json:"leads"`
	Channels []string `json:"channels,omitempty"`
	Product  string   `json:"product,omitempty"`
}

// Clone returns a deep copy so reducers never share slices with callers.
func (d DraftConfig) Clone() DraftConfig {
	out := DraftConfig{Product: d.Product}
	if d.Leads != nil {
		out.Leads = append([]int(nil), d.Leads...)
	}
	if d.Channels != nil {
		out.Channels = append([]string(nil), d.Channels...)
	}
	return out
}

type KPI struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

type FunnelStage struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

type Plan struct {
	Name    string `json:"name"`
	Price   string `json:"price"`
	Current bool   `json:"current"`
}

// Provider is a third-party data source listed in the integration hub.
type Provider struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	OnLabel     string `json:"on_label"`
	OffLabel    string `json:"off_label"`
}

// Provider categories.
const (
	ProviderCategorySocial     = "social"
	ProviderCategoryEnterprise = "enterprise"
)

// ProviderWhatsApp is the one provider whose state is mirrored by the floating widget.
const ProviderWhatsApp = "whatsapp"

// Transcript roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type SearchRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

type SearchResponse struct {
	Summary string   `json:"summary"`
	Results []Entity `json:"results,omitempty"`
}

// TranscriptMessage is one entry in a search session, as shown by the assistant search mode.
type TranscriptMessage struct {
	ID      string    `json:"id"`
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Results []Entity  `json:"results,omitempty"`
	Time    time.Time `json:"time"`
}

// ChatRecord is a persisted line of a search session on the backend.
type ChatRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
