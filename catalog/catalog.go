// ABOUTME: Static in-memory data providers for the dashboard
// ABOUTME: Holds entities, channels, products, campaigns, inbox, chat and insight fixtures
package catalog

import (
	"github.com/harperreed/nexus/models"
)

func coords(x, y int) *models.Coords {
	return &models.Coords{X: x, Y: y}
}

var entities = []models.Entity{
	{ID: 1, Type: models.EntityPerson, Name: "Elena Silva", Role: "VP Sales", Company: "TechFlow", Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Elena", Status: "Active", Group: "VIP", Coords: coords(30, 40), Source: "LinkedIn Sales Nav"},
	{ID: 2, Type: models.EntityPerson, Name: "Marcus Chen", Role: "Head of Growth", Company: "Nubank", Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Marcus", Status: "Active", Group: "Fintech", Coords: coords(65, 25), Source: "Apollo.io"},
	{ID: 3, Type: models.EntityPerson, Name: "Sarah Jones", Role: "CRO", Company: "Vtex", Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Sarah", Status: "Unassigned", Group: "Retail", Coords: coords(20, 70), Source: "Clearbit"},

	{ID: 101, Type: models.EntityBusiness, Name: "TechFlow HQ", Industry: "SaaS Platform", Location: "São Paulo", Avatar: "https://api.dicebear.com/7.x/initials/svg?seed=TF", Status: "Target", Group: "High Growth", Coords: coords(32, 38), Source: "Google Places"},
	{ID: 102, Type: models.EntityBusiness, Name: "Nubank Office", Industry: "Fintech", Location: "São Paulo", Avatar: "https://api.dicebear.com/7.x/initials/svg?seed=NB", Status: "Customer", Group: "Enterprise", Coords: coords(62, 22), Source: "Google Places"},
	{ID: 103, Type: models.EntityBusiness, Name: "Mercado Libre", Industry: "E-commerce", Location: "Buenos Aires", Avatar: "https://api.dicebear.com/7.x/initials/svg?seed=ML", Status: "New", Group: "Enterprise", Coords: coords(80, 60), Source: "Internal DB"},
}

var channels = []models.Channel{
	{ID: models.ChannelEmail, Icon: "mail", Label: "Email"},
	{ID: models.ChannelLinkedIn, Icon: "linkedin", Label: "LinkedIn"},
	{ID: models.ChannelWhatsApp, Icon: "message-circle", Label: "WhatsApp", Badge: "High Intent"},
	{ID: models.ChannelFacebook, Icon: "facebook", Label: "Facebook"},
	{ID: models.ChannelInstagram, Icon: "instagram", Label: "Instagram"},
}

var products = []models.Product{
	{ID: "api", Name: "Enterprise API", Type: models.ProductTypeProduct},
	{ID: "pro", Name: "Pro Plan Subscription", Type: models.ProductTypePlan},
	{ID: "webinar", Name: "Q3 Webinar: AI Sales", Type: models.ProductTypeEvent},
	{ID: "audit", Name: "Free Tech Audit", Type: models.ProductTypeOffer},
}

var campaigns = []models.Campaign{
	{ID: 1, Name: "Series B Founders - Brazil", Status: true, Volume: 45, Sentiment: models.SentimentHigh, Leads: 124, Channels: []string{models.ChannelEmail, models.ChannelLinkedIn}, Replies: 12, Sent: 80},
	{ID: 2, Name: "Fintech CTOs - Outreach", Status: true, Volume: 20, Sentiment: models.SentimentNeutral, Tips: "Reply rate dipping.", Leads: 58, Channels: []string{models.ChannelEmail, models.ChannelWhatsApp}, Replies: 5, Sent: 40},
	{ID: 3, Name: "Q1 Webinar Invite", Status: false, Volume: 0, Sentiment: models.SentimentLow, Leads: 200, Channels: []string{models.ChannelFacebook, models.ChannelInstagram}},
}

var inbox = []models.InboxItem{
	{ID: 1, Category: models.InboxCategoryMessage, Type: models.InboxTypeWhatsApp, Title: "Elena Silva", Preview: "Thanks for the docs! When can we chat?", Time: "15m ago", Unread: true, Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Elena"},
	{ID: 2, Category: models.InboxCategorySystem, Type: models.InboxTypeAlert, Title: "Import Complete", Preview: "24 records added from CSV.", Time: "2m ago", Unread: true, Icon: "database"},
	{ID: 3, Category: models.InboxCategoryMessage, Type: models.InboxTypeLinkedIn, Title: "Marcus Chen", Preview: "Sure, lets connect next week.", Time: "1h ago", Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Marcus"},
	{ID: 4, Category: models.InboxCategorySystem, Type: models.InboxTypeWarning, Title: "Campaign Paused", Preview: "Series B Founders reached daily limit.", Time: "3h ago", Icon: "alert-triangle"},
}

var chatHistory = []models.ChatMessage{
	{ID: 1, Sender: models.SenderMe, Text: "Hi Elena, saw you're scaling at TechFlow. Released docs for Enterprise API. Want PDF?", Time: "10:42 AM"},
	{ID: 2, Sender: models.SenderThem, Text: "Thanks for the docs! When can we chat?", Time: "10:55 AM"},
}

var kpis = []models.KPI{
	{Label: "Total Revenue", Value: "$124,500", Change: "+8.2%", Trend: "up"},
	{Label: "Active Leads", Value: "1,240", Change: "+12%", Trend: "up"},
	{Label: "Conversion Rate", Value: "3.4%", Change: "-0.1%", Trend: "down"},
	{Label: "Avg. Deal Size", Value: "$12,400", Change: "+2.4%", Trend: "up"},
}

var funnel = []models.FunnelStage{
	{Label: "New Leads", Percent: 85},
	{Label: "Qualified", Percent: 60},
	{Label: "Negotiation", Percent: 35},
	{Label: "Closed Won", Percent: 20},
}

var plans = []models.Plan{
	{Name: "Starter", Price: "$29/mo"},
	{Name: "Pro", Price: "$99/mo", Current: true},
	{Name: "Enterprise", Price: "Custom"},
}

var providers = []models.Provider{
	{Key: "google", Name: "Google Workspace", Category: models.ProviderCategorySocial, Description: "Identity & Auth", Icon: "globe", OnLabel: "Connected", OffLabel: "Connect"},
	{Key: "meta", Name: "Meta Business", Category: models.ProviderCategorySocial, Description: "Facebook & Instagram audiences", Icon: "facebook", OnLabel: "Connected", OffLabel: "Connect"},
	{Key: models.ProviderWhatsApp, Name: "WhatsApp Business", Category: models.ProviderCategorySocial, Description: "Communication", Icon: "message-circle", OnLabel: "Connected", OffLabel: "Connect"},
	{Key: "salesforce", Name: "Salesforce", Category: models.ProviderCategoryEnterprise, Description: "CRM & Sales", Icon: "cloud", OnLabel: "Connected", OffLabel: "Connect OAuth"},
	{Key: "totvs", Name: "TOTVS Protheus", Category: models.ProviderCategoryEnterprise, Description: "ERP & Logistics", Icon: "server", OnLabel: "Syncing...", OffLabel: "Configure"},
	{Key: "sap", Name: "SAP S/4HANA", Category: models.ProviderCategoryEnterprise, Description: "ERP & Logistics", Icon: "server", OnLabel: "Active", OffLabel: "Link API"},
}

// Group is a saved segment in the entity directory sidebar.
type Group struct {
	ID    string
	Label string
	Count int
}

var groups = []Group{
	{ID: "all", Label: "All Entities"},
	{ID: "vip", Label: "VIP / High Value", Count: 4},
	{ID: "new", Label: "Added This Week", Count: 12},
	{ID: "stale", Label: "Needs Attention", Count: 8},
	{ID: "archived", Label: "Archived", Count: 320},
}
