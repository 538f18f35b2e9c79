// ABOUTME: Tests for dashboard data models
// ABOUTME: Validates entity variants, campaign progress and draft cloning
package models

import (
	"testing"
)

func TestEntitySubtitle(t *testing.T) {
	person := Entity{ID: 1, Type: EntityPerson, Name: "Elena Silva", Role: "VP Sales", Company: "TechFlow"}
	if got := person.Subtitle(); got != "VP Sales @ TechFlow" {
		t.Errorf("expected person subtitle, got %q", got)
	}
	if person.Affiliation() != "TechFlow" {
		t.Errorf("expected company affiliation, got %q", person.Affiliation())
	}

	business := Entity{ID: 101, Type: EntityBusiness, Name: "TechFlow HQ", Industry: "SaaS Platform", Location: "São Paulo"}
	if got := business.Subtitle(); got != "SaaS Platform • São Paulo" {
		t.Errorf("expected business subtitle, got %q", got)
	}
	if !business.IsBusiness() || business.IsPerson() {
		t.Error("business variant misreported")
	}
}

func TestCampaignProgress(t *testing.T) {
	tests := []struct {
		name     string
		campaign Campaign
		expected int
	}{
		{"partial", Campaign{Leads: 124, Sent: 80}, 64},
		{"none sent", Campaign{Leads: 200, Sent: 0}, 0},
		{"no leads", Campaign{Leads: 0, Sent: 10}, 0},
		{"over sent", Campaign{Leads: 10, Sent: 30}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.campaign.Progress(); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestDraftConfigCloneIsIndependent(t *testing.T) {
	orig := DraftConfig{Leads: []int{1, 2}, Channels: []string{ChannelEmail}, Product: "Pro Plan"}
	clone := orig.Clone()

	clone.Leads[0] = 99
	clone.Channels[0] = ChannelWhatsApp

	if orig.Leads[0] != 1 {
		t.Error("clone shares leads with original")
	}
	if orig.Channels[0] != ChannelEmail {
		t.Error("clone shares channels with original")
	}
	if clone.Product != "Pro Plan" {
		t.Errorf("expected product copied, got %q", clone.Product)
	}
}

func TestDraftConfigCloneKeepsNil(t *testing.T) {
	clone := DraftConfig{Leads: []int{1}}.Clone()
	if clone.Channels != nil {
		t.Error("expected nil channels to stay nil")
	}
}
