package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/state"
)

type flowView struct {
	// active is the channel tab on screen; empty means the draft's first channel
	active string
}

// activeChannel falls back to email when the draft names no channels.
func (v flowView) activeChannel(draft models.DraftConfig) string {
	if v.active != "" {
		return v.active
	}
	if len(draft.Channels) > 0 {
		return draft.Channels[0]
	}
	return models.ChannelEmail
}

// channelTemplate renders the message preview for one channel.
func channelTemplate(channel, product string) string {
	switch channel {
	case models.ChannelWhatsApp:
		return fmt.Sprintf("Hi {{FirstName}}, saw you're scaling operations at {{Company}}.\n"+
			"We just released the docs for our %s. Want me to send the PDF?\n"+
			"%50s", product, "10:42 AM")
	case models.ChannelFacebook, models.ChannelInstagram:
		return fmt.Sprintf("SPONSORED\n"+
			"Scale with %s\n\n"+
			"Stop wrestling with data provenance. See why {{Company}} needs the new standard.\n\n"+
			"[ LEARN MORE ]", product)
	case models.ChannelLinkedIn:
		return "Hi {{FirstName}},\n" +
			"Just saw the news about {{Company}}. Impressive growth.\n" +
			"Open to connecting?"
	default:
		return fmt.Sprintf("Subject: Opportunity: {{Company}} x %s\n\n"+
			"Hi {{FirstName}},\n\n"+
			"I've been following {{Company}}'s trajectory. The recent news about {{RecentNews}}\n"+
			"suggests you are ready for our %s.\n\n"+
			"We solved data provenance for Nubank last quarter. I'd love to share the\n"+
			"technical brief if you're open to it?\n\n"+
			"Best,\nFelix", product, product)
	}
}

func (m Model) renderFlowView(st state.State) string {
	if !st.CanRenderFlow() {
		return mutedStyle.Render("Nothing to preview yet. Select leads and build a campaign first.")
	}
	draft := *st.Draft
	active := m.flow.activeChannel(draft)

	var side strings.Builder
	side.WriteString(headerStyle.Render("CAMPAIGN CONTEXT"))
	side.WriteString("\n\n")
	side.WriteString(mutedStyle.Render("Product"))
	side.WriteString("\n")
	side.WriteString(accentStyle.Render(draft.Product))
	side.WriteString("\n\n")
	for _, e := range catalog.EntitiesByIDs(draft.Leads) {
		icon := m.glyph("user")
		if e.IsBusiness() {
			icon = m.glyph("building-2")
		}
		side.WriteString(fmt.Sprintf("%s %s\n  %s\n", icon, e.Name, mutedStyle.Render(e.Affiliation())))
	}

	var tabs []string
	for _, id := range draft.Channels {
		ch, ok := catalog.ChannelByID(id)
		if !ok {
			continue
		}
		label := m.glyph(ch.Icon) + " " + ch.Label
		if id == active {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(label))
		}
	}

	var editor strings.Builder
	editor.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	editor.WriteString("\n")
	editor.WriteString(panelStyle.Render(channelTemplate(active, draft.Product)))
	editor.WriteString("\n\n")
	editor.WriteString(buttonStyle.Render("enter Publish Campaign " + m.glyph("arrow-right")))

	var s strings.Builder
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(30).Render(side.String()), "  ", editor.String()))
	s.WriteString("\n")
	help := []string{"←/→: Channel", "Enter: Publish"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleFlowKeys(msg tea.KeyMsg, st state.State) (tea.Model, tea.Cmd) {
	if !st.CanRenderFlow() {
		return m, nil
	}
	channels := st.Draft.Channels

	switch msg.String() {
	case "right", "l", "left", "h":
		if len(channels) == 0 {
			return m, nil
		}
		current := 0
		active := m.flow.activeChannel(*st.Draft)
		for i, c := range channels {
			if c == active {
				current = i
			}
		}
		if msg.String() == "right" || msg.String() == "l" {
			current = (current + 1) % len(channels)
		} else {
			current = (current - 1 + len(channels)) % len(channels)
		}
		m.flow.active = channels[current]
	case "enter":
		return m.dispatch(state.Published{})
	}
	return m, nil
}
