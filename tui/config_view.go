package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/state"
)

// configView is mounted fresh for every draft.
type configView struct {
	channels state.Set[string]
	product  int // index into catalog.Products(), -1 until chosen
}

func newConfigView() configView {
	return configView{product: -1}
}

func (v configView) productName() string {
	products := catalog.Products()
	if v.product < 0 || v.product >= len(products) {
		return ""
	}
	return products[v.product].Name
}

// ready gates Generate Drafts: at least one channel and a product.
func (v configView) ready() bool {
	return v.channels.Len() > 0 && v.productName() != ""
}

func (m Model) renderConfigView(st state.State) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Strategy Configuration"))
	s.WriteString("\n")
	leads := 0
	if st.Draft != nil {
		leads = len(st.Draft.Leads)
	}
	s.WriteString(mutedStyle.Render(fmt.Sprintf("Targeting %d entities", leads)))
	s.WriteString("\n\n")

	s.WriteString(headerStyle.Render("Where are we connecting?"))
	s.WriteString("\n")
	for i, ch := range catalog.Channels() {
		box := "[ ]"
		if m.config.channels.Has(ch.ID) {
			box = "[" + m.glyph("check") + "]"
		}
		line := fmt.Sprintf("%d %s %s %s", i+1, box, m.glyph(ch.Icon), ch.Label)
		if ch.Badge != "" {
			line += " " + goodStyle.Render(ch.Badge)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}
	s.WriteString("\n")

	s.WriteString(headerStyle.Render("What are we pitching?"))
	s.WriteString("\n")
	product := m.config.productName()
	if product == "" {
		product = mutedStyle.Render("Select Product or Offer...")
	}
	s.WriteString(fmt.Sprintf("%s ◀ %s ▶", m.glyph("package"), product))
	s.WriteString("\n\n")

	if m.config.ready() {
		s.WriteString(buttonStyle.Render("enter Generate Drafts"))
	} else {
		s.WriteString(disabledButtonStyle.Render("Generate Drafts"))
	}
	s.WriteString("\n")

	help := []string{"1-5: Toggle channel", "←/→: Product", "Enter: Generate"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

// handleConfigKeys runs before the dock's number keys would, since 1-5 pick channels here.
func (m Model) handleConfigKeys(msg tea.KeyMsg, st state.State) (tea.Model, tea.Cmd) {
	channels := catalog.Channels()
	products := catalog.Products()

	key := msg.String()
	switch key {
	case "1", "2", "3", "4", "5":
		idx := int(key[0] - '1')
		if idx < len(channels) {
			m.config.channels.Toggle(channels[idx].ID)
		}
	case "right", "l":
		m.config.product = (m.config.product + 1) % len(products)
	case "left", "h":
		if m.config.product <= 0 {
			m.config.product = len(products) - 1
		} else {
			m.config.product--
		}
	case "enter":
		if !m.config.ready() {
			return m, nil
		}
		return m.dispatch(state.DraftGenerated{
			Channels: m.config.channels.Items(),
			Product:  m.config.productName(),
		})
	case "esc":
		return m.dispatch(state.TabChanged{Tab: state.TabSearch})
	}
	return m, nil
}
