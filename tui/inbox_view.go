package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
)

var inboxFilters = []string{catalog.InboxAll, catalog.InboxMessages, catalog.InboxSystem}

type inboxView struct {
	filter int
	cursor int
	reply  textinput.Model
	// sent holds replies typed this session; nothing leaves the process
	sent []models.ChatMessage
}

func newInboxView() inboxView {
	reply := textinput.New()
	reply.Placeholder = "Type your reply..."
	reply.CharLimit = 500
	reply.Width = 40
	return inboxView{reply: reply}
}

func (v inboxView) items() []models.InboxItem {
	return catalog.FilterInbox(inboxFilters[v.filter])
}

func (v inboxView) selected() (models.InboxItem, bool) {
	items := v.items()
	if v.cursor < 0 || v.cursor >= len(items) {
		return models.InboxItem{}, false
	}
	return items[v.cursor], true
}

func (m Model) inboxIcon(item models.InboxItem) string {
	if item.Category == models.InboxCategoryMessage {
		if item.Type == models.InboxTypeWhatsApp {
			return m.glyph("message-circle")
		}
		return m.glyph("linkedin")
	}
	if item.Icon != "" {
		return m.glyph(item.Icon)
	}
	return m.glyph("bell")
}

func (m Model) renderInboxView() string {
	var list strings.Builder
	list.WriteString(titleStyle.Render("Inbox"))
	list.WriteString("\n")

	var filters []string
	for i, f := range inboxFilters {
		label := strings.ToUpper(f[:1]) + f[1:]
		if i == m.inbox.filter {
			filters = append(filters, tabActiveStyle.Render(label))
		} else {
			filters = append(filters, tabInactiveStyle.Render(label))
		}
	}
	list.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, filters...))
	list.WriteString("\n\n")

	for i, item := range m.inbox.items() {
		dot := " "
		if item.Unread {
			dot = accentStyle.Render("●")
		}
		line := fmt.Sprintf("%s %s %-16s %s", dot, m.inboxIcon(item), item.Title, mutedStyle.Render(item.Time))
		if i == m.inbox.cursor {
			line = selectedStyle.Render(line)
		}
		list.WriteString(line)
		list.WriteString("\n")
		list.WriteString("    " + mutedStyle.Render(item.Preview))
		list.WriteString("\n")
	}

	detail := m.renderInboxDetail()

	var s strings.Builder
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", panelStyle.Render(detail)))
	s.WriteString("\n")
	help := []string{"↑/↓: Select", "Tab: Filter", "r: Reply", "Enter: Send"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) renderInboxDetail() string {
	item, ok := m.inbox.selected()
	if !ok {
		return mutedStyle.Render(m.glyph("inbox") + " Select a conversation")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(item.Title))
	if item.Category == models.InboxCategorySystem {
		s.WriteString("  " + mutedStyle.Render("System Notification"))
		s.WriteString("\n\n")
		s.WriteString(m.inboxIcon(item) + " " + item.Title)
		s.WriteString("\n")
		s.WriteString(item.Preview + " Verify the source file or adjust campaign settings.")
		s.WriteString("\n\n")
		s.WriteString(buttonStyle.Render("View Details"))
		return s.String()
	}

	via := "LinkedIn"
	if item.Type == models.InboxTypeWhatsApp {
		via = "WhatsApp"
	}
	s.WriteString("  " + mutedStyle.Render("via "+via))
	s.WriteString("\n\n")

	history := append(catalog.ChatHistory(), m.inbox.sent...)
	for _, msg := range history {
		if msg.Sender == models.SenderMe {
			s.WriteString(fmt.Sprintf("%40s\n", accentStyle.Render(msg.Text)))
		} else {
			s.WriteString(msg.Text + "\n")
		}
	}
	s.WriteString(mutedStyle.Render(item.Preview))
	s.WriteString("\n\n")
	s.WriteString(m.inbox.reply.View() + " " + m.glyph("send"))
	return s.String()
}

func (m Model) handleInboxKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inbox.reply.Focused() {
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.inbox.reply.Value())
			if text == "" {
				return m, nil
			}
			m.inbox.sent = append(m.inbox.sent, models.ChatMessage{
				ID:     len(catalog.ChatHistory()) + len(m.inbox.sent) + 1,
				Sender: models.SenderMe,
				Text:   text,
				Time:   time.Now().Format("3:04 PM"),
			})
			m.inbox.reply.SetValue("")
			return m, nil
		case "esc":
			m.inbox.reply.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.inbox.reply, cmd = m.inbox.reply.Update(msg)
		return m, cmd
	}

	items := m.inbox.items()
	switch msg.String() {
	case "up", "k":
		if m.inbox.cursor > 0 {
			m.inbox.cursor--
		}
	case "down", "j":
		if m.inbox.cursor < len(items)-1 {
			m.inbox.cursor++
		}
	case "tab":
		m.inbox.filter = (m.inbox.filter + 1) % len(inboxFilters)
		m.inbox.cursor = 0
	case "r":
		if item, ok := m.inbox.selected(); ok && item.Category == models.InboxCategoryMessage {
			return m, m.inbox.reply.Focus()
		}
	}
	return m, nil
}
