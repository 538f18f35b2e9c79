// ABOUTME: Icon enumeration used by the dashboard views
// ABOUTME: Maps catalog icon names to terminal glyphs with an observable not-found branch
package tui

// Icon is a known glyph. The zero value is not a valid icon.
type Icon int

const (
	IconMail Icon = iota + 1
	IconLinkedIn
	IconMessageCircle
	IconFacebook
	IconInstagram
	IconSearch
	IconUsers
	IconLayers
	IconInbox
	IconBarChart
	IconSettings
	IconCheck
	IconBuilding
	IconUser
	IconPackage
	IconChevronDown
	IconChevronUp
	IconUpload
	IconPlus
	IconDatabase
	IconList
	IconMap
	IconSparkles
	IconZap
	IconTarget
	IconBell
	IconSend
	IconGlobe
	IconX
	IconCloud
	IconServer
	IconShield
	IconAlertTriangle
	IconArrowRight
)

var iconNames = map[string]Icon{
	"mail":           IconMail,
	"linkedin":       IconLinkedIn,
	"message-circle": IconMessageCircle,
	"facebook":       IconFacebook,
	"instagram":      IconInstagram,
	"search":         IconSearch,
	"users":          IconUsers,
	"layers":         IconLayers,
	"inbox":          IconInbox,
	"bar-chart-2":    IconBarChart,
	"settings":       IconSettings,
	"check":          IconCheck,
	"building-2":     IconBuilding,
	"user":           IconUser,
	"package":        IconPackage,
	"chevron-down":   IconChevronDown,
	"chevron-up":     IconChevronUp,
	"upload":         IconUpload,
	"plus":           IconPlus,
	"database":       IconDatabase,
	"list":           IconList,
	"map":            IconMap,
	"sparkles":       IconSparkles,
	"zap":            IconZap,
	"target":         IconTarget,
	"bell":           IconBell,
	"send":           IconSend,
	"globe":          IconGlobe,
	"x":              IconX,
	"cloud":          IconCloud,
	"server":         IconServer,
	"shield":         IconShield,
	"alert-triangle": IconAlertTriangle,
	"arrow-right":    IconArrowRight,
}

var iconGlyphs = map[Icon]string{
	IconMail:          "✉",
	IconLinkedIn:      "in",
	IconMessageCircle: "◌",
	IconFacebook:      "f",
	IconInstagram:     "◎",
	IconSearch:        "⌕",
	IconUsers:         "☺",
	IconLayers:        "≡",
	IconInbox:         "▤",
	IconBarChart:      "▦",
	IconSettings:      "⚙",
	IconCheck:         "✓",
	IconBuilding:      "▥",
	IconUser:          "☻",
	IconPackage:       "▣",
	IconChevronDown:   "▾",
	IconChevronUp:     "▴",
	IconUpload:        "⇪",
	IconPlus:          "+",
	IconDatabase:      "⛁",
	IconList:          "☰",
	IconMap:           "⌖",
	IconSparkles:      "✦",
	IconZap:           "⚡",
	IconTarget:        "◎",
	IconBell:          "♪",
	IconSend:          "➤",
	IconGlobe:         "◍",
	IconX:             "✕",
	IconCloud:         "☁",
	IconServer:        "▭",
	IconShield:        "⛨",
	IconAlertTriangle: "⚠",
	IconArrowRight:    "→",
}

// IconFor resolves a catalog icon name.
func IconFor(name string) (Icon, bool) {
	icon, ok := iconNames[name]
	return icon, ok
}

func (i Icon) Glyph() string {
	return iconGlyphs[i]
}

// glyph renders a named icon, or nothing when the name is unknown. Misses are
// logged once per name so a typo in the catalog is visible without spamming.
func (m Model) glyph(name string) string {
	icon, ok := IconFor(name)
	if !ok {
		m.missingIcon(name)
		return ""
	}
	return icon.Glyph()
}
