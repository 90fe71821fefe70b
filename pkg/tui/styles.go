package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Gold is reserved for points and score.
var (
	ColorBanner  = lipgloss.Color("#C9A227")
	ColorGold    = lipgloss.Color("#F2C14E")
	ColorEmerald = lipgloss.Color("#3FB27F")
	ColorAmber   = lipgloss.Color("#E8913A")
	ColorViolet  = lipgloss.Color("#A37BDB")
	ColorSky     = lipgloss.Color("#6CB4EE")
	ColorRust    = lipgloss.Color("#D9534F")
	ColorMuted   = lipgloss.Color("#7A7F87")
	ColorFaint   = lipgloss.Color("#3A3F47")
	ColorText    = lipgloss.Color("#ECECEC")
	ColorIdle    = lipgloss.Color("#B8BCC2")
	ColorCursor  = lipgloss.Color("#2B3445")
	ColorMatchBg = lipgloss.Color("#3D3420")
)

// Header, footer and chrome.
var (
	HeaderStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorBanner)
	HeaderCountStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ScoreStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorGold)
	DirtyStyle       = lipgloss.NewStyle().Foreground(ColorAmber)
	StatusStyle      = lipgloss.NewStyle().Italic(true).Foreground(ColorSky)
	FooterStyle      = lipgloss.NewStyle().Foreground(ColorMuted)
	DividerStyle     = lipgloss.NewStyle().Foreground(ColorFaint)
	PathStyle        = lipgloss.NewStyle().Foreground(ColorFaint)
)

// Goal rows, one style per goal state.
var (
	SelectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Background(ColorCursor)
	NormalStyle     = lipgloss.NewStyle()
	CompleteStyle   = lipgloss.NewStyle().Foreground(ColorEmerald)
	InProgressStyle = lipgloss.NewStyle().Foreground(ColorAmber)
	IncompleteStyle = lipgloss.NewStyle().Foreground(ColorIdle)
	EternalStyle    = lipgloss.NewStyle().Foreground(ColorViolet)
	PointsStyle     = lipgloss.NewStyle().Foreground(ColorGold)
)

// Help and confirm dialogs.
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorBanner).
			Padding(1, 3)
	ModalTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(ColorBanner)
	ModalKeyStyle   = lipgloss.NewStyle().Foreground(ColorSky).Width(16)
	ModalDescStyle  = lipgloss.NewStyle().Foreground(ColorText)
	ConfirmYesStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorEmerald)
	ConfirmNoStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorRust)
)

// Add-goal prompt.
var (
	InputPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBanner)
	InputStyle       = lipgloss.NewStyle().Foreground(ColorText)
)

// Search bar and match highlighting.
var (
	SearchBarStyle          = lipgloss.NewStyle().Foreground(ColorText)
	SearchRowStyle          = lipgloss.NewStyle()
	SearchCharStyle         = lipgloss.NewStyle().Bold(true).Foreground(ColorGold).Background(ColorMatchBg)
	SearchCharSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorGold).Background(ColorCursor)
	SearchCountStyle        = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Row icons.
const (
	IconComplete   = "★"
	IconInProgress = "◑"
	IconIncomplete = "☆"
	IconEternal    = "∞"
)
