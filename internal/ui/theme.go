// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI. The built-in
// palettes ship in themes.yaml; users can add their own next to config.json.
package ui

import (
	_ "embed"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"sort"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var builtinThemesYAML []byte

// Palette holds the interface colors of a theme as #RRGGBB strings.
type Palette struct {
	Primary     string `yaml:"primary"`      // focus, highlights, header
	Secondary   string `yaml:"secondary"`    // key hints, attachment chip
	Bg          string `yaml:"bg"`           // main background
	BgSelected  string `yaml:"bg_selected"`  // selected sidebar row; Primary when empty
	Text        string `yaml:"text"`         // body text
	TextMuted   string `yaml:"text_muted"`   // timestamps, hints
	TextInverse string `yaml:"text_inverse"` // text on colored backgrounds
	User        string `yaml:"user"`         // "You" labels
	Assistant   string `yaml:"assistant"`    // "Bot" labels
	Warning     string `yaml:"warning"`
	Error       string `yaml:"error"` // failed replies
	Info        string `yaml:"info"`  // file links
	Success     string `yaml:"success"`
	Border      string `yaml:"border"`
	BorderFocus string `yaml:"border_focus"` // Primary when empty
}

// MarkdownPalette colors the markdown subset rendered in replies.
type MarkdownPalette struct {
	H1       string `yaml:"h1"`
	H2       string `yaml:"h2"`
	H3       string `yaml:"h3"`
	Code     string `yaml:"code"`
	CodeBg   string `yaml:"code_bg"`
	Link     string `yaml:"link"`
	ListItem string `yaml:"list_item"`
}

// Theme is a named palette plus the chroma style used for code fences.
type Theme struct {
	Key     ThemeName `yaml:"key"`
	Name    string    `yaml:"name"`
	Chroma  string    `yaml:"chroma"`
	Palette `yaml:"colors"`

	Markdown MarkdownPalette `yaml:"markdown"`
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	return firstNonEmpty(t.BgSelected, t.Primary)
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	return firstNonEmpty(t.BorderFocus, t.Primary)
}

// ThemeName identifies a theme in config.json.
type ThemeName string

// DefaultTheme is used when the configured theme is unknown.
const DefaultTheme ThemeName = "dark"

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var (
	themes       = map[ThemeName]Theme{}
	currentTheme Theme
)

func init() {
	builtin, err := parseThemes(builtinThemesYAML)
	if err != nil {
		panic(fmt.Sprintf("ui: built-in themes: %v", err))
	}
	for _, t := range builtin {
		themes[t.Key] = t
	}
	if _, ok := themes[DefaultTheme]; !ok {
		panic("ui: built-in themes lack " + string(DefaultTheme))
	}
	currentTheme = themes[DefaultTheme]
	regenerateStyles()
}

// parseThemes decodes a theme list. Blank colors are filled from the default
// theme when it is already registered, and every color must then be hex.
func parseThemes(data []byte) ([]Theme, error) {
	var list []Theme
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}

	base, hasBase := themes[DefaultTheme]
	for i := range list {
		t := &list[i]
		if t.Key == "" {
			return nil, fmt.Errorf("theme %d: missing key", i+1)
		}
		if t.Name == "" {
			t.Name = string(t.Key)
		}
		if hasBase {
			inherit(&t.Palette, base.Palette)
			inherit(&t.Markdown, base.Markdown)
			t.Chroma = firstNonEmpty(t.Chroma, base.Chroma)
		}
		if err := checkColors(t.Palette, "bg_selected", "border_focus"); err != nil {
			return nil, fmt.Errorf("theme %s: %w", t.Key, err)
		}
		if err := checkColors(t.Markdown); err != nil {
			return nil, fmt.Errorf("theme %s: %w", t.Key, err)
		}
	}
	return list, nil
}

// inherit copies every blank string field of dst from base. Both must point
// to the same struct type.
func inherit(dst, base any) {
	d := reflect.ValueOf(dst).Elem()
	b := reflect.ValueOf(base)
	for i := range d.NumField() {
		if f := d.Field(i); f.Kind() == reflect.String && f.String() == "" {
			f.SetString(b.Field(i).String())
		}
	}
}

// checkColors validates the hex colors of a palette struct. Fields named in
// optional may be blank.
func checkColors(p any, optional ...string) error {
	v := reflect.ValueOf(p)
	for i := range v.NumField() {
		name := v.Type().Field(i).Tag.Get("yaml")
		val := v.Field(i).String()
		if val == "" && contains(optional, name) {
			continue
		}
		if !hexColor.MatchString(val) {
			return fmt.Errorf("%s: %q is not a #RRGGBB color", name, val)
		}
	}
	return nil
}

// LoadThemeFile registers the themes in path, replacing built-ins with the
// same key. A missing file is not an error.
func LoadThemeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read themes: %w", err)
	}
	list, err := parseThemes(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, t := range list {
		themes[t.Key] = t
		if t.Key == currentTheme.Key {
			currentTheme = t
			regenerateStyles()
		}
	}
	return nil
}

// ThemeNames returns the default theme followed by the rest alphabetically
func ThemeNames() []ThemeName {
	names := make([]ThemeName, 0, len(themes))
	for name := range themes {
		if name != DefaultTheme {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return append([]ThemeName{DefaultTheme}, names...)
}

// GetTheme returns a theme by name, or the default theme
func GetTheme(name ThemeName) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// IsValidTheme reports whether name is a registered theme.
func IsValidTheme(name string) bool {
	_, ok := themes[ThemeName(name)]
	return ok
}

func CurrentTheme() Theme {
	return currentTheme
}

func CurrentThemeName() ThemeName {
	return currentTheme.Key
}

// SetTheme activates a theme and rebuilds every style.
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// chromaStyleName returns the code highlighting style of the active theme,
// falling back to monokai when chroma doesn't know the configured name.
func chromaStyleName() string {
	name := currentTheme.Chroma
	if name == "" || styles.Get(name) == styles.Fallback {
		return "monokai"
	}
	return name
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func boxed(border string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border))
}

// regenerateStyles rebuilds the style variables from the current theme and
// pushes the result into the modals package.
func regenerateStyles() {
	t := currentTheme
	md := t.Markdown

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	// Footer
	FooterStyle = fg(t.TextMuted).Padding(0, 1)
	FooterKeyStyle = fg(t.Secondary).Bold(true)
	FooterDescStyle = fg(t.TextMuted)

	// Panels and sidebar
	PanelStyle = boxed(t.Border)
	PanelFocusedStyle = boxed(t.GetBorderFocus())
	SidebarItemStyle = lipgloss.NewStyle().Padding(0, 1)
	SidebarSelectedStyle = fg(t.Text).
		Background(lipgloss.Color(t.GetBgSelected())).
		Bold(true).
		Padding(0, 1)
	SidebarActiveStyle = fg(t.Primary).Bold(true).Padding(0, 1)

	// Transcript and composer
	ChatUserStyle = fg(t.User).Bold(true)
	ChatAssistantStyle = fg(t.Assistant).Bold(true)
	ChatMessageStyle = fg(t.Text)
	ChatTimestampStyle = fg(t.TextMuted)
	ChatFileStyle = fg(t.Info).Italic(true)
	ChatInputStyle = boxed(t.Border).Padding(0, 1)
	ChatInputFocusedStyle = boxed(t.GetBorderFocus()).Padding(0, 1)
	AttachmentChipStyle = fg(t.TextInverse).Background(ColorSecondary).Padding(0, 1)
	TextSelectionStyle = fg(t.TextInverse).Background(ColorPrimary)
	TextSelectionFlashStyle = fg(t.TextInverse).Background(ColorSuccess)

	// Modals
	ModalStyle = boxed(t.Primary).Padding(1, 2)
	ModalTitleStyle = fg(t.Primary).Bold(true).MarginBottom(1)
	ModalHelpStyle = fg(t.TextMuted).Italic(true).MarginTop(1)

	// Status line
	StatusLoadingStyle = fg(t.Secondary).Italic(true)
	StatusErrorStyle = fg(t.Error).Bold(true)
	StatusSuccessStyle = fg(t.Success)

	// Markdown
	MarkdownH1Style = fg(md.H1).Bold(true)
	MarkdownH2Style = fg(md.H2).Bold(true)
	MarkdownH3Style = fg(md.H3).Bold(true)
	MarkdownH4Style = fg(t.TextMuted).Bold(true)
	MarkdownBoldStyle = fg(t.Text).Bold(true)
	MarkdownItalicStyle = fg(t.Text).Italic(true)
	MarkdownInlineCodeStyle = fg(md.Code).Background(lipgloss.Color(md.CodeBg))
	MarkdownListBulletStyle = fg(md.ListItem)
	MarkdownBlockquoteStyle = fg(t.TextMuted).
		Italic(true).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	MarkdownHRStyle = fg(t.Border)
	MarkdownLinkStyle = fg(md.Link).Underline(true)

	RefreshModalStyles()
}
