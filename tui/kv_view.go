package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/pb33f/txview/inspect"
	"github.com/pb33f/txview/motor/model"
)

// pre-computed styles to avoid allocation in hot path
var (
	keyStyleBase = lipgloss.NewStyle().
			Foreground(RGBGrey).
			Align(lipgloss.Right)

	columnLabelStyleBase = lipgloss.NewStyle().
				Faint(true).
				Align(lipgloss.Right)

	sectionHeaderStyleBase = lipgloss.NewStyle().
				Bold(true).
				Foreground(RGBPink)

	emptyValueText = lipgloss.NewStyle().Faint(true).Render("(empty)")
)

// KeyValuePair represents a single key-value pair
type KeyValuePair struct {
	Key   string
	Value string
}

// Section represents a grouped section of key-value pairs
type Section struct {
	Title    string
	KeyLabel string // optional heading over the key column
	Pairs    []KeyValuePair
}

// RenderOptions configures key-value rendering
type RenderOptions struct {
	Width    int  // total available width
	Truncate bool // whether to truncate long values
	KeyWidth int  // key column width (0 = auto-calculate)
}

// KVView is a display collaborator for one derived mapping (headers, cookies or query).
// The presenter pushes data in, a nil mapping clears it.
type KVView struct {
	title    string
	keyLabel string
	data     *model.OrderedMap
}

var _ inspect.DataSink = (*KVView)(nil)

// NewKVView creates an empty view. keyLabel is fixed for the life of the view.
func NewKVView(title, keyLabel string) *KVView {
	return &KVView{title: title, keyLabel: keyLabel}
}

func (v *KVView) SetData(data *model.OrderedMap) {
	v.data = data
}

// Data returns the mapping last pushed in, nil when cleared.
func (v *KVView) Data() *model.OrderedMap {
	return v.data
}

// Section converts the mapping into a renderable section; ok is false when there is
// nothing to show.
func (v *KVView) Section() (Section, bool) {
	if v.data.Len() == 0 {
		return Section{}, false
	}
	return Section{
		Title:    v.title,
		KeyLabel: v.keyLabel,
		Pairs:    orderedMapToPairs(v.data),
	}, true
}

// Render renders the view, or nothing when it holds no data.
func (v *KVView) Render(opts RenderOptions) string {
	section, ok := v.Section()
	if !ok {
		return ""
	}
	return renderSections([]Section{section}, opts)
}

func orderedMapToPairs(m *model.OrderedMap) []KeyValuePair {
	pairs := make([]KeyValuePair, 0, m.Len())
	m.Range(func(key, value string) bool {
		pairs = append(pairs, KeyValuePair{key, value})
		return true
	})
	return pairs
}

func keyColumnWidth(opts RenderOptions) int {
	if opts.KeyWidth != 0 {
		return opts.KeyWidth
	}
	keyWidth := opts.Width * 3 / 10 // 30% for keys
	if keyWidth > 25 {
		keyWidth = 25
	}
	if keyWidth < 15 {
		keyWidth = 15
	}
	return keyWidth
}

// renderSections renders multiple sections as formatted key-value output
func renderSections(sections []Section, opts RenderOptions) string {
	if len(sections) == 0 {
		return ""
	}

	keyWidth := keyColumnWidth(opts)
	valueWidth := opts.Width - keyWidth - 3 // -3 for spacing

	var output strings.Builder

	for i, section := range sections {
		if section.Title != "" {
			output.WriteString(renderSectionHeader(section.Title, opts.Width))
			output.WriteString("\n")
		}

		if section.KeyLabel != "" {
			output.WriteString(columnLabelStyleBase.Width(keyWidth).Render(section.KeyLabel))
			output.WriteString("  ")
			output.WriteString(FaintStyle.Render("Value"))
			output.WriteString("\n")
		}

		for _, pair := range section.Pairs {
			output.WriteString(renderKeyValueRow(pair, keyWidth, valueWidth, opts.Truncate))
			output.WriteString("\n")
		}

		if i < len(sections)-1 {
			output.WriteString("\n")
		}
	}

	return output.String()
}

func renderSectionHeader(title string, width int) string {
	return sectionHeaderStyleBase.Width(width).Render(inspect.StripControl(title))
}

// renderKeyValueRow writes one captured pair; both sides are stripped of control
// sequences and values are cut by display width.
func renderKeyValueRow(pair KeyValuePair, keyWidth, valueWidth int, truncate bool) string {
	value := inspect.StripControl(pair.Value)
	if value == "" {
		value = emptyValueText
	} else if truncate && valueWidth > 3 && ansi.StringWidth(value) > valueWidth {
		value = ansi.Truncate(value, valueWidth, "...")
	}

	return renderStyledRow(inspect.StripControl(pair.Key), value, keyWidth)
}

// renderStyledRow writes a row whose value is already safe display text.
func renderStyledRow(key, value string, keyWidth int) string {
	return keyStyleBase.Width(keyWidth).Render(key) + "  " + value
}

// formPartsToSections is the property view of a multipart body: one section per part.
func formPartsToSections(parts []*model.FormPart) []Section {
	sections := make([]Section, 0, len(parts))
	for _, part := range parts {
		pairs := []KeyValuePair{{"Type", part.Type}}
		if part.Value != "" {
			pairs = append(pairs, KeyValuePair{"Value", part.Value})
		}
		for _, f := range part.Files {
			pairs = append(pairs, KeyValuePair{"File", formatFileRef(f)})
		}
		sections = append(sections, Section{Title: part.Name, Pairs: pairs})
	}
	return sections
}

func formatFileRef(f *model.FileRef) string {
	if f == nil {
		return ""
	}
	details := make([]string, 0, 2)
	if f.ContentType != "" {
		details = append(details, f.ContentType)
	}
	if f.Size > 0 {
		details = append(details, fmt.Sprintf("%d bytes", f.Size))
	}
	if len(details) == 0 {
		return f.Name
	}
	return fmt.Sprintf("%s (%s)", f.Name, strings.Join(details, ", "))
}
