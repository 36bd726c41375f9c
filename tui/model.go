package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/txview/inspect"
	"github.com/pb33f/txview/motor"
)

// ViewMode represents the different view states
type ViewMode int

const (
	ViewModeTable ViewMode = iota
	ViewModeTableWithSplit
)

// Options configures the inspector program.
type Options struct {
	Formatter inspect.FormatterOptions
	Reader    motor.ReaderOptions
	Logger    *slog.Logger
}

// DefaultOptions highlights for a 256 colour terminal.
func DefaultOptions() Options {
	formatter := inspect.DefaultFormatterOptions()
	formatter.HighlightFormat = inspect.HighlightTerminal256
	return Options{
		Formatter: formatter,
		Reader:    motor.DefaultReaderOptions(),
	}
}

type HARViewModel struct {
	table   table.Model
	entries []*motor.Entry
	rows    []table.Row
	columns []table.Column

	reader        motor.TransactionReader
	inspector     *Inspector
	selectedIndex int

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	quitting bool

	panelViewport viewport.Model
	splitVisible  bool

	fileName string
	logger   *slog.Logger

	loadState      LoadState
	loadingSpinner spinner.Model
	violations     int
	loadTime       time.Duration

	err error
}

func NewHARViewModel(fileName string, opts Options) (*HARViewModel, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Formatter.Logger == nil {
		opts.Formatter.Logger = opts.Logger
	}

	formatter, err := inspect.NewFormatter(opts.Formatter)
	if err != nil {
		return nil, fmt.Errorf("failed to create body formatter: %w", err)
	}

	columns := []table.Column{
		{Title: "Method", Width: methodColumnWidth},
		{Title: "URL", Width: maxURLDisplayLength},
		{Title: "Status", Width: statusColumnWidth},
		{Title: "Violations", Width: violationsColumnWidth},
		{Title: "Duration", Width: durationColumnWidth},
	}

	m := &HARViewModel{
		fileName:       fileName,
		logger:         opts.Logger,
		columns:        columns,
		reader:         motor.NewHARReader(opts.Reader, opts.Logger),
		inspector:      NewInspector(formatter, opts.Logger),
		viewMode:       ViewModeTable,
		loadState:      LoadStateLoading,
		loadingSpinner: createLoadingSpinner(),
	}

	return m, nil
}

func (m *HARViewModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadingSpinner.Tick,
		m.startReading(),
	)
}

func (m *HARViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if m.loadState == LoadStateLoading {
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case readCompleteMsg:
		m.loadState = LoadStateLoaded
		m.entries = msg.entries
		m.loadTime = msg.duration
		m.violations = msg.violations
		m.logger.Debug("transactions loaded", "file", m.fileName, "entries", len(msg.entries), "violations", msg.violations, "duration", msg.duration)

		if m.width > 0 && m.height > 0 {
			m.initializeTable()
			m.ready = true
		}
		return m, nil

	case readErrorMsg:
		m.loadState = LoadStateError
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if m.loadState == LoadStateLoaded && !m.ready {
			m.initializeTable()
			m.ready = true
		} else if m.ready {
			m.updateTableDimensions()
		}

		if m.splitVisible {
			m.updateViewportDimensions()
			m.refreshPanel()
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.loadState == LoadStateLoaded {
				m.toggleSplitView()
				if m.splitVisible {
					m.selectEntry(m.selectedIndex)
				}
			}
			return m, nil

		case "esc":
			if m.loadState == LoadStateLoaded && m.splitVisible {
				m.toggleSplitView()
			}
			return m, nil

		case "tab", "right":
			if m.splitVisible {
				m.inspector.NextTab()
				m.refreshPanel()
				return m, nil
			}

		case "shift+tab", "left":
			if m.splitVisible {
				m.inspector.PrevTab()
				m.refreshPanel()
				return m, nil
			}

		case "1", "2", "3":
			if m.splitVisible {
				m.inspector.SetTab(Tab(msg.String()[0] - '1'))
				m.refreshPanel()
				return m, nil
			}
		}
	}

	if m.loadState == LoadStateLoaded && m.ready {
		if !m.splitVisible {
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)

			if m.table.Cursor() != m.selectedIndex {
				m.selectedIndex = m.table.Cursor()
			}
		} else {
			m.panelViewport, cmd = m.panelViewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *HARViewModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.loadState {
	case LoadStateLoading:
		return m.renderLoadingView()
	case LoadStateError:
		return m.renderErrorView()
	case LoadStateLoaded:
		if !m.ready {
			return "Initializing..."
		}
		return m.render()
	default:
		return "Unknown state"
	}
}

func (m *HARViewModel) tableHeight() int {
	h := m.height - tableVerticalPadding
	if m.splitVisible {
		h -= m.panelHeight() + splitPanelPadding
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *HARViewModel) panelHeight() int {
	h := int(float64(m.height-tableVerticalPadding) * panelHeightRatio)
	if h < minPanelHeight {
		h = minPanelHeight
	}
	return h
}

func (m *HARViewModel) initializeTable() {
	m.buildTableRows()

	m.table = table.New(
		table.WithColumns(m.columns),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithWidth(m.width),
	)

	m.table = ApplyTableStyles(m.table)
	m.adjustColumnWidths()
}

func (m *HARViewModel) updateTableDimensions() {
	m.table.SetHeight(m.tableHeight())
	m.table.SetWidth(m.width)
	m.adjustColumnWidths()
}

func (m *HARViewModel) updateViewportDimensions() {
	width := m.width - splitPanelPadding
	height := m.panelHeight() - splitPanelPadding

	if m.panelViewport.Width() == 0 {
		m.panelViewport = viewport.New(viewport.WithWidth(width), viewport.WithHeight(height))
	} else {
		m.panelViewport.SetWidth(width)
		m.panelViewport.SetHeight(height)
	}
}

func (m *HARViewModel) toggleSplitView() {
	if m.viewMode == ViewModeTable {
		m.viewMode = ViewModeTableWithSplit
		m.splitVisible = true
		m.updateTableDimensions()
		m.updateViewportDimensions()
	} else {
		m.viewMode = ViewModeTable
		m.splitVisible = false
		m.inspector.SetTransaction(nil)
		m.updateTableDimensions()
	}
}

// selectEntry hands the chosen transaction to the inspector.
func (m *HARViewModel) selectEntry(index int) {
	if index < 0 || index >= len(m.entries) {
		m.inspector.SetTransaction(nil)
	} else {
		m.inspector.SetTransaction(m.entries[index].Transaction)
	}
	m.refreshPanel()
	m.panelViewport.GotoTop()
}

func (m *HARViewModel) refreshPanel() {
	m.panelViewport.SetContent(m.inspector.Render(m.panelViewport.Width()))
}

func (m *HARViewModel) adjustColumnWidths() {
	urlWidth := m.width - methodColumnWidth - statusColumnWidth - violationsColumnWidth - durationColumnWidth - borderPadding
	if urlWidth < minURLColumnWidth {
		urlWidth = minURLColumnWidth
	}

	m.columns[0].Width = methodColumnWidth
	m.columns[1].Width = urlWidth
	m.columns[2].Width = statusColumnWidth
	m.columns[3].Width = violationsColumnWidth
	m.columns[4].Width = durationColumnWidth

	m.table.SetColumns(m.columns)
}
