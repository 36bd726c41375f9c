package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/txview/motor"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateError
)

type readCompleteMsg struct {
	entries    []*motor.Entry
	violations int
	duration   time.Duration
}

type readErrorMsg struct {
	err error
}

// startReading streams the archive on a command goroutine; the model only sees the
// finished slice.
func (m *HARViewModel) startReading() tea.Cmd {
	reader := m.reader
	path := m.fileName
	return func() tea.Msg {
		return readTransactions(context.Background(), reader, path)
	}
}

func readTransactions(ctx context.Context, reader motor.TransactionReader, path string) tea.Msg {
	start := time.Now()
	entries, err := reader.ReadFile(ctx, path)
	if err != nil {
		return readErrorMsg{err: err}
	}

	msg := readCompleteMsg{entries: entries, duration: time.Since(start)}
	for _, e := range entries {
		msg.violations += e.ViolationCount()
	}
	return msg
}

func (m *HARViewModel) renderLoadingView() string {
	var b strings.Builder
	b.WriteString(m.loadingSpinner.View())
	b.WriteString(" ")
	b.WriteString(TitleStyle.Render("Reading transactions"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(RGBGrey).Render(filepath.Base(m.fileName)))

	return centered(m.width, m.height).Render(b.String())
}

func (m *HARViewModel) renderErrorView() string {
	heading := lipgloss.NewStyle().Foreground(RGBRed).Bold(true).Render("Unable to load " + filepath.Base(m.fileName))
	detail := lipgloss.NewStyle().Foreground(RGBGrey).Width(max(m.width-borderPadding, 20)).Render(fmt.Sprint(m.err))
	hint := lipgloss.NewStyle().Foreground(RGBBlue).Render("press q to quit")

	return centered(m.width, m.height).Render(lipgloss.JoinVertical(lipgloss.Center, heading, "", detail, "", hint))
}

func centered(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)
}

func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}
