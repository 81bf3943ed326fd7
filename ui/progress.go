package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// EnrichProgress carries an enrichment progress update into the UI.
type EnrichProgress struct {
	Fetched int
	Total   int
}

// EnrichDone tells the progress UI to shut down.
type EnrichDone struct{}

type progressModel struct {
	bar     progress.Model
	fetched int
	total   int
}

func newProgressModel() progressModel {
	return progressModel{
		bar: progress.New(progress.WithDefaultGradient()),
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EnrichProgress:
		m.fetched = msg.Fetched
		m.total = msg.Total
		return m, nil
	case EnrichDone:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := msg.Width - 30
		if width > 10 {
			m.bar.Width = width
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.fetched) / float64(m.total)
	}
	return fmt.Sprintf("Fetching metadata %s %d/%d\n", m.bar.ViewAs(percent), m.fetched, m.total)
}

// StartEnrichProgress launches a progress bar on stderr and returns a
// callback suitable for the enricher plus a finish function that tears the
// bar down. The callback is safe to call from the enrichment goroutine.
func StartEnrichProgress() (func(fetched, total int), func()) {
	program := tea.NewProgram(newProgressModel(), tea.WithOutput(os.Stderr))

	done := make(chan struct{})
	go func() {
		_, _ = program.Run()
		close(done)
	}()

	onProgress := func(fetched, total int) {
		program.Send(EnrichProgress{Fetched: fetched, Total: total})
	}
	finish := func() {
		program.Send(EnrichDone{})
		<-done
	}
	return onProgress, finish
}
