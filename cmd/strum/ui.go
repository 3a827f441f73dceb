package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"strum/player"
	"strum/source"
	"strum/transport"
)

const UI_TICK_INTERVAL = 100 * time.Millisecond

const (
	SEEK_STEP_SECONDS = 5.0
	VOLUME_STEP       = 0.1
)

type model struct {
	state    *transport.State
	sess     *player.Session
	tags     source.Tags
	duration float64
	bar      progress.Model

	termWidth  int
	termHeight int

	elapsed float64
	volume  float32
	paused  bool
	lastErr string
}

// Ticks drive the view: transport state is polled rather than pushed, and
// the tick also notices when the decode goroutine has finished so a track
// ending ends the program without a quit key.
type tickMsg time.Time

// tea message type for producer events
type eventMsg player.Event

func tick() tea.Cmd {
	return tea.Tick(UI_TICK_INTERVAL, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func listenForEvents(events <-chan player.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-events)
	}
}

func initialModel(state *transport.State, sess *player.Session, tags source.Tags, duration float64) model {
	return model{
		state:    state,
		sess:     sess,
		tags:     tags,
		duration: duration,
		volume:   state.Volume(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tick(), listenForEvents(m.sess.Events()))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.elapsed = m.state.Elapsed()
		m.volume = m.state.Volume()
		m.paused = m.state.Paused()
		select {
		case <-m.sess.Done():
			return m, tea.Quit
		default:
		}
		return m, tick()
	case eventMsg:
		if e, ok := player.Event(msg).(player.ErrorEvent); ok {
			m.lastErr = e.Err.Error()
		}
		return m, listenForEvents(m.sess.Events())
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.state.RequestStop()
			return m, tea.Quit
		case " ":
			m.paused = m.state.TogglePause()
		case "left":
			m.state.RequestSeek(m.state.Elapsed() - SEEK_STEP_SECONDS)
		case "right":
			m.state.RequestSeek(m.state.Elapsed() + SEEK_STEP_SECONDS)
		case "up":
			m.volume = m.state.AdjustVolume(VOLUME_STEP)
		case "down":
			m.volume = m.state.AdjustVolume(-VOLUME_STEP)
		}
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.bar.Width = msg.Width - 4
	}

	return m, nil
}

func (m model) View() string {
	headingStyle := lipgloss.NewStyle().
		Width(m.termWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color("86"))
	s := headingStyle.Render("Strum")
	s += "\n\n"

	infoStyle := lipgloss.NewStyle().
		Width(m.termWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color("87"))
	s += infoStyle.Render(fmt.Sprintf("%s\n%s\n%s", m.tags.Title, m.tags.Artist, m.tags.Album))
	s += "\n\n"

	if m.duration > 0 {
		ratio := m.elapsed / m.duration
		if ratio > 1 {
			ratio = 1
		}
		s += "  " + m.bar.ViewAs(ratio) + "\n"
		s += fmt.Sprintf("  %s / %s\n\n", formatTime(m.elapsed), formatTime(m.duration))
	} else {
		s += fmt.Sprintf("  %s\n\n", formatTime(m.elapsed))
	}

	status := "Playing"
	if m.paused {
		status = "Paused"
	}
	s += fmt.Sprintf("  Status: %s\n", status)
	s += fmt.Sprintf("  Volume: %.0f%%\n", m.volume*100)

	if m.lastErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		s += "\n  " + errStyle.Render(m.lastErr) + "\n"
	}

	s += "\n  [space] pause/resume  [←/→] seek 5s  [↑/↓] volume  [q] quit\n"
	return s
}

func formatTime(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
