// Package preview renders a controller's LED strip in the terminal and maps
// keys onto animation commands, for trying out animations without hardware.
package preview

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matt-g-everett/ledtween/stream"
)

type tickMsg time.Time

// Model is the bubbletea model of the preview.
type Model struct {
	controller *stream.Controller
	pixels     int
	interval   time.Duration
	width      int
	selected   int
	message    string
}

// New creates a preview of a strip of pixels LEDs, redrawn frameRate times a
// second.
func New(controller *stream.Controller, pixels int, frameRate float64) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		controller: controller,
		pixels:     pixels,
		interval:   time.Duration(float64(time.Second) / frameRate),
		width:      80,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the redraw ticker.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

var actions = map[string]string{
	"p": "play",
	" ": "pause",
	"f": "forward",
	"b": "backward",
	"r": "revert",
	"s": "stop",
	"c": "cancel",
}

// Update handles redraw ticks, resizes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.tick()
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	status := m.controller.Status()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(status)-1 {
			m.selected++
		}
	default:
		action, found := actions[key]
		if !found || len(status) == 0 {
			return m, nil
		}
		cmd := stream.Command{Name: status[m.selected].Name, Action: action, SkipDelay: true}
		if err := m.controller.HandleCommand(cmd); err != nil {
			log.Printf("Preview command failed: %v", err)
			m.message = err.Error()
		} else {
			m.message = fmt.Sprintf("%s %s", action, cmd.Name)
		}
	}
	return m, nil
}

// View draws the strip wrapped to the terminal width, the animation list and
// the key help.
func (m Model) View() string {
	var b strings.Builder

	f := m.controller.CalculateFrame(m.pixels)
	for i := 0; i < f.Len(); i++ {
		if i > 0 && i%m.width == 0 {
			b.WriteByte('\n')
		}
		r, g, bl := f.Pixel(i).Clamped().RGB255()
		fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm█", r, g, bl)
	}
	b.WriteString("\x1b[0m\n\n")

	for i, s := range m.controller.Status() {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%-16s %-8s %-10s %-8s %5.1f%%\n", cursor, s.Name, s.Layer, s.State, s.Direction, s.Fraction*100)
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(m.message + "\n")
	}
	b.WriteString("up/down select  p play  space pause  f forward  b backward  r revert  s stop  c cancel  q quit\n")
	return b.String()
}
