package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trails/internal/sim"
)

const (
	historyCapacity = 600
	statsWidth      = 46
)

type TickMsg time.Time

// Model steps a loop once per tick and shows its TermPort canvas next to a
// stats panel. The only key it handles is quit.
type Model struct {
	loop    *sim.Loop
	port    *TermPort
	title   string
	fps     int
	last    sim.Frame
	history []float64
	spawns  []float64
	err     error
	elapsed time.Duration
	started time.Time
}

// NewModel expects loop to render into port.
func NewModel(loop *sim.Loop, port *TermPort, title string) Model {
	fps := loop.Config().FPS
	if fps <= 0 {
		fps = 60
	}
	return Model{
		loop:    loop,
		port:    port,
		title:   title,
		fps:     fps,
		history: make([]float64, 0, historyCapacity),
		spawns:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		w := msg.Width - statsWidth - 6
		h := msg.Height - 3
		m.port.Resize(w, h)
	case TickMsg:
		if m.started.IsZero() {
			m.started = time.Time(msg)
		}
		m.elapsed = time.Time(msg).Sub(m.started)
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	f, err := m.loop.Step()
	if err != nil {
		m.err = err
	}
	m.last = f
	m.history = push(m.history, float64(f.Stats.Live))
	m.spawns = push(m.spawns, float64(f.Stats.Spawned))
}

func push(buf []float64, v float64) []float64 {
	if len(buf) == historyCapacity {
		copy(buf, buf[1:])
		buf = buf[:len(buf)-1]
	}
	return append(buf, v)
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.port.Canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("live particles"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	sys := m.loop.System()
	cam := m.loop.Camera()
	angle := math.Mod(math.Atan2(cam.Position.Z, cam.Position.X)*180/math.Pi+360, 360)

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.loop.Clock()))
	row("Live", fmt.Sprintf("%d", sys.Len()))
	row("Spawned", fmt.Sprintf("%d", sys.Spawned()))
	row("Reaped", fmt.Sprintf("%d", sys.Reaped()))
	row("Segments", fmt.Sprintf("%d", m.port.Segments()))
	row("Camera", fmt.Sprintf("%.0f°", angle))
	if m.elapsed > 0 {
		row("FPS", fmt.Sprintf("%.1f", float64(m.loop.Clock())/m.elapsed.Seconds()))
	}
	s.WriteString(labelStyle.Render("Spawns") + Sparkline(m.spawns, 24) + "\n")

	s.WriteString("\n")
	for _, mt := range m.loop.Metrics() {
		if mt.Name() == "mean_life" {
			s.WriteString(metricStyle.Render(mt.Name()) + ProgressBar(mt.Value(), 18) + "\n")
			continue
		}
		s.WriteString(metricStyle.Render(mt.Name()) + valueStyle.Render(fmt.Sprintf("%.2f", mt.Value())) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nQ:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
