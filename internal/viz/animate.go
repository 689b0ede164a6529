package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
)

const (
	canvasWidth  = 80
	canvasHeight = 14
	graphWindow  = 200
)

type frameMsg time.Time

// Model replays a precomputed trajectory frame by frame: one circle per
// mass at its rest position plus its displacement, sinusoidal spring glyphs
// between neighbors. The trajectory is never recomputed here; the renderer
// only consumes it.
type Model struct {
	scenario string
	states   [][]float64
	times    []float64
	n        int
	spacing  float64
	maxAmp   float64
	fps      int
	frame    int
	playing  bool
	canvas   *Canvas
}

// NewModel sizes the viewport from the run's maximum amplitude. The rest
// spacing between neighboring masses is a = max(0.5, 2*maxAmplitude) so
// circles cannot overlap at peak displacement.
func NewModel(scenario string, states [][]float64, times []float64, n int, maxAmp float64, fps int) Model {
	a := math.Max(0.5, 2*maxAmp)

	c := NewCanvas(canvasWidth, canvasHeight)
	yspan := math.Max(0.3, 1.5*maxAmp)
	c.SetViewport(-2, 2+a*float64(n-1), -yspan, yspan)

	return Model{
		scenario: scenario,
		states:   states,
		times:    times,
		n:        n,
		spacing:  a,
		maxAmp:   maxAmp,
		fps:      fps,
		playing:  true,
		canvas:   c,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.frame = 0
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		}
	case frameMsg:
		if m.playing {
			m.frame++
			if m.frame >= len(m.states) {
				m.frame = 0
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) scrub(delta int) {
	m.playing = false
	m.frame += delta
	if m.frame < 0 {
		m.frame = 0
	}
	if m.frame >= len(m.states) {
		m.frame = len(m.states) - 1
	}
}

func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")
	s.WriteString(canvasStyle.Render(m.canvas.String()) + "\n\n")

	status := "PLAYING"
	if !m.playing {
		status = "PAUSED"
	}
	s.WriteString(labelStyle.Render("Status") + valueStyle.Render(status) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.times[m.frame])) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", m.frame+1, len(m.states))) + "\n")
	s.WriteString(labelStyle.Render("Amplitude") + valueStyle.Render(fmt.Sprintf("%.4f", m.maxAmp)) + "\n")

	if hist := m.history(); len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(5),
			asciigraph.Width(60),
			asciigraph.Caption("x0 displacement"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause  R:Restart  [ ]:Scrub  Q:Quit"))
	return s.String()
}

// draw renders the current frame: masses as blobs, springs as sine curves
// between neighboring rest positions.
func (m Model) draw() {
	m.canvas.Clear()
	row := m.states[m.frame]

	pos := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		pos[i] = m.spacing*float64(i) + row[i]
	}

	wiggle := 0.1 * math.Max(m.maxAmp, 0.5)
	for i := 0; i < m.n-1; i++ {
		span := pos[i+1] - pos[i]
		if span <= 0 {
			continue
		}
		for k := 0; k <= 120; k++ {
			f := float64(k) / 120
			x := pos[i] + f*span
			y := wiggle * math.Sin(60*f)
			m.canvas.Plot(x, y)
		}
	}

	for i := 0; i < m.n; i++ {
		m.canvas.Blob(pos[i], 0)
	}
}

// history returns the x0 series up to the current frame, windowed so the
// chart scrolls with playback.
func (m Model) history() []float64 {
	end := m.frame + 1
	start := 0
	if end > graphWindow {
		start = end - graphWindow
	}
	hist := make([]float64, 0, end-start)
	for _, row := range m.states[start:end] {
		hist = append(hist, row[0])
	}
	return hist
}
