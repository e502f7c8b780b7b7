package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/vec"
)

const (
	width           = 80
	height          = 24
	frameRate       = 60
	trailCapacity   = 400
	historyCapacity = 600
)

type TickMsg time.Time

// Model is the interactive pendulum view. It owns the whole session,
// theme included, so Update and View touch no package state.
type Model struct {
	cfg     pendulum.Config
	magnets []pendulum.Magnet
	initial pendulum.State
	state   pendulum.State
	t       float64
	err     error

	canvas       *Canvas
	trail        []vec.Vec2
	speedHistory []float64
	theme        int
	styles       styleSet
	running      bool
	showHelp     bool
	recording    bool
	frames       []*image.Paletted
}

// NewModel initializes the simulation and visualization state.
func NewModel(cfg pendulum.Config, magnets []pendulum.Magnet, start pendulum.State, themeName string) Model {
	theme := 0
	for i, t := range Themes {
		if t.Name == themeName {
			theme = i
			break
		}
	}
	return Model{
		cfg:          cfg,
		magnets:      magnets,
		initial:      start,
		state:        start,
		canvas:       NewCanvas(width, height, cfg.Pivot.XY(), viewExtent(cfg, magnets)),
		trail:        make([]vec.Vec2, 0, trailCapacity),
		speedHistory: make([]float64, 0, historyCapacity),
		theme:        theme,
		styles:       newStyles(Themes[theme]),
		running:      true,
	}
}

// viewExtent picks a half-width that keeps the magnet ring well inside
// the frame. Wide swings may leave it; the canvas clips them.
func viewExtent(cfg pendulum.Config, magnets []pendulum.Magnet) float64 {
	ext := cfg.RopeLength / 2
	for _, m := range magnets {
		if r := m.Position.XY().Distance(cfg.Pivot.XY()) * 3; r > ext {
			ext = r
		}
	}
	return ext
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "c":
			m.trail = m.trail[:0]
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.drop(msg.X, msg.Y)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// drop moves the drop point to the clicked cell. Mouse coordinates are
// terminal cells; the canvas sits behind one row of top padding and two
// columns of left padding.
func (m *Model) drop(x, y int) {
	col, row := x-2, y-1
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return
	}
	s, err := pendulum.NewState(m.cfg, m.canvas.CellWorld(col, row))
	if err != nil {
		return
	}
	m.initial = s
	m.reset()
	m.running = true
}

// step advances the physics one frame.
func (m *Model) step() {
	next, err := pendulum.Advance(m.state, m.cfg, m.magnets, 1.0/frameRate)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.state = next
	m.t += float64(pendulum.Steps(m.cfg, 1.0/frameRate)) * m.cfg.MicroStep

	m.trail = append(m.trail, m.state.Pos)
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}
	m.speedHistory = append(m.speedHistory, m.state.Vel.Length())
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
}

// reset returns the ball to the drop point.
func (m *Model) reset() {
	m.t = 0
	m.err = nil
	m.state = m.initial
	m.trail = m.trail[:0]
	m.speedHistory = m.speedHistory[:0]
}

// draw repaints the canvas from the current state.
func (m *Model) draw() {
	m.canvas.Clear()
	for _, mag := range m.magnets {
		m.canvas.Blob(mag.Position.XY(), 2)
	}
	m.canvas.Mark(m.cfg.Pivot.XY())
	for _, p := range m.trail {
		m.canvas.Mark(p)
	}
	m.canvas.Blob(m.state.Pos, 1)
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := m.styles.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.styles.header.Render("MAGNETIC PENDULUM") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.err != nil {
		status = "HALTED: " + m.err.Error()
	}
	if m.recording {
		status += "  REC"
	}
	s.WriteString(fmt.Sprintf("%s\n\n", status))

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}

	s.WriteString(m.styles.label.Render("Time") + m.styles.value.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(m.styles.label.Render("Position") + m.styles.value.Render(fmt.Sprintf("(%.3f, %.3f)", m.state.Pos.X, m.state.Pos.Y)) + "\n")
	s.WriteString(m.styles.label.Render("Speed") + m.styles.value.Render(fmt.Sprintf("%.3f m/s", m.state.Vel.Length())) + "\n")
	if e, err := m.state.Energy(m.cfg, m.magnets); err == nil {
		s.WriteString(m.styles.label.Render("Energy") + m.styles.value.Render(fmt.Sprintf("%.4f J", e)) + "\n")
	}
	if idx, _ := pendulum.ClosestMagnet(m.state.Pos, m.magnets); idx >= 0 {
		s.WriteString(m.styles.label.Render("Nearest") + m.styles.value.Render(fmt.Sprintf("magnet %d", idx)) + "\n")
	}
	s.WriteString(m.styles.label.Render("Theme") + m.styles.value.Render(Themes[m.theme].Name) + "\n")

	s.WriteString(m.styles.help.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme  G:Record ?:Help\nC:Clear-Trail Click:Drop"))

	statsView := m.styles.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to the drop point  ║
║  C        - Clear the trail          ║
║  Click    - Drop the ball there      ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`

// captureFrame rasterizes the canvas into a paletted frame, one 4x4
// pixel block per braille dot.
func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := width*charW, height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			pattern := int(m.canvas.Grid[row][col] - 0x2800)
			if pattern == 0 {
				continue
			}
			dotW, dotH := charW/2, charH/4
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create("pendulum.gif")
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}
