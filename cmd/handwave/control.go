package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/handwave/pkg/anim"
	"github.com/gwillem/handwave/pkg/hand"
	"github.com/gwillem/handwave/pkg/wire"
)

type ControlCommand struct {
	Step float64 `long:"step" default:"5" description:"Degrees per manual nudge"`
}

const (
	headerHeight = 2 // title + blank line
	statusHeight = 8 // per-finger pose lines + wrists
	legendHeight = 3 // two key-help rows + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Telemetry trace colors, one per analog input.
var potColors = map[string]string{
	"A0": "51",  // cyan
	"A1": "201", // magenta
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

type controlModel struct {
	player *anim.Player
	state  *hand.State
	prof   *hand.Profile
	poller *wire.Poller
	chart  *streamlinechart.Model
	step   float64

	width    int
	height   int
	logs     []string
	lastPot  wire.PotReading
	quitting bool
}

func (m *controlModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the engine
type potMsg wire.PotReading
type logMsg string

func waitForPot(p *wire.Poller) tea.Cmd {
	return func() tea.Msg {
		return potMsg(<-p.Readings())
	}
}

func waitForLog(player *anim.Player) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-player.Logs())
	}
}

func (m *controlModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 12 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - statusHeight - legendHeight - footerHeight - borderSize
	if height < 6 {
		height = 6
	}
	return width, height
}

func (m *controlModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialControlModel(player *anim.Player, state *hand.State, prof *hand.Profile, poller *wire.Poller, step float64) controlModel {
	chart := streamlinechart.New(80, 12,
		streamlinechart.WithYRange(0, 5),
	)

	for name, color := range potColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}

	return controlModel{
		player: player,
		state:  state,
		prof:   prof,
		poller: poller,
		chart:  &chart,
		step:   step,
	}
}

func (m controlModel) Init() tea.Cmd {
	return tea.Batch(
		waitForPot(m.poller),
		waitForLog(m.player),
	)
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case potMsg:
		m.lastPot = wire.PotReading(msg)
		m.chart.PushDataSet("A0", m.lastPot.Volt0)
		m.chart.PushDataSet("A1", m.lastPot.Volt1)
		m.chart.DrawAll()
		return m, waitForPot(m.poller)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.player)
	}

	return m, nil
}

func (m controlModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "1", "2", "3", "4", "5":
		m.player.SelectFinger(int(key[0] - '1'))

	case "up":
		m.player.AdjustJoint(hand.Top, m.step)
	case "down":
		m.player.AdjustJoint(hand.Top, -m.step)
	case "right":
		m.player.AdjustJoint(hand.Bottom, m.step)
	case "left":
		m.player.AdjustJoint(hand.Bottom, -m.step)
	case "]":
		m.player.AdjustJoint(hand.Extra, m.step)
	case "[":
		m.player.AdjustJoint(hand.Extra, -m.step)

	case "w":
		m.player.AdjustJoint(hand.Wrist1, m.step)
	case "s":
		m.player.AdjustJoint(hand.Wrist1, -m.step)
	case "d":
		m.player.AdjustJoint(hand.Wrist2, m.step)
	case "a":
		m.player.AdjustJoint(hand.Wrist2, -m.step)

	case "f":
		name := m.prof.Fingers[m.player.CurrentFinger()].Name
		if err := m.player.StartSingleWave(name); err != nil {
			m.addLog(err.Error())
		}
	case "g":
		if err := m.player.StartAllFingersWave(); err != nil {
			m.addLog(err.Error())
		}
	case "c":
		if err := m.player.StartCurl(); err != nil {
			m.addLog(err.Error())
		}
	case "t":
		name := m.prof.Fingers[m.player.CurrentFinger()].Name
		if err := m.player.StartThumbTouch(name); err != nil {
			m.addLog(err.Error())
		}
	case "o":
		if err := m.player.RunShow(anim.DefaultShow()); err != nil {
			m.addLog(err.Error())
		}

	case "l":
		tm := m.player.Timing()
		tm.Loop = !tm.Loop
		m.player.SetTiming(tm)
		m.addLog(fmt.Sprintf("loop: %v", tm.Loop))

	case " ", "x":
		m.player.Stop()
	case "r":
		m.player.ResetHand()
	}

	return m, nil
}

func (m controlModel) View() string {
	if m.quitting {
		return "Hand control stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Handwave Control"))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  mode: %s", m.player.Mode())))
	if m.player.Timing().Loop {
		sb.WriteString(statusStyle.Render("  [loop]"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(fmt.Sprintf(
		"POT  A0 %4d (%.2fV)  A1 %4d (%.2fV)",
		m.lastPot.Raw0, m.lastPot.Volt0, m.lastPot.Raw1, m.lastPot.Volt1)))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderFingers())
	sb.WriteString("\n")
	sb.WriteString(renderKeyHelp())
	sb.WriteString("\n")

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4)

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func (m controlModel) renderFingers() string {
	var lines []string
	current := m.player.CurrentFinger()

	for i, f := range m.prof.Fingers {
		pose := m.state.Snapshot(i)
		line := fmt.Sprintf("%d %-8s top %5.1f  bottom %5.1f", i+1, f.Name, pose.Top, pose.Bottom)
		if pose.HasExtra {
			line += fmt.Sprintf("  extra %5.1f", pose.Extra)
		}
		if i == current {
			lines = append(lines, activeStyle.Render("> "+line))
		} else {
			lines = append(lines, statusStyle.Render("  "+line))
		}
	}
	lines = append(lines, statusStyle.Render(fmt.Sprintf(
		"  wrist1 %5.1f  wrist2 %5.1f",
		m.state.Get(0, hand.Wrist1), m.state.Get(0, hand.Wrist2))))

	return strings.Join(lines, "\n")
}

func renderKeyHelp() string {
	rows := []string{
		"1-5 finger  arrows top/bottom  [/] thumb extra  w/s wrist1  a/d wrist2",
		"f wave  g all fingers  c curl  t thumb touch  o show  l loop  space stop  r reset",
	}
	return statusStyle.Render(strings.Join(rows, "\n"))
}

func (c *ControlCommand) Execute(args []string) error {
	cfg, err := hand.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No configuration found. Run 'handwave setup' first.")
		os.Exit(1)
	}
	if cfg.Port == "" {
		fmt.Fprintln(os.Stderr, "No port configured. Run 'handwave setup' first.")
		os.Exit(1)
	}

	fmt.Printf("Loaded configuration from %s\n", hand.DefaultConfigFile)
	fmt.Printf("Connecting to %s @ %d baud...\n", cfg.Port, cfg.Baud)

	port, err := wire.Open(cfg.Port, cfg.Baud)
	if err != nil {
		log.Fatalf("Failed to open port: %v", err)
	}
	defer port.Close()

	state := hand.NewState(&cfg.Profile)
	cmdr := wire.NewCommander(state)
	cmdr.Attach(port)

	loop := anim.NewLoop()
	loop.Start()
	defer loop.Close()

	player := anim.NewPlayer(loop, cmdr, &cfg.Profile, state)
	cmdr.OnDisconnect = func(err error) {
		player.Stop()
	}
	player.PushInit()

	poller := wire.NewPoller(port)
	poller.Start()
	defer poller.Stop()

	p := tea.NewProgram(
		initialControlModel(player, state, &cfg.Profile, poller, c.Step),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
