// Package tui 终端里和引擎对弈
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"xiangqi/internal/engine"
	"xiangqi/internal/render"
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

const maxLogLines = 200

// engineMoveMsg 引擎想完一步
type engineMoveMsg struct {
	move  xiangqi.Move
	ok    bool
	score int
	depth int
}

type Model struct {
	games *game.Manager
	fen   string
	snap  game.Snapshot
	human xiangqi.Color
	agent engine.Agent

	thinking bool
	input    textinput.Model
	logLines []string

	width  int
	height int
}

func NewModel(games *game.Manager, fen string, human xiangqi.Color, agent engine.Agent) (Model, error) {
	ti := textinput.New()
	ti.Placeholder = "C(71)-74, 64-67, undo, new, quit"
	ti.Prompt = "> "
	ti.CharLimit = 40
	ti.Width = 40
	ti.Focus()

	m := Model{
		games: games,
		fen:   fen,
		human: human,
		agent: agent,
		input: ti,
	}
	if err := m.newGame(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *Model) newGame() error {
	snap, err := m.games.NewGame(m.fen)
	if err != nil {
		return err
	}
	m.snap = snap
	m.logLines = nil
	m.appendLog(fmt.Sprintf("new game, you play %s", m.human))
	return nil
}

func (m Model) engineToMove() bool {
	return m.snap.Status == game.StatusOngoing && m.snap.ToMove != m.human
}

func (m Model) Init() tea.Cmd {
	if m.engineToMove() {
		return m.think()
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case engineMoveMsg:
		return m, m.applyEngineMove(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			return m, m.execCommand(line)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// think 在 tea 的 goroutine 里搜索一个副本
func (m *Model) think() tea.Cmd {
	b, err := m.games.CloneBoard(m.snap.ID)
	if err != nil {
		m.appendLog(fmt.Sprintf("error: %v", err))
		return nil
	}
	m.thinking = true
	agent := m.agent
	return func() tea.Msg {
		mv, ok := agent.ChooseMove(context.Background(), b)
		out := engineMoveMsg{move: mv, ok: ok}
		if ab, isAB := agent.(*engine.ABAgent); isAB {
			out.score, out.depth = ab.Last.Score, ab.Last.Depth
		}
		return out
	}
}

func (m *Model) applyEngineMove(msg engineMoveMsg) tea.Cmd {
	m.thinking = false
	if !msg.ok {
		m.appendLog("engine has no move")
		return nil
	}
	return m.play(msg.move, fmt.Sprintf(" (depth %d, score %d)", msg.depth, msg.score))
}

func (m *Model) play(mv xiangqi.Move, note string) tea.Cmd {
	b, err := m.games.CloneBoard(m.snap.ID)
	if err != nil {
		m.appendLog(fmt.Sprintf("error: %v", err))
		return nil
	}
	snap, err := m.games.Play(m.snap.ID, mv)
	if err != nil {
		m.appendLog(fmt.Sprintf("%s: %v", mv, err))
		return nil
	}
	m.snap = snap
	m.appendLog(fmt.Sprintf("%d. %s %s%s", len(snap.Moves), b.MovingColor(), b.MoveString(mv), note))

	if snap.Status != game.StatusOngoing {
		m.appendLog(resultLine(snap))
		return nil
	}
	if m.engineToMove() {
		return m.think()
	}
	return nil
}

func (m *Model) execCommand(line string) tea.Cmd {
	switch line {
	case "quit", "q":
		return tea.Quit
	case "new":
		if err := m.newGame(); err != nil {
			m.appendLog(fmt.Sprintf("error: %v", err))
			return nil
		}
		if m.engineToMove() {
			return m.think()
		}
		return nil
	}

	if m.thinking {
		m.appendLog("engine is thinking")
		return nil
	}

	if line == "undo" {
		// 连引擎的回应一起退，回到自己走之前
		for i := 0; i < 2 && len(m.snap.Moves) > 0; i++ {
			snap, err := m.games.Undo(m.snap.ID)
			if err != nil {
				m.appendLog(fmt.Sprintf("undo: %v", err))
				return nil
			}
			m.snap = snap
			if m.snap.ToMove == m.human {
				break
			}
		}
		m.appendLog(fmt.Sprintf("back to move %d", len(m.snap.Moves)))
		return nil
	}

	if m.snap.Status != game.StatusOngoing {
		m.appendLog("game is over, type new")
		return nil
	}
	if m.snap.ToMove != m.human {
		m.appendLog("not your turn")
		return nil
	}
	b, err := m.games.CloneBoard(m.snap.ID)
	if err != nil {
		m.appendLog(fmt.Sprintf("error: %v", err))
		return nil
	}
	mv, err := b.ParseMove(line)
	if err != nil {
		m.appendLog(fmt.Sprintf("bad move: %v", err))
		return nil
	}
	return m.play(mv, "")
}

func resultLine(s game.Snapshot) string {
	if s.Status == game.StatusDraw {
		return "draw by ply cap"
	}
	return fmt.Sprintf("%s, %s wins", s.Status, s.Winner)
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	status := string(m.snap.Status)
	if m.thinking {
		status = "thinking"
	}
	header := titleStyle.Render(fmt.Sprintf("xiangqi  [%s]  you: %s", status, m.human))

	b, err := m.games.CloneBoard(m.snap.ID)
	boardView := ""
	if err == nil {
		boardView = render.Board(b, render.Options{Highlight: m.snap.LastMove})
	}

	logHeight := max(5, m.height-18)
	logStart := max(0, len(m.logLines)-logHeight)
	logBox := boxStyle.Width(max(30, m.width-40)).Height(logHeight).
		Render(strings.Join(m.logLines[logStart:], "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, boardView, " ", logBox)
	return header + "\n" + body + "\n" + m.input.View()
}

func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
