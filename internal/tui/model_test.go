package tui

import (
	"strings"
	"testing"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

func newTestModel(t *testing.T, fen string, human xiangqi.Color) Model {
	t.Helper()
	agent, err := engine.NewAgent("ab", engine.SearchConfig{MaxDepth: 1})
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(game.NewManager(nil), fen, human, agent)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestHumanMoveThenEngineReply(t *testing.T) {
	m := newTestModel(t, xiangqi.InitialFEN, xiangqi.Red)

	cmd := m.execCommand("C(71)-74")
	if cmd == nil || !m.thinking {
		t.Fatalf("expected the engine to start thinking, log %v", m.logLines)
	}
	msg, ok := cmd().(engineMoveMsg)
	if !ok || !msg.ok {
		t.Fatalf("engine reply: %+v", msg)
	}
	next, _ := m.Update(msg)
	m = next.(Model)
	if m.thinking || len(m.snap.Moves) != 2 || m.snap.ToMove != xiangqi.Red {
		t.Fatalf("after reply: moves=%v thinking=%v", m.snap.Moves, m.thinking)
	}

	m.execCommand("undo")
	if len(m.snap.Moves) != 0 {
		t.Fatalf("undo left %d moves", len(m.snap.Moves))
	}
	if !strings.Contains(m.View(), "you: red") {
		t.Fatalf("view header missing")
	}
}

func TestRejectsBadInput(t *testing.T) {
	m := newTestModel(t, xiangqi.InitialFEN, xiangqi.Red)
	if cmd := m.execCommand("zz"); cmd != nil {
		t.Fatalf("bad input produced a command")
	}
	if cmd := m.execCommand("0-1"); cmd != nil {
		t.Fatalf("illegal move produced a command")
	}
	if len(m.snap.Moves) != 0 || len(m.logLines) < 3 {
		t.Fatalf("state changed: moves=%v log=%v", m.snap.Moves, m.logLines)
	}
}

func TestEngineMovesFirstAsRed(t *testing.T) {
	m := newTestModel(t, xiangqi.InitialFEN, xiangqi.Black)
	if !m.engineToMove() || m.Init() == nil {
		t.Fatalf("engine should open the game")
	}
}

func TestMateEndsGame(t *testing.T) {
	m := newTestModel(t, "4k4/4p4/R8/9/9/9/9/9/9/3K5 w - - 0 1", xiangqi.Red)
	if cmd := m.execCommand("R(20)-00"); cmd != nil {
		t.Fatalf("engine asked to move after mate")
	}
	if m.snap.Status != game.StatusCheckmate {
		t.Fatalf("status %s", m.snap.Status)
	}
	if last := m.logLines[len(m.logLines)-1]; last != "checkmate, red wins" {
		t.Fatalf("result line %q", last)
	}
}
