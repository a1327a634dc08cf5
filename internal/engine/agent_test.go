package engine

import (
	"context"
	"errors"
	"testing"

	"xiangqi/internal/xiangqi"
)

func TestNewAgent(t *testing.T) {
	a, err := NewAgent("ab", SearchConfig{MaxDepth: 2})
	if err != nil {
		t.Fatalf("ab agent: %v", err)
	}
	b := mustBoard(t, mateInOneFEN)
	m, ok := a.ChooseMove(context.Background(), b)
	if !ok || m != (xiangqi.Move{From: 18, To: 0}) {
		t.Fatalf("ChooseMove: got=%v ok=%v", m, ok)
	}
	if b.HistoryLen() != 0 {
		t.Fatalf("agent modified the caller's board")
	}

	for _, name := range []string{"az", "abz"} {
		if _, err := NewAgent(name, SearchConfig{}); !errors.Is(err, ErrAgentUnavailable) {
			t.Errorf("%s: got %v want ErrAgentUnavailable", name, err)
		}
	}
	if _, err := NewAgent("mcts", SearchConfig{}); err == nil {
		t.Errorf("unknown agent should fail")
	}
}
