package engine

import (
	"testing"

	"xiangqi/internal/xiangqi"
)

func TestVCFFindsMate(t *testing.T) {
	e := NewEngine()

	t.Run("MateInOne", func(t *testing.T) {
		b := mustBoard(t, mateInOneFEN)
		res := e.VCFSearch(b, 3)
		if !res.CanWin || res.Move != (xiangqi.Move{From: 18, To: 0}) {
			t.Fatalf("expected rook mate, got %+v", res)
		}
		if len(res.Line) != 1 {
			t.Fatalf("mate line: got=%v", res.Line)
		}
		if b.HistoryLen() != 0 {
			t.Fatalf("VCFSearch modified the board")
		}
	})

	// 两车轮流沿纵线将军
	t.Run("TwoRooks", func(t *testing.T) {
		b := mustBoard(t, "4k4/9/9/9/9/9/9/R8/R8/3K5 w - - 0 1")
		res := e.VCFSearch(b, 5)
		if !res.CanWin {
			t.Fatalf("two rooks should mate by checks")
		}
		if len(res.Line) == 0 || len(res.Line)%2 != 1 {
			t.Fatalf("mate line should end on an attacker move: %v", res.Line)
		}
		c := b.Clone()
		for _, m := range res.Line {
			if err := c.Play(m); err != nil {
				t.Fatalf("line move %v illegal: %v", m, err)
			}
		}
		if n := len(c.GenerateMoves(false)); n != 0 {
			t.Fatalf("line does not end in mate: %d replies", n)
		}
	})

	t.Run("NoChecks", func(t *testing.T) {
		b := xiangqi.NewBoard()
		if res := e.VCFSearch(b, 3); res.CanWin {
			t.Fatalf("initial position has no forced mate: %+v", res)
		}
	})
}
