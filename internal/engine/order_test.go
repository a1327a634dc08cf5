package engine

import (
	"testing"

	"xiangqi/internal/xiangqi"
)

func TestMaterialOrderingCapturesFirst(t *testing.T) {
	b := xiangqi.NewBoard()
	b.MakeMove(xiangqi.Move{From: 64, To: 67}, false)
	b.MakeMove(xiangqi.Move{From: 19, To: 22}, false)
	moves := b.GenerateMoves(false)
	orderByMaterial(b, moves, DefaultOrderCoef)

	seenQuiet := false
	for _, m := range moves {
		capture := b.At(m.To) != xiangqi.NoPiece
		if capture && seenQuiet {
			t.Fatalf("capture %v ordered after a quiet move", m)
		}
		if !capture {
			seenQuiet = true
		}
	}
	if b.At(moves[0].To) == xiangqi.NoPiece {
		t.Fatalf("first move should be a capture")
	}
}

func TestMaterialOrderingIsStable(t *testing.T) {
	b := xiangqi.NewBoard()
	moves := b.GenerateMoves(false)
	orig := append([]xiangqi.Move(nil), moves...)
	orderByMaterial(b, moves, 1)
	// 同一兵种的非吃子着法保持生成顺序
	pos := make(map[xiangqi.Move]int, len(moves))
	for i, m := range moves {
		pos[m] = i
	}
	for i := 1; i < len(orig); i++ {
		prev, cur := orig[i-1], orig[i]
		quiet := b.At(prev.To) == xiangqi.NoPiece && b.At(cur.To) == xiangqi.NoPiece
		if quiet && b.At(prev.From).Type() == b.At(cur.From).Type() && pos[prev] > pos[cur] {
			t.Fatalf("stable order broken between %v and %v", prev, cur)
		}
	}
}

func TestMoveToFront(t *testing.T) {
	ms := []xiangqi.Move{{From: 1, To: 2}, {From: 3, To: 4}, {From: 5, To: 6}}
	moveToFront(ms, xiangqi.Move{From: 5, To: 6})
	want := []xiangqi.Move{{From: 5, To: 6}, {From: 1, To: 2}, {From: 3, To: 4}}
	for i := range ms {
		if ms[i] != want[i] {
			t.Fatalf("moveToFront: got=%v want=%v", ms, want)
		}
	}
}
