package xiangqi

import "testing"

func TestActionSpace(t *testing.T) {
	InitTables()
	if n := ActionSpaceSize(); n != 2086 {
		t.Fatalf("action space size: got=%d want=2086", n)
	}
	for i, m := range ActionSpace() {
		idx, ok := ActionIndex(m)
		if !ok || idx != i {
			t.Fatalf("index of %v: got=%d,%v want=%d", m, idx, ok, i)
		}
	}
	if _, ok := ActionIndex(Move{From: 0, To: 10}); ok {
		t.Fatalf("diagonal rook step should not be in the action space")
	}
	// 帅的走法排在最前面
	if first := ActionSpace()[0]; !inPalace(Bottom, first.From) {
		t.Fatalf("first action should be a bottom palace king step, got %v", first)
	}
}

func TestLegalMovesInActionSpace(t *testing.T) {
	b := NewBoard()
	for ply := 0; ply < 60; ply++ {
		moves := b.GenerateMoves(false)
		if len(moves) == 0 {
			break
		}
		for _, m := range moves {
			if _, ok := ActionIndex(m); !ok {
				t.Fatalf("legal move %v missing from action space (%s)", m, b.FEN())
			}
		}
		b.MakeMove(moves[(ply*11)%len(moves)], true)
	}
}

func TestPalaceAndElephantSquares(t *testing.T) {
	InitTables()
	for h := Bottom; h <= Top; h++ {
		advisor, elephant := 0, 0
		for sq := 0; sq < NumSquares; sq++ {
			if len(advisorTargets[h][sq]) > 0 {
				advisor++
			}
		}
		// 从初始位出发能到达的象位
		seen := map[int]bool{}
		stack := append([]int(nil), elephantHomes[h][:]...)
		for len(stack) > 0 {
			sq := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[sq] {
				continue
			}
			seen[sq] = true
			elephant++
			stack = append(stack, elephantTargets[h][sq]...)
		}
		if advisor != 5 {
			t.Fatalf("half %d: advisor squares: got=%d want=5", h, advisor)
		}
		if elephant != 7 {
			t.Fatalf("half %d: elephant squares: got=%d want=7", h, elephant)
		}
	}
}

func TestHorseLegMatchesTable(t *testing.T) {
	InitTables()
	for sq := 0; sq < NumSquares; sq++ {
		for _, j := range horseTargets[sq] {
			if got := horseLeg(sq, j.To); got != j.Leg {
				t.Fatalf("horse %d->%d: leg=%d table=%d", sq, j.To, got, j.Leg)
			}
		}
	}
	if n := len(horseTargets[SquareAt(4, 4)]); n != 8 {
		t.Fatalf("central horse jumps: got=%d want=8", n)
	}
	if n := len(horseTargets[0]); n != 2 {
		t.Fatalf("corner horse jumps: got=%d want=2", n)
	}
}

func TestRaysStopAtEdge(t *testing.T) {
	InitTables()
	for sq := 0; sq < NumSquares; sq++ {
		for dir := 0; dir < 4; dir++ {
			if len(rays[sq][dir]) != DistToEdge[sq][dir] {
				t.Fatalf("ray %d dir %d: len=%d want=%d", sq, dir, len(rays[sq][dir]), DistToEdge[sq][dir])
			}
		}
	}
}
