package xiangqi

import "testing"

func TestPlanesRaw(t *testing.T) {
	b := NewBoard()
	p := b.Planes(false)
	if p[Red][King][85] != 1 || p[Black][King][4] != 1 {
		t.Fatalf("king planes wrong")
	}
	total := 0
	for c := 0; c < 2; c++ {
		for tp := 0; tp < NumPieceTypes; tp++ {
			for sq := 0; sq < NumSquares; sq++ {
				total += int(p[c][tp][sq])
			}
		}
	}
	if total != 32 {
		t.Fatalf("occupied squares: got=%d want=32", total)
	}
}

func TestPlanesAdjustPerspective(t *testing.T) {
	b := NewBoard()
	red := b.Planes(true)
	b.MakeMove(Move{From: 64, To: 67}, true)
	black := b.Planes(true)

	// 红方走：红方平面在前，红在下不翻转
	if red[0][King][85] != 1 || red[1][King][FlipSquare(4)] != 1 {
		t.Fatalf("red-to-move planes wrong")
	}
	// 黑方走：黑方平面在前，并旋转到黑方视角
	if black[0][King][85] != 1 || black[1][King][85] != 1 {
		t.Fatalf("black-to-move planes wrong")
	}
	if black[1][Cannon][67] != 1 {
		t.Fatalf("red cannon should stay at 67 in red's own frame")
	}
}
