package xiangqi

import (
	"errors"
	"testing"
)

func TestMoveString(t *testing.T) {
	b := NewBoard()
	m := Move{From: 64, To: 67}
	if got := b.MoveString(m); got != "C(71)-74" {
		t.Fatalf("MoveString: got=%q want=%q", got, "C(71)-74")
	}
	back, err := b.ParseMove("C(71)-74")
	if err != nil || back != m {
		t.Fatalf("ParseMove: got=%v err=%v", back, err)
	}
	if got := b.MoveString(Move{From: 1, To: 20}); got != "h(01)-22" {
		t.Fatalf("black horse: got=%q", got)
	}
}

func TestParseMovePlainForm(t *testing.T) {
	b := NewBoard()
	m, err := b.ParseMove("64-67")
	if err != nil || m != (Move{From: 64, To: 67}) {
		t.Fatalf("plain form: got=%v err=%v", m, err)
	}
	if _, err := b.ParseMove("64-90"); !errors.Is(err, ErrSquareOutOfRange) {
		t.Fatalf("out of range: got %v", err)
	}
}

func TestParseMoveRejects(t *testing.T) {
	b := NewBoard()
	for _, s := range []string{"", "C71-74", "C(79)-74", "R(71)-74", "C(7x)-74"} {
		if _, err := b.ParseMove(s); !errors.Is(err, ErrBadMoveString) {
			t.Errorf("ParseMove(%q): got %v want ErrBadMoveString", s, err)
		}
	}
}
