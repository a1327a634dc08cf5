package xiangqi

import (
	"errors"
	"testing"
)

func TestFENRoundTripInitial(t *testing.T) {
	b, err := ParseFEN(InitialFEN)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := b.FEN(); got != InitialFEN {
		t.Fatalf("emit mismatch:\n got=%s\nwant=%s", got, InitialFEN)
	}
	if b.MovingColor() != Red || b.IsRedUp() {
		t.Fatalf("side/orientation wrong: moving=%v redUp=%v", b.MovingColor(), b.IsRedUp())
	}
	if n := len(b.PieceList(Red, Pawn)); n != 5 {
		t.Fatalf("red pawns: got=%d want=5", n)
	}
}

func TestFENRoundTripPlayedPositions(t *testing.T) {
	b := NewBoard()
	for ply := 0; ply < 40; ply++ {
		moves := b.GenerateMoves(false)
		if len(moves) == 0 {
			break
		}
		b.MakeMove(moves[(ply*7)%len(moves)], false)

		parsed, err := ParseFEN(b.FEN())
		if err != nil {
			t.Fatalf("ply %d: reparse failed: %v", ply, err)
		}
		if parsed.Squares() != b.Squares() || parsed.MovingColor() != b.MovingColor() {
			t.Fatalf("ply %d: reparsed board differs: %s", ply, b.FEN())
		}
		if parsed.Key() != b.Key() || parsed.Plies() != b.Plies() || parsed.Fullmoves() != b.Fullmoves() {
			t.Fatalf("ply %d: counters/key differ: %s", ply, b.FEN())
		}
	}
}

func TestFENOptionalCounters(t *testing.T) {
	b, err := ParseFEN("4k4/9/9/9/9/9/9/9/9/3K5 b")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if b.MovingColor() != Black || b.Plies() != 0 || b.Fullmoves() != 1 {
		t.Fatalf("defaults wrong: moving=%v plies=%d full=%d", b.MovingColor(), b.Plies(), b.Fullmoves())
	}
}

func TestFENRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"unknown char":   "rheakaehx/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w - - 0 1",
		"nine ranks":     "rheakaehr/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w - - 0 1",
		"short rank":     "rheakaehr/8/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w - - 0 1",
		"long rank":      "rheakaehr/9/1c5c2/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w - - 0 1",
		"missing king":   "rhea1aehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w - - 0 1",
		"two kings":      "rheakaehr/4k4/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w - - 0 1",
		"bad side":       "rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR x - - 0 1",
		"no side":        "rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR",
		"bad clock":      "rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w - - x 1",
		"too many pawns": "3k5/9/9/p1p1p1p1p/p8/9/9/9/9/4K4 w - - 0 1",
	}
	for name, fen := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFEN(fen)
			if err == nil {
				t.Fatalf("expected error for %q", fen)
			}
			if !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("error does not wrap ErrInvalidFEN: %v", err)
			}
			var fe *FENError
			if !errors.As(err, &fe) || fe.Input != fen {
				t.Fatalf("expected *FENError with input, got %v", err)
			}
		})
	}
}

func TestFENRedUpOrientation(t *testing.T) {
	b, err := ParseFEN(flippedFEN)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !b.IsRedUp() {
		t.Fatalf("red king on top should set redUp")
	}
	if got := b.FEN(); got != flippedFEN {
		t.Fatalf("emit mismatch: got=%s", got)
	}
}
