package game

import (
	"errors"
	"testing"

	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

func TestManagerPlayUndo(t *testing.T) {
	m := NewManager(nil)
	snap, err := m.NewGame("")
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if snap.ID == "" || len(snap.LegalMoves) != 44 || snap.Status != StatusOngoing {
		t.Fatalf("new game snapshot: id=%q moves=%d status=%s", snap.ID, len(snap.LegalMoves), snap.Status)
	}

	after, err := m.Play(snap.ID, xiangqi.Move{From: 64, To: 67})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if after.ToMove != xiangqi.Black || after.LastMove == nil || *after.LastMove != (xiangqi.Move{From: 64, To: 67}) {
		t.Fatalf("after play: %+v", after)
	}
	if len(after.Notation) != 1 || after.Notation[0] != "C(71)-74" {
		t.Fatalf("notation: %v", after.Notation)
	}

	if _, err := m.Play(snap.ID, xiangqi.Move{From: 0, To: 1}); !errors.Is(err, xiangqi.ErrIllegalMove) {
		t.Fatalf("illegal move: got %v", err)
	}

	back, err := m.Undo(snap.ID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if back.FEN != xiangqi.InitialFEN || len(back.Moves) != 0 {
		t.Fatalf("undo did not restore: %s", back.FEN)
	}
	if _, err := m.Undo(snap.ID); !errors.Is(err, xiangqi.ErrHistoryEmpty) {
		t.Fatalf("undo underflow: got %v", err)
	}
	if _, err := m.Snapshot("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("missing game: got %v", err)
	}
}

func TestManagerCheckmateStatus(t *testing.T) {
	m := NewManager(nil)
	snap, err := m.NewGame("4k4/4p4/R8/9/9/9/9/9/9/3K5 w - - 0 1")
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	mated, err := m.Play(snap.ID, xiangqi.Move{From: 18, To: 0})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if mated.Status != StatusCheckmate || mated.Winner != "red" || !mated.InCheck {
		t.Fatalf("status: %s winner=%q check=%v", mated.Status, mated.Winner, mated.InCheck)
	}
	if _, err := m.Play(snap.ID, xiangqi.Move{From: 4, To: 3}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after mate: got %v", err)
	}
}

func TestManagerStalemateAndDraw(t *testing.T) {
	m := NewManager(nil)
	// 黑将在 3，能去的 4、12 都被车控制，本身不被将军
	snap, err := m.NewGame("3k5/R8/4R4/9/9/9/9/9/9/4K4 b - - 0 1")
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if snap.Status != StatusStalemate || snap.Winner != "red" || snap.InCheck {
		t.Fatalf("stalemate: %s winner=%q check=%v moves=%v", snap.Status, snap.Winner, snap.InCheck, snap.LegalMoves)
	}

	m.MaxPlies = 1
	snap, err = m.NewGame("")
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	drawn, err := m.Play(snap.ID, xiangqi.Move{From: 82, To: 65})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if drawn.Status != StatusDraw {
		t.Fatalf("ply cap: got %s", drawn.Status)
	}
}

func TestManagerRestoresFromStore(t *testing.T) {
	st, err := storage.Open("")
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	defer st.Close()

	m := NewManager(st)
	snap, err := m.NewGame("")
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if _, err := m.Play(snap.ID, xiangqi.Move{From: 64, To: 67}); err != nil {
		t.Fatalf("play: %v", err)
	}

	fresh := NewManager(st)
	got, err := fresh.Snapshot(snap.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(got.Moves) != 1 || got.ToMove != xiangqi.Black {
		t.Fatalf("restored game: moves=%v toMove=%v", got.Moves, got.ToMove)
	}

	b, err := fresh.CloneBoard(snap.ID)
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	b.MakeMove(b.GenerateMoves(false)[0], false)
	again, _ := fresh.Snapshot(snap.ID)
	if len(again.Moves) != 1 || again.FEN != got.FEN {
		t.Fatalf("clone mutated the game")
	}
}
