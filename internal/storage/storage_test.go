package storage

import (
	"os"
	"path/filepath"
	"testing"

	"xiangqi/internal/xiangqi"
)

func openMem(t *testing.T) *Storage {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("open in-memory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGameRecords(t *testing.T) {
	s := openMem(t)

	rec := &GameRecord{
		ID:       "g1",
		StartFEN: xiangqi.InitialFEN,
		Moves:    []xiangqi.Move{{From: 64, To: 67}, {From: 19, To: 22}},
		Status:   "ongoing",
	}
	if err := s.SaveGame(rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}

	got, err := s.LoadGame("g1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.StartFEN != rec.StartFEN || len(got.Moves) != 2 || got.Moves[1] != rec.Moves[1] {
		t.Fatalf("loaded record differs: %+v", got)
	}

	if err := s.SaveGame(&GameRecord{ID: "g2", StartFEN: xiangqi.InitialFEN}); err != nil {
		t.Fatalf("save g2: %v", err)
	}
	list, err := s.ListGames()
	if err != nil || len(list) != 2 || list[0].ID != "g1" {
		t.Fatalf("list: got=%v err=%v", list, err)
	}

	if err := s.DeleteGame("g1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.LoadGame("g1"); !IsNotFound(err) {
		t.Fatalf("deleted game: got %v want ErrNotFound", err)
	}
	if err := s.SaveGame(&GameRecord{}); err == nil {
		t.Fatalf("record without id should fail")
	}
}

func TestAnalysisCache(t *testing.T) {
	s := openMem(t)
	rec := &AnalysisRecord{
		FEN:      xiangqi.InitialFEN,
		Depth:    3,
		BestMove: xiangqi.Move{From: 64, To: 67},
		Score:    12,
		PV:       []xiangqi.Move{{From: 64, To: 67}},
	}
	if err := s.SaveAnalysis(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	// 计数字段不同的同一局面命中同一条缓存
	sameBoard := "rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w - - 4 9"
	got, err := s.LoadAnalysis(sameBoard, 3, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.BestMove != rec.BestMove || got.Score != 12 {
		t.Fatalf("loaded analysis differs: %+v", got)
	}
	if _, err := s.LoadAnalysis(xiangqi.InitialFEN, 4, false); !IsNotFound(err) {
		t.Fatalf("other depth: got %v want ErrNotFound", err)
	}
	if _, err := s.LoadAnalysis(xiangqi.InitialFEN, 3, true); !IsNotFound(err) {
		t.Fatalf("parallel lookup of a sequential result: got %v want ErrNotFound", err)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveGame(&GameRecord{ID: "persist", StartFEN: xiangqi.InitialFEN}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.LoadGame("persist"); err != nil {
		t.Fatalf("record lost after reopen: %v", err)
	}
}

func TestPositionPart(t *testing.T) {
	if got := positionPart(xiangqi.InitialFEN); got != "rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w" {
		t.Fatalf("positionPart: %q", got)
	}
}
