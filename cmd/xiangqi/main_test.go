package main

import (
	"context"
	"testing"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

func TestPlayGameMateInOne(t *testing.T) {
	agent, err := engine.NewAgent("ab", engine.SearchConfig{MaxDepth: 2})
	if err != nil {
		t.Fatal(err)
	}
	final, err := playGame(context.Background(), game.NewManager(nil), "4k4/4p4/R8/9/9/9/9/9/9/3K5 w - - 0 1", agent, false)
	if err != nil {
		t.Fatalf("playGame: %v", err)
	}
	if final.Status != game.StatusCheckmate || final.Winner != "red" || len(final.Moves) != 1 {
		t.Fatalf("final: status=%s winner=%s moves=%v", final.Status, final.Winner, final.Moves)
	}
	if got := describe(final); got != "red wins by checkmate" {
		t.Fatalf("describe: %q", got)
	}
}

func TestPlayGamePlyCap(t *testing.T) {
	agent, _ := engine.NewAgent("ab", engine.SearchConfig{MaxDepth: 1})
	m := game.NewManager(nil)
	m.MaxPlies = 4
	final, err := playGame(context.Background(), m, "4k4/9/9/9/9/9/9/9/9/R3K4 w - - 0 1", agent, false)
	if err != nil {
		t.Fatalf("playGame: %v", err)
	}
	if final.Status == game.StatusOngoing {
		t.Fatalf("game did not finish after %d moves", len(final.Moves))
	}
}

func TestParseColor(t *testing.T) {
	for in, want := range map[string]xiangqi.Color{"red": xiangqi.Red, "w": xiangqi.Red, "black": xiangqi.Black, "b": xiangqi.Black} {
		got, err := parseColor(in)
		if err != nil || got != want {
			t.Errorf("parseColor(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseColor("green"); err == nil {
		t.Errorf("parseColor accepted green")
	}
}
