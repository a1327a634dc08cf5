package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"xiangqi/internal/xiangqi"
)

// Fixture 一个局面及其全部合法着法，给其他实现对照
type Fixture struct {
	FEN     string         `json:"fen"`
	Key     uint64         `json:"key"`
	InCheck bool           `json:"in_check"`
	Moves   []string       `json:"moves"`
	Raw     []xiangqi.Move `json:"raw"`
	Actions []int          `json:"actions"` // 红方在下时的动作空间下标
}

func main() {
	games := flag.Int("games", 10, "number of random games")
	maxMoves := flag.Int("max-moves", 200, "max plies per game")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var fixtures []Fixture
	for g := 0; g < *games; g++ {
		b := xiangqi.NewBoard()
		for i := 0; i < *maxMoves; i++ {
			legal := b.GenerateMoves(false)
			fixtures = append(fixtures, fixtureOf(b, legal))
			if len(legal) == 0 {
				break
			}
			b.MakeMove(legal[rng.Intn(len(legal))], false)
		}
	}

	data, err := json.MarshalIndent(fixtures, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("write: %v", err)
	}
	fmt.Printf("Generated %d positions from %d random games to %s\n", len(fixtures), *games, *out)
}

func fixtureOf(b *xiangqi.Board, legal []xiangqi.Move) Fixture {
	f := Fixture{
		FEN:     b.FEN(),
		Key:     b.Key(),
		InCheck: b.InCheck(),
		Moves:   make([]string, 0, len(legal)),
		Raw:     legal,
	}
	for _, m := range legal {
		f.Moves = append(f.Moves, b.MoveString(m))
		// 动作空间按红方在下编号，黑方走时旋转
		if b.MovingColor() == xiangqi.Black {
			m = xiangqi.Move{From: xiangqi.FlipSquare(m.From), To: xiangqi.FlipSquare(m.To)}
		}
		if idx, ok := xiangqi.ActionIndex(m); ok {
			f.Actions = append(f.Actions, idx)
		}
	}
	return f
}
