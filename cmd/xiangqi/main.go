package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/render"
	"xiangqi/internal/server/game"
	"xiangqi/internal/storage"
	"xiangqi/internal/tui"
	"xiangqi/internal/xiangqi"
)

func main() {
	agentName := flag.String("agent", "ab", "search agent: ab, az or abz")
	depth := flag.Int("depth", 3, "search depth")
	maxPlies := flag.Int("max-plies", xiangqi.DefaultMaxPlies, "ply cap before the game is drawn")
	fen := flag.String("fen", xiangqi.InitialFEN, "start position")
	orderCoef := flag.Int("order-coef", engine.DefaultOrderCoef, "capture ordering coefficient")
	parallel := flag.Bool("parallel", false, "search root moves in parallel")
	quiescence := flag.Bool("quiescence", false, "extend leaves with a capture search")
	timeLimit := flag.Duration("time", 0, "time limit per move, 0 for none")
	show := flag.Bool("show", false, "print the board after every move")
	vcf := flag.Int("vcf", 0, "only look for a forced mate by checks within this many plies")
	dbDir := flag.String("db", "", "badger directory to save the game in, empty for none")
	play := flag.String("play", "", "play against the agent in the terminal as red or black")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *vcf > 0 {
		if err := runVCF(*fen, *vcf); err != nil {
			log.Fatalf("vcf: %v", err)
		}
		return
	}

	cfg := engine.SearchConfig{
		MaxDepth:              *depth,
		TimeLimit:             *timeLimit,
		OrderCoef:             *orderCoef,
		Quiescence:            *quiescence,
		UseTT:                 true,
		Parallel:              *parallel,
		RecordRootRepetitions: true,
		OnIteration: func(r engine.SearchResult) {
			log.Printf("depth=%d score=%d nodes=%d move=%s", r.Depth, r.Score, r.Nodes, r.BestMove)
		},
	}
	agent, err := engine.NewAgent(*agentName, cfg)
	if err != nil {
		log.Fatalf("agent: %v", err)
	}

	var store game.Store
	if *dbDir != "" {
		st, err := storage.Open(*dbDir)
		if err != nil {
			log.Fatalf("storage: %v", err)
		}
		defer st.Close()
		store = st
	}
	m := game.NewManager(store)
	m.MaxPlies = *maxPlies

	if *play != "" {
		human, err := parseColor(*play)
		if err != nil {
			log.Fatalf("play: %v", err)
		}
		// 交互模式下不在终端里打日志
		agent, _ = engine.NewAgent(*agentName, withoutProgress(cfg))
		model, err := tui.NewModel(m, *fen, human, agent)
		if err != nil {
			log.Fatalf("play: %v", err)
		}
		if err := tui.Run(model); err != nil {
			log.Fatalf("play: %v", err)
		}
		return
	}

	start := time.Now()
	final, err := playGame(ctx, m, *fen, agent, *show)
	if err != nil {
		log.Fatalf("game: %v", err)
	}
	fmt.Printf("result: %s after %d plies in %s\n", describe(final), len(final.Moves), time.Since(start).Round(time.Millisecond))
	if *dbDir != "" {
		fmt.Printf("saved game %s\n", final.ID)
	}
}

// playGame 同一个代理执双方，直到终局或 ctx 取消
func playGame(ctx context.Context, m *game.Manager, fen string, agent engine.Agent, show bool) (game.Snapshot, error) {
	snap, err := m.NewGame(fen)
	if err != nil {
		return snap, err
	}
	if show {
		b, _ := m.CloneBoard(snap.ID)
		fmt.Println(render.Board(b, render.Options{}))
	}

	for snap.Status == game.StatusOngoing {
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		b, err := m.CloneBoard(snap.ID)
		if err != nil {
			return snap, err
		}
		mv, ok := agent.ChooseMove(ctx, b)
		if !ok {
			break
		}
		notation := b.MoveString(mv)
		if snap, err = m.Play(snap.ID, mv); err != nil {
			return snap, err
		}
		fmt.Printf("%3d. %s %s\n", len(snap.Moves), b.MovingColor(), notation)
		if show {
			after, _ := m.CloneBoard(snap.ID)
			fmt.Println(render.Board(after, render.Options{Highlight: &mv}))
		}
	}
	return snap, nil
}

func withoutProgress(cfg engine.SearchConfig) engine.SearchConfig {
	cfg.OnIteration = nil
	return cfg
}

func parseColor(s string) (xiangqi.Color, error) {
	switch s {
	case "red", "r", "w":
		return xiangqi.Red, nil
	case "black", "b":
		return xiangqi.Black, nil
	}
	return xiangqi.Red, fmt.Errorf("unknown side %q", s)
}

func describe(s game.Snapshot) string {
	switch s.Status {
	case game.StatusCheckmate, game.StatusStalemate:
		return fmt.Sprintf("%s wins by %s", s.Winner, s.Status)
	case game.StatusDraw:
		return "draw by ply cap"
	}
	return "unfinished"
}

func runVCF(fen string, depth int) error {
	b, err := xiangqi.ParseFEN(fen)
	if err != nil {
		return err
	}
	res := engine.NewEngine().VCFSearch(b, depth)
	if !res.CanWin {
		fmt.Printf("no forced mate within %d plies (%d nodes)\n", depth, res.Nodes)
		return nil
	}
	c := b.Clone()
	for i, mv := range res.Line {
		fmt.Printf("%3d. %s\n", i+1, c.MoveString(mv))
		c.MakeMove(mv, false)
	}
	fmt.Printf("mate in %d plies (%d nodes)\n", len(res.Line), res.Nodes)
	return nil
}
