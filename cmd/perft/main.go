package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", xiangqi.InitialFEN, "position")
	depth := flag.Int("depth", 3, "perft depth")
	divide := flag.Bool("divide", false, "print counts per root move")
	flag.Parse()

	b, err := xiangqi.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("fen: %v", err)
	}

	start := time.Now()
	if *divide {
		counts := b.Divide(*depth)
		moves := make([]xiangqi.Move, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Slice(moves, func(i, j int) bool { return moves[i].Less(moves[j]) })

		var total uint64
		for _, m := range moves {
			fmt.Printf("%s %d\n", b.MoveString(m), counts[m])
			total += counts[m]
		}
		fmt.Printf("moves=%d total=%d time=%s\n", len(moves), total, time.Since(start))
		return
	}

	for d := 1; d <= *depth; d++ {
		t := time.Now()
		n := b.Perft(d)
		fmt.Printf("depth=%d nodes=%d time=%s\n", d, n, time.Since(t))
	}
}
