package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/xiangqi"
)

// searchRootParallel 每个根着法一个任务，worker 数不超过 CPU 数。
// 每个任务用独立的棋盘副本和置换表，全窗口搜索得到精确分数，
// 最后取 (score, from, to) 字典序最大者。
func (e *Engine) searchRootParallel(ctx context.Context, b *xiangqi.Board, moves []xiangqi.Move, depth int, cfg SearchConfig, stop deadlineFunc) rootOutcome {
	type rootResult struct {
		score  int
		nodes  int64
		leaves int64
		done   bool
	}
	results := make([]rootResult, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	workerStop := func() bool { return gctx.Err() != nil || stop() }

	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			if e.aborted() || workerStop() {
				return nil
			}
			local := b.Clone()
			s := e.newSearcher(local, cfg, make(map[uint64]ttEntry, 1<<14), workerStop)
			local.MakeMove(m, !cfg.RecordRootRepetitions)
			score := -s.alphaBeta(depth-1, 1, -scoreInf, scoreInf)
			results[i] = rootResult{score: score, nodes: s.nodes, leaves: s.leaves, done: !s.stopped}
			return nil
		})
	}
	_ = g.Wait()

	out := rootOutcome{complete: true}
	for i, r := range results {
		e.nodes += r.nodes
		e.leaves += r.leaves
		if !r.done {
			out.complete = false
			continue
		}
		m := moves[i]
		if !out.found || r.score > out.score || (r.score == out.score && out.move.Less(m)) {
			out.move, out.score, out.found = m, r.score, true
		}
	}
	return out
}
