package engine

import (
	"context"
	"time"

	"xiangqi/internal/xiangqi"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000

	DefaultQuiescenceDepth = 6

	// 每隔多少个节点检查一次超时与中止
	stopCheckInterval = 2048
)

// 搜索配置
type SearchConfig struct {
	MaxDepth        int           // 最大搜索深度（ply）
	TimeLimit       time.Duration // 0 表示不限制
	OrderCoef       int           // 吃子排序系数，0 取默认 250
	Quiescence      bool          // 叶子节点接静态搜索
	QuiescenceDepth int           // 静态搜索最大层数，0 取默认
	UseTT           bool
	Parallel        bool // 根节点按着法并行

	// 根节点着法按对局着法计入重复局面表，使之后的搜索能看到
	RecordRootRepetitions bool

	// 每完成一层迭代回调一次，在搜索所在的 goroutine 上调用
	OnIteration func(SearchResult)
}

func (c SearchConfig) withDefaults() SearchConfig {
	if c.MaxDepth <= 0 {
		c.MaxDepth = 3
	}
	if c.OrderCoef == 0 {
		c.OrderCoef = DefaultOrderCoef
	}
	if c.QuiescenceDepth <= 0 {
		c.QuiescenceDepth = DefaultQuiescenceDepth
	}
	return c
}

// 搜索结果
type SearchResult struct {
	BestMove xiangqi.Move
	Found    bool          // 无合法着法时为 false
	Score    int           // 走子方视角
	Depth    int           // 最后完成的深度
	Nodes    int64         // 节点数
	Leaves   int64         // 叶子数（depth 为 0 的节点）
	TimeUsed time.Duration // 花费时间
	PV       []xiangqi.Move
}

// IsMate 分数是否为杀棋分
func (r SearchResult) IsMate() bool {
	return r.Score > mateBound || r.Score < -mateBound
}

// Search 迭代加深。中止或超时时返回最后完成的一层；
// 第一层都没完成时返回本层已搜到的最好着法，再不行返回第一个合法着法。
func (e *Engine) Search(ctx context.Context, b *xiangqi.Board, cfg SearchConfig) SearchResult {
	cfg = cfg.withDefaults()
	start := time.Now()
	e.nodes, e.leaves = 0, 0
	// Search 开始前的 Abort 同样有效，返回时才清除
	defer e.resetAbort()

	var deadline time.Time
	if cfg.TimeLimit > 0 {
		deadline = start.Add(cfg.TimeLimit)
	}
	stop := func() bool {
		if ctx.Err() != nil {
			return true
		}
		return !deadline.IsZero() && time.Now().After(deadline)
	}

	root := b.GenerateMoves(false)
	if len(root) == 0 {
		return SearchResult{TimeUsed: time.Since(start)}
	}
	orderByMaterial(b, root, cfg.OrderCoef)

	var (
		best    SearchResult
		partial rootOutcome
		pvMove  xiangqi.Move
		hasPV   bool
	)
	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		if e.aborted() || stop() {
			break
		}
		moves := append([]xiangqi.Move(nil), root...)
		if hasPV {
			moveToFront(moves, pvMove)
		}

		var out rootOutcome
		if cfg.Parallel && len(moves) > 1 {
			out = e.searchRootParallel(ctx, b, moves, depth, cfg, stop)
		} else {
			out = e.searchRoot(b, moves, depth, cfg, stop)
		}
		if !out.complete {
			partial = out
			break
		}

		pvMove, hasPV = out.move, true
		best = SearchResult{
			BestMove: out.move,
			Found:    true,
			Score:    out.score,
			Depth:    depth,
			Nodes:    e.nodes,
			Leaves:   e.leaves,
			TimeUsed: time.Since(start),
		}
		best.PV = e.principalVariation(b, out.move, depth, cfg)
		if cfg.OnIteration != nil {
			cfg.OnIteration(best)
		}
		// 已找到最快的杀法
		if out.score >= CheckmateValue-1 {
			break
		}
	}

	if !best.Found {
		best.Found = true
		if partial.found {
			best.BestMove, best.Score = partial.move, partial.score
		} else {
			best.BestMove = root[0]
		}
		best.PV = []xiangqi.Move{best.BestMove}
	}
	best.Nodes = e.nodes
	best.Leaves = e.leaves
	best.TimeUsed = time.Since(start)
	return best
}

type rootOutcome struct {
	move     xiangqi.Move
	score    int
	found    bool
	complete bool
}

func (e *Engine) newSearcher(b *xiangqi.Board, cfg SearchConfig, tt map[uint64]ttEntry, stop deadlineFunc) *searcher {
	return &searcher{e: e, b: b, cfg: cfg, tt: tt, deadline: stop}
}

// 单线程根节点：同分时先出现的着法胜出
func (e *Engine) searchRoot(b *xiangqi.Board, moves []xiangqi.Move, depth int, cfg SearchConfig, stop deadlineFunc) rootOutcome {
	s := e.newSearcher(b, cfg, e.tt, stop)
	defer func() {
		e.tt = s.tt
		e.nodes += s.nodes
		e.leaves += s.leaves
	}()

	out := rootOutcome{score: -scoreInf}
	alpha, beta := -scoreInf, scoreInf
	for _, m := range moves {
		if s.checkStop() {
			return out
		}
		b.MakeMove(m, !cfg.RecordRootRepetitions)
		score := -s.alphaBeta(depth-1, 1, -beta, -alpha)
		b.ReverseMove(!cfg.RecordRootRepetitions)
		if s.stopped {
			return out
		}
		if !out.found || score > alpha {
			alpha = score
			out.move, out.score, out.found = m, score, true
		}
	}
	out.complete = true
	s.storeTT(b.Key(), depth, out.score, 0, boundExact, out.move, true)
	return out
}

// isRepetition 根节点着法计入重复表时，第一层节点自身已被计一次
func (s *searcher) isRepetition(ply int) bool {
	n := s.b.RepetitionCount()
	if ply == 1 && s.cfg.RecordRootRepetitions {
		return n > 1
	}
	return n > 0
}

// capScore 到达步数上限：无着可走仍判负，否则和棋
func (s *searcher) capScore(ply int) int {
	if len(s.b.GenerateMoves(false)) == 0 {
		return -CheckmateValue + ply
	}
	return 0
}

// alphaBeta negamax，fail-hard
func (s *searcher) alphaBeta(depth, ply, alpha, beta int) int {
	s.nodes++
	if s.nodes%stopCheckInterval == 0 && s.checkStop() {
		return 0
	}
	if s.stopped {
		return 0
	}
	b := s.b

	if b.Plies() >= b.MaxPlies {
		return s.capScore(ply)
	}
	if ply > 0 && s.isRepetition(ply) {
		return 0
	}
	if depth <= 0 {
		s.leaves++
		if s.cfg.Quiescence {
			return s.quiesce(s.cfg.QuiescenceDepth, ply, alpha, beta)
		}
		return PstShef(b)
	}

	key := b.Key()
	entry, score, hit := s.probeTT(key, depth, ply, alpha, beta)
	if hit {
		return score
	}

	moves := b.GenerateMoves(false)
	if len(moves) == 0 {
		return -CheckmateValue + ply
	}
	orderByMaterial(b, moves, s.cfg.OrderCoef)
	if entry.HasMv {
		moveToFront(moves, entry.Move)
	}

	bound := boundUpper
	var bestMove xiangqi.Move
	hasBest := false
	for _, m := range moves {
		b.MakeMove(m, true)
		score := -s.alphaBeta(depth-1, ply+1, -beta, -alpha)
		b.ReverseMove(true)
		if s.stopped {
			return 0
		}
		if score >= beta {
			s.storeTT(key, depth, beta, ply, boundLower, m, true)
			return beta
		}
		if score > alpha {
			alpha = score
			bound = boundExact
			bestMove, hasBest = m, true
		}
	}
	s.storeTT(key, depth, alpha, ply, bound, bestMove, hasBest)
	return alpha
}

// principalVariation 沿置换表里的最佳着法走出主变
func (e *Engine) principalVariation(b *xiangqi.Board, first xiangqi.Move, depth int, cfg SearchConfig) []xiangqi.Move {
	pv := []xiangqi.Move{first}
	if !cfg.UseTT || cfg.Parallel {
		return pv
	}
	c := b.Clone()
	c.MakeMove(first, false)
	for len(pv) < depth {
		entry, ok := e.tt[c.Key()]
		if !ok || !entry.HasMv || c.RepetitionCount() > 1 {
			break
		}
		legal := false
		for _, m := range c.GenerateMoves(false) {
			if m == entry.Move {
				legal = true
				break
			}
		}
		if !legal {
			break
		}
		c.MakeMove(entry.Move, false)
		pv = append(pv, entry.Move)
	}
	return pv
}
