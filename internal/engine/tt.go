package engine

import "xiangqi/internal/xiangqi"

const ttCap = 1_000_000

type ttBound uint8

const (
	boundExact ttBound = iota
	boundLower         // score >= beta
	boundUpper         // score <= alpha
)

// TT 条目，按 zobrist key 存
type ttEntry struct {
	Depth int
	Score int
	Bound ttBound
	Move  xiangqi.Move
	HasMv bool
}

// 杀棋分存成“距当前节点”的步数，取出时再还原
func scoreToTT(score, ply int) int {
	switch {
	case score > mateBound:
		return score + ply
	case score < -mateBound:
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	switch {
	case score > mateBound:
		return score - ply
	case score < -mateBound:
		return score + ply
	}
	return score
}

func (s *searcher) storeTT(key uint64, depth, score, ply int, bound ttBound, mv xiangqi.Move, hasMv bool) {
	if !s.cfg.UseTT {
		return
	}
	if len(s.tt) > ttCap {
		s.tt = make(map[uint64]ttEntry, 1<<18)
	}
	old, ok := s.tt[key]
	if ok && depth < old.Depth {
		return
	}
	if !hasMv && ok && old.HasMv {
		mv, hasMv = old.Move, true
	}
	s.tt[key] = ttEntry{
		Depth: depth,
		Score: scoreToTT(score, ply),
		Bound: bound,
		Move:  mv,
		HasMv: hasMv,
	}
}

// probeTT 命中时返回可以直接使用的分数（fail-hard，已夹到窗口内）
func (s *searcher) probeTT(key uint64, depth, ply, alpha, beta int) (ttEntry, int, bool) {
	if !s.cfg.UseTT {
		return ttEntry{}, 0, false
	}
	entry, ok := s.tt[key]
	if !ok {
		return ttEntry{}, 0, false
	}
	if entry.Depth < depth {
		return entry, 0, false
	}
	score := scoreFromTT(entry.Score, ply)
	switch entry.Bound {
	case boundExact:
		if score <= alpha {
			return entry, alpha, true
		}
		if score >= beta {
			return entry, beta, true
		}
		return entry, score, true
	case boundLower:
		if score >= beta {
			return entry, beta, true
		}
	case boundUpper:
		if score <= alpha {
			return entry, alpha, true
		}
	}
	return entry, 0, false
}
