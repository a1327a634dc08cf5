package engine

// quiesce 只搜吃子，先以静态评估作为下界（stand pat）
func (s *searcher) quiesce(qdepth, ply, alpha, beta int) int {
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

	stand := PstShef(b)
	if qdepth <= 0 {
		return stand
	}
	if stand >= beta {
		return beta
	}
	if stand > alpha {
		alpha = stand
	}

	captures := b.GenerateMoves(true)
	orderByPST(b, captures)
	for _, m := range captures {
		b.MakeMove(m, true)
		score := -s.quiesce(qdepth-1, ply+1, -beta, -alpha)
		b.ReverseMove(true)
		if s.stopped {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
