package xiangqi

// Perft 统计 depth 层合法着法树的叶子数
func (b *Board) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateMoves(false)
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		b.MakeMove(m, true)
		n += b.Perft(depth - 1)
		b.ReverseMove(true)
	}
	return n
}

// Divide 按根着法分列的 perft
func (b *Board) Divide(depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.GenerateMoves(false) {
		b.MakeMove(m, true)
		out[m] = b.Perft(depth - 1)
		b.ReverseMove(true)
	}
	return out
}
