package xiangqi

// Planes 把棋盘投影为 [颜色][兵种][格] 的 0/1 平面。
// adjust 为 true 时：每方的格子换算为该方视角（己方在下），且走子方平面放在下标 0。
func (b *Board) Planes(adjust bool) [2][NumPieceTypes][NumSquares]uint8 {
	var out [2][NumPieceTypes][NumSquares]uint8
	for c := Black; c <= Red; c++ {
		idx := int(c)
		if adjust {
			idx = 0
			if c != b.moving {
				idx = 1
			}
		}
		flip := adjust && b.half(c) == Top
		for t := PieceType(0); t < NumPieceTypes; t++ {
			for _, sq := range b.PieceList(c, t) {
				if flip {
					sq = FlipSquare(sq)
				}
				out[idx][t][sq] = 1
			}
		}
	}
	return out
}
