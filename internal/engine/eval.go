package engine

import "xiangqi/internal/xiangqi"

const (
	// 被将死（或困毙）的基准分，实际返回 -CheckmateValue + ply
	CheckmateValue = 1_000_000
	// 超过它的分数视为杀棋分
	mateBound = CheckmateValue - 1000
)

// 纯子力估值，帅的价值远大于其他子之和
var pieceValue = [xiangqi.NumPieceTypes]int{
	xiangqi.King:     10000,
	xiangqi.Rook:     600,
	xiangqi.Cannon:   285,
	xiangqi.Horse:    270,
	xiangqi.Elephant: 120,
	xiangqi.Advisor:  120,
	xiangqi.Pawn:     30,
}

// Shef 纯子力评估，走子方视角：己方 - 对方
func Shef(b *xiangqi.Board) int {
	return materialOf(b, b.MovingColor()) - materialOf(b, b.OpponentColor())
}

func materialOf(b *xiangqi.Board, c xiangqi.Color) int {
	v := 0
	for t := xiangqi.PieceType(0); t < xiangqi.NumPieceTypes; t++ {
		v += pieceValue[t] * len(b.PieceList(c, t))
	}
	return v
}

// PstShef 子力 + 位置分，走子方视角。搜索使用这个评估。
func PstShef(b *xiangqi.Board) int {
	return pstOf(b, b.MovingColor()) - pstOf(b, b.OpponentColor())
}

func pstOf(b *xiangqi.Board, c xiangqi.Color) int {
	top := b.HalfOf(c) == xiangqi.Top
	v := 0
	for t := xiangqi.PieceType(0); t < xiangqi.NumPieceTypes; t++ {
		pc := xiangqi.MakePiece(c, t)
		for _, sq := range b.PieceList(c, t) {
			v += PieceSquareValue(pc, sq, top)
		}
	}
	return v
}
