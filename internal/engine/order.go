package engine

import (
	"sort"

	"xiangqi/internal/xiangqi"
)

// DefaultOrderCoef 保证任何吃子都排在非吃子之前
const DefaultOrderCoef = 250

// 排序用的粗略子力
var orderValue = [xiangqi.NumPieceTypes]int{
	xiangqi.Pawn:     1,
	xiangqi.Advisor:  2,
	xiangqi.Elephant: 2,
	xiangqi.Horse:    4,
	xiangqi.Cannon:   4,
	xiangqi.Rook:     9,
	xiangqi.King:     10,
}

func victimValue(pc xiangqi.Piece) int {
	if pc == xiangqi.NoPiece {
		return 0
	}
	return orderValue[pc.Type()]
}

// orderByMaterial 按 coef*被吃子 - 走子 降序，稳定排序
func orderByMaterial(b *xiangqi.Board, moves []xiangqi.Move, coef int) {
	keys := make([]int, len(moves))
	for i, m := range moves {
		keys[i] = coef*victimValue(b.At(m.To)) - orderValue[b.At(m.From).Type()]
	}
	sortByKeys(moves, keys)
}

// orderByPST 静态搜索用：吃子后位置分的变化
func orderByPST(b *xiangqi.Board, moves []xiangqi.Move) {
	top := b.HalfOf(b.MovingColor()) == xiangqi.Top
	keys := make([]int, len(moves))
	for i, m := range moves {
		pc := b.At(m.From)
		gain := PieceSquareValue(pc, m.To, top) - PieceSquareValue(pc, m.From, top)
		if victim := b.At(m.To); victim != xiangqi.NoPiece {
			gain += PieceSquareValue(victim, m.To, !top)
		}
		keys[i] = gain
	}
	sortByKeys(moves, keys)
}

type keyedMoves struct {
	moves []xiangqi.Move
	keys  []int
}

func (k keyedMoves) Len() int           { return len(k.moves) }
func (k keyedMoves) Less(i, j int) bool { return k.keys[i] > k.keys[j] }
func (k keyedMoves) Swap(i, j int) {
	k.moves[i], k.moves[j] = k.moves[j], k.moves[i]
	k.keys[i], k.keys[j] = k.keys[j], k.keys[i]
}

func sortByKeys(moves []xiangqi.Move, keys []int) {
	sort.Stable(keyedMoves{moves: moves, keys: keys})
}

// moveToFront 把 m 提到最前，其余保持原有顺序
func moveToFront(moves []xiangqi.Move, m xiangqi.Move) {
	for i := range moves {
		if moves[i] == m {
			copy(moves[1:i+1], moves[:i])
			moves[0] = m
			return
		}
	}
}
