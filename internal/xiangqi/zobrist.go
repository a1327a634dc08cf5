package xiangqi

import "sync"

const zobristMask = 1<<63 - 1 // 63 位

var (
	zobristOnce sync.Once

	zobristTable [2][NumPieceTypes][NumSquares]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for c := 0; c < 2; c++ {
			for t := 0; t < NumPieceTypes; t++ {
				for sq := 0; sq < NumSquares; sq++ {
					// 留出最低位给走子方，避免与其异或冲突
					zobristTable[c][t][sq] = next() & zobristMask &^ 1
				}
			}
		}
	})
}

func pieceKey(pc Piece, sq int) uint64 {
	return zobristTable[pc.Color()][pc.Type()][sq]
}

// CalculateKey 全量计算 Zobrist 键，用于校验增量更新。
func (b *Board) CalculateKey() uint64 {
	initZobrist()

	var key uint64
	for sq, pc := range b.squares {
		if pc == NoPiece {
			continue
		}
		key ^= pieceKey(pc, sq)
	}
	if b.moving == Red {
		key ^= 1
	}
	return key
}

// updateKey 增量更新：走子与悔棋共用同一套异或。
func (b *Board) updateKey(from, to int, moved, captured Piece) {
	b.key ^= pieceKey(moved, from)
	b.key ^= pieceKey(moved, to)
	if captured != NoPiece {
		b.key ^= pieceKey(captured, to)
	}
	b.key ^= 1
}
