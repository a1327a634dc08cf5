package xiangqi

import "sync"

// 预计算的伪合法目标格（不考虑阻挡与将军）。
// 带 Half 下标的表按“棋子所在半区一方”区分，与颜色无关。
type horseJump struct {
	To  int
	Leg int
}

var (
	tablesOnce sync.Once

	kingTargets     [2][NumSquares][]int
	advisorTargets  [2][NumSquares][]int
	elephantTargets [2][NumSquares][]int // 象眼 = (from+to)/2
	pawnTargets     [2][NumSquares][]int
	horseTargets    [NumSquares][]horseJump
	rays            [NumSquares][4][]int // 车/炮射线，按方向分段，由近到远
)

// InitTables 初始化全部预计算表与 Zobrist 表，可重复调用。
func InitTables() {
	tablesOnce.Do(func() {
		buildRays()
		buildHorse()
		for h := Bottom; h <= Top; h++ {
			buildPalace(h)
			buildElephant(h)
			buildPawn(h)
		}
		buildActionSpace()
	})
	initZobrist()
}

func buildRays() {
	for sq := 0; sq < NumSquares; sq++ {
		for dir := 0; dir < 4; dir++ {
			n := DistToEdge[sq][dir]
			ray := make([]int, 0, n)
			to := sq
			for i := 0; i < n; i++ {
				to += OrthogonalOffsets[dir]
				ray = append(ray, to)
			}
			rays[sq][dir] = ray
		}
	}
}

func buildHorse() {
	for sq := 0; sq < NumSquares; sq++ {
		f, r := FileOf(sq), RankOf(sq)
		for i := 0; i < 8; i++ {
			tf, tr := f+horseDelta[i][0], r+horseDelta[i][1]
			if !OnBoard(tf, tr) {
				continue
			}
			horseTargets[sq] = append(horseTargets[sq], horseJump{
				To:  SquareAt(tf, tr),
				Leg: SquareAt(f+legDelta[i][0], r+legDelta[i][1]),
			})
		}
	}
}

func buildPalace(h Half) {
	for sq := 0; sq < NumSquares; sq++ {
		if !inPalace(h, sq) {
			continue
		}
		f, r := FileOf(sq), RankOf(sq)
		for dir := 0; dir < 4; dir++ {
			tf, tr := f+orthDelta[dir][0], r+orthDelta[dir][1]
			if OnBoard(tf, tr) && inPalace(h, SquareAt(tf, tr)) {
				kingTargets[h][sq] = append(kingTargets[h][sq], SquareAt(tf, tr))
			}
			if !advisorSquare(h, sq) {
				continue
			}
			tf, tr = f+diagDelta[dir][0], r+diagDelta[dir][1]
			if OnBoard(tf, tr) && inPalace(h, SquareAt(tf, tr)) {
				advisorTargets[h][sq] = append(advisorTargets[h][sq], SquareAt(tf, tr))
			}
		}
	}
}

// advisorSquare 九宫的四角与中心
func advisorSquare(h Half, sq int) bool {
	center := SquareAt(4, 8)
	if h == Top {
		center = SquareAt(4, 1)
	}
	return FileDistance(sq, center) == RankDistance(sq, center)
}

func buildElephant(h Half) {
	for sq := 0; sq < NumSquares; sq++ {
		if !ownHalf(h, sq) {
			continue
		}
		f, r := FileOf(sq), RankOf(sq)
		for dir := 0; dir < 4; dir++ {
			tf, tr := f+2*diagDelta[dir][0], r+2*diagDelta[dir][1]
			if !OnBoard(tf, tr) {
				continue
			}
			to := SquareAt(tf, tr)
			if !ownHalf(h, to) {
				continue // 不过河
			}
			elephantTargets[h][sq] = append(elephantTargets[h][sq], to)
		}
	}
}

func buildPawn(h Half) {
	fwd := forwardRank(h)
	for sq := 0; sq < NumSquares; sq++ {
		f, r := FileOf(sq), RankOf(sq)
		if OnBoard(f, r+fwd) {
			pawnTargets[h][sq] = append(pawnTargets[h][sq], SquareAt(f, r+fwd))
		}
		if ownHalf(h, sq) {
			continue
		}
		// 过河后可以左右走
		for _, df := range [2]int{-1, +1} {
			if OnBoard(f+df, r) {
				pawnTargets[h][sq] = append(pawnTargets[h][sq], SquareAt(f+df, r))
			}
		}
	}
}

// horseLeg 马从 from 跳到 to 时的马腿
func horseLeg(from, to int) int {
	df, dr := FileOf(to)-FileOf(from), RankOf(to)-RankOf(from)
	if abs(dr) == 2 {
		return from + dr/2*Files
	}
	return from + df/2
}

// pawnAttacks 位于 from、属于半区 h 的兵是否攻击 target
func pawnAttacks(h Half, from, target int) bool {
	for _, to := range pawnTargets[h][from] {
		if to == target {
			return true
		}
	}
	return false
}
