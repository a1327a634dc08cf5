package xiangqi

const (
	Files      = 9
	Ranks      = 10
	NumSquares = Files * Ranks

	riverRank = 5 // 第 5 行（0-based）起为下半盘
)

func FileOf(sq int) int          { return sq % Files }
func RankOf(sq int) int          { return sq / Files }
func SquareAt(file, rank int) int { return rank*Files + file }

func OnBoard(file, rank int) bool {
	return file >= 0 && file < Files && rank >= 0 && rank < Ranks
}

func ValidSquare(sq int) bool { return sq >= 0 && sq < NumSquares }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func FileDistance(a, b int) int      { return abs(FileOf(a) - FileOf(b)) }
func RankDistance(a, b int) int      { return abs(RankOf(a) - RankOf(b)) }
func ManhattanDistance(a, b int) int { return FileDistance(a, b) + RankDistance(a, b) }

// 方向下标：0 上，1 右，2 下，3 左
const (
	DirUp = iota
	DirRight
	DirDown
	DirLeft
)

var (
	OrthogonalOffsets = [4]int{-9, +1, +9, -1}
	DiagonalOffsets   = [4]int{-8, +10, +8, -10} // 右上，右下，左下，左上

	orthDelta = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} // (df, dr)
	diagDelta = [4][2]int{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
)

// HorseOffsets[i] 为第 i 种跳法的位移，HorseLegs[i] 为对应马腿位移。
// 每个正交方向 d 派生两种跳法：先走 d，再沿与 d 同向的两个斜线之一。
var (
	HorseOffsets [8]int
	HorseLegs    [8]int

	horseDelta [8][2]int
	legDelta   [8][2]int
)

// DistToEdge[sq][dir] 沿正交方向到棋盘边缘还能走几步
var DistToEdge [NumSquares][4]int

func init() {
	for d := 0; d < 4; d++ {
		for k, diag := range [2]int{(d + 3) % 4, d} {
			i := d*2 + k
			HorseOffsets[i] = OrthogonalOffsets[d] + DiagonalOffsets[diag]
			HorseLegs[i] = OrthogonalOffsets[d]
			horseDelta[i] = [2]int{orthDelta[d][0] + diagDelta[diag][0], orthDelta[d][1] + diagDelta[diag][1]}
			legDelta[i] = orthDelta[d]
		}
	}
	for sq := 0; sq < NumSquares; sq++ {
		f, r := FileOf(sq), RankOf(sq)
		DistToEdge[sq] = [4]int{r, Files - 1 - f, Ranks - 1 - r, f}
	}
}

func isVertical(dir int) bool { return dir == DirUp || dir == DirDown }

// Half 棋盘半区：Bottom 为下方五行，Top 为上方五行
type Half int8

const (
	Bottom Half = 0
	Top    Half = 1
)

func ownHalf(h Half, sq int) bool {
	if h == Bottom {
		return RankOf(sq) >= riverRank
	}
	return RankOf(sq) < riverRank
}

func inPalace(h Half, sq int) bool {
	f, r := FileOf(sq), RankOf(sq)
	if f < 3 || f > 5 {
		return false
	}
	if h == Bottom {
		return r >= 7
	}
	return r <= 2
}

// 兵的前进方向：下半区向上(-1)，上半区向下(+1)
func forwardRank(h Half) int {
	if h == Bottom {
		return -1
	}
	return +1
}

// FlipSquare 旋转 180°，对应另一方视角
func FlipSquare(sq int) int { return NumSquares - 1 - sq }
