package xiangqi

// 动作空间：红方在下时所有可能出现的 (from, to)。
// 构造顺序是对外接口的一部分：帅、车炮射线、马、仕、相（从初始位深搜）、兵。
var (
	actionSpace []Move
	actionIndex map[Move]int
)

// 初始局面中相的位置（上半区、下半区）
var elephantHomes = [2][2]int{
	Bottom: {SquareAt(2, 9), SquareAt(6, 9)},
	Top:    {SquareAt(2, 0), SquareAt(6, 0)},
}

func buildActionSpace() {
	actionIndex = make(map[Move]int, 2100)
	add := func(from, to int) {
		m := Move{From: from, To: to}
		if _, ok := actionIndex[m]; ok {
			return
		}
		actionIndex[m] = len(actionSpace)
		actionSpace = append(actionSpace, m)
	}

	for h := Bottom; h <= Top; h++ {
		for sq := 0; sq < NumSquares; sq++ {
			for _, to := range kingTargets[h][sq] {
				add(sq, to)
			}
		}
	}
	for sq := 0; sq < NumSquares; sq++ {
		for dir := 0; dir < 4; dir++ {
			for _, to := range rays[sq][dir] {
				add(sq, to)
			}
		}
	}
	for sq := 0; sq < NumSquares; sq++ {
		for _, j := range horseTargets[sq] {
			add(sq, j.To)
		}
	}
	for h := Bottom; h <= Top; h++ {
		for sq := 0; sq < NumSquares; sq++ {
			for _, to := range advisorTargets[h][sq] {
				add(sq, to)
			}
		}
	}
	for h := Bottom; h <= Top; h++ {
		visited := make(map[int]bool)
		var dfs func(sq int)
		dfs = func(sq int) {
			visited[sq] = true
			for _, to := range elephantTargets[h][sq] {
				add(sq, to)
				if !visited[to] {
					dfs(to)
				}
			}
		}
		for _, home := range elephantHomes[h] {
			if !visited[home] {
				dfs(home)
			}
		}
	}
	for h := Bottom; h <= Top; h++ {
		for sq := 0; sq < NumSquares; sq++ {
			for _, to := range pawnTargets[h][sq] {
				add(sq, to)
			}
		}
	}
}

// ActionSpace 返回动作向量（只读）
func ActionSpace() []Move {
	InitTables()
	return actionSpace
}

func ActionSpaceSize() int {
	InitTables()
	return len(actionSpace)
}

// ActionIndex O(1) 查找走法在动作向量中的下标
func ActionIndex(m Move) (int, bool) {
	InitTables()
	i, ok := actionIndex[m]
	return i, ok
}
