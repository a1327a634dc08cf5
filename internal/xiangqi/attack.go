package xiangqi

// 以己方帅为中心的攻击分析（第一阶段）。
// 只读棋盘，不保留引用。
type horseThreat struct {
	horse, leg int
}

type analysis struct {
	king int

	checks       int
	blockCredits [NumSquares]int8 // 走到该格能化解的将军数

	illegalSquares  [NumSquares]bool // 非帅棋子不能落的格
	attackMap       [NumSquares]bool // 帅不能去的格（帅离开原位后计算）
	causesDefect    [NumSquares]bool // 炮将中己方唯一炮架，离开即解将
	checkingCannon  int
	pinDir          [NumSquares]int8 // 沿该方向被牵制（车/帅牵制或双炮架），-1 表示无
	legPins         [NumSquares]int8 // 作为马腿挡住的将军数
	legPinHorse     [NumSquares]int
	doubleScreens   [NumSquares]int // 双炮架的另一半，-1 表示无
	rayDir          [NumSquares]int8
	hotRay          [4]bool // 该射线前三子中有敌车/炮/将，走子可能改变安全性
	rayUnsafe       [4]bool
	horseThreats    []horseThreat
	pawnCheckers    []int
	threatsStorage  [8]horseThreat
	checkersStorage [3]int
}

func (a *analysis) reset(king int) {
	*a = analysis{king: king, checkingCannon: -1}
	for i := range a.pinDir {
		a.pinDir[i] = -1
		a.rayDir[i] = -1
		a.doubleScreens[i] = -1
		a.legPinHorse[i] = -1
	}
	a.horseThreats = a.threatsStorage[:0]
	a.pawnCheckers = a.checkersStorage[:0]
}

func (a *analysis) onHotRay(sq int) bool {
	d := a.rayDir[sq]
	return d >= 0 && a.hotRay[d]
}

// rayAttacker 射线上第一个子是否为车（纵向时包含将帅对脸）
func rayAttacker(pc Piece, them Color, dir int) bool {
	return IsPiece(pc, them, Rook) || (isVertical(dir) && IsPiece(pc, them, King))
}

func (b *Board) analyze(a *analysis) {
	us, them := b.moving, b.opponent
	k := b.KingSquare(us)
	a.reset(k)

	for dir := 0; dir < 4; dir++ {
		ray := rays[k][dir]
		var idx [3]int
		n := 0
		for i, sq := range ray {
			a.rayDir[sq] = int8(dir)
			if n < 3 && b.squares[sq] != NoPiece {
				idx[n] = i
				n++
			}
		}
		for j := 0; j < n; j++ {
			pc := b.squares[ray[idx[j]]]
			if pc.Color() == them && (pc.Type() == Rook || pc.Type() == Cannon || pc.Type() == King) {
				a.hotRay[dir] = true
			}
		}
		if n == 0 {
			continue
		}

		p1 := ray[idx[0]]
		pc1 := b.squares[p1]
		switch {
		case rayAttacker(pc1, them, dir):
			a.checks++
			a.rayUnsafe[dir] = true
			for i := 0; i <= idx[0]; i++ {
				a.blockCredits[ray[i]]++
			}
		case IsPiece(pc1, them, Cannon):
			// 炮直面帅：中间空格一旦落子就成了炮架
			for i := 0; i < idx[0]; i++ {
				a.illegalSquares[ray[i]] = true
			}
		}
		if n < 2 {
			continue
		}

		p2 := ray[idx[1]]
		pc2 := b.squares[p2]
		if pc1.Color() == us && rayAttacker(pc2, them, dir) {
			a.pinDir[p1] = int8(dir)
		}
		if IsPiece(pc2, them, Cannon) {
			a.checks++
			a.rayUnsafe[dir] = true
			a.checkingCannon = p2
			for i := 0; i <= idx[1]; i++ {
				if i != idx[0] {
					a.blockCredits[ray[i]]++
				}
			}
			if pc1.Color() == us {
				a.causesDefect[p1] = true
			} else {
				// 吃掉敌方炮架并不解将
				a.illegalSquares[p1] = true
			}
		}
		if n < 3 {
			continue
		}

		p3 := ray[idx[2]]
		if IsPiece(b.squares[p3], them, Cannon) {
			// 双炮架：任一己方炮架离线即被将，两架也不能互吃
			if pc1.Color() == us {
				a.pinDir[p1] = int8(dir)
			}
			if pc2.Color() == us {
				a.pinDir[p2] = int8(dir)
			}
			a.doubleScreens[p1] = p2
			a.doubleScreens[p2] = p1
		}
	}

	for _, h := range b.PieceList(them, Horse) {
		if ManhattanDistance(h, k) != 3 {
			continue
		}
		for _, j := range horseTargets[h] {
			if j.To != k {
				continue
			}
			a.horseThreats = append(a.horseThreats, horseThreat{horse: h, leg: j.Leg})
			switch leg := b.squares[j.Leg]; {
			case leg == NoPiece:
				a.checks++
				a.blockCredits[h]++
				a.blockCredits[j.Leg]++
			case leg.Color() == us:
				a.legPins[j.Leg]++
				a.legPinHorse[j.Leg] = h
			}
		}
	}

	hThem := b.half(them)
	for _, p := range b.PieceList(them, Pawn) {
		if ManhattanDistance(p, k) == 1 && pawnAttacks(hThem, p, k) {
			a.checks++
			a.blockCredits[p]++
			a.pawnCheckers = append(a.pawnCheckers, p)
		}
	}

	for _, to := range kingTargets[b.half(us)][k] {
		if IsColor(b.squares[to], us) {
			continue
		}
		a.attackMap[to] = b.attackedBy(to, them, k)
	}
}

// attackedBy 判断 target 是否被 them 攻击；vacated 视为空格（-1 表示无），
// target 上原有的子视为已被吃掉。
func (b *Board) attackedBy(target int, them Color, vacated int) bool {
	occ := func(sq int) Piece {
		if sq == vacated {
			return NoPiece
		}
		return b.squares[sq]
	}

	for dir := 0; dir < 4; dir++ {
		screens := 0
		for _, sq := range rays[target][dir] {
			pc := occ(sq)
			if pc == NoPiece {
				continue
			}
			if screens == 0 {
				if rayAttacker(pc, them, dir) {
					return true
				}
				screens++
				continue
			}
			if IsPiece(pc, them, Cannon) {
				return true
			}
			break
		}
	}

	for _, j := range horseTargets[target] {
		h := j.To
		if IsPiece(b.squares[h], them, Horse) && occ(horseLeg(h, target)) == NoPiece {
			return true
		}
	}

	hThem := b.half(them)
	for dir := 0; dir < 4; dir++ {
		if DistToEdge[target][dir] == 0 {
			continue
		}
		p := target + OrthogonalOffsets[dir]
		if IsPiece(b.squares[p], them, Pawn) && pawnAttacks(hThem, p, target) {
			return true
		}
	}
	return false
}

// InCheck 走子方的帅是否正被将军（含将帅对脸）
func (b *Board) InCheck() bool {
	return b.attackedBy(b.KingSquare(b.moving), b.opponent, -1)
}

// safeAfter 精确判断非帅棋子 from→to 之后己方帅是否安全
func (b *Board) safeAfter(a *analysis, from, to int) bool {
	them := b.opponent
	mover := b.squares[from]
	occ := func(sq int) Piece {
		switch sq {
		case to:
			return mover
		case from:
			return NoPiece
		}
		return b.squares[sq]
	}

	df, dt := a.rayDir[from], a.rayDir[to]
	for dir := 0; dir < 4; dir++ {
		if int8(dir) != df && int8(dir) != dt {
			if a.rayUnsafe[dir] {
				return false
			}
			continue
		}
		screens := 0
		for _, sq := range rays[a.king][dir] {
			pc := occ(sq)
			if pc == NoPiece {
				continue
			}
			if screens == 0 {
				if rayAttacker(pc, them, dir) {
					return false
				}
				screens++
				continue
			}
			if IsPiece(pc, them, Cannon) {
				return false
			}
			break
		}
	}

	for _, t := range a.horseThreats {
		if t.horse != to && occ(t.leg) == NoPiece {
			return false
		}
	}
	for _, p := range a.pawnCheckers {
		if p != to {
			return false
		}
	}
	return true
}
