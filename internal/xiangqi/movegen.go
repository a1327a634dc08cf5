package xiangqi

// GenerateMoves 生成走子方的全部合法着法；quiescence 为 true 时只生成吃子。
func (b *Board) GenerateMoves(quiescence bool) []Move {
	var a analysis
	b.analyze(&a)
	g := generator{b: b, a: &a, quiescence: quiescence, moves: make([]Move, 0, 64)}
	g.run()
	return g.moves
}

// LegalMoves 等同于 GenerateMoves(false)
func (b *Board) LegalMoves() []Move { return b.GenerateMoves(false) }

type generator struct {
	b          *Board
	a          *analysis
	quiescence bool
	moves      []Move
}

func (g *generator) run() {
	b := g.b
	us := b.moving
	h := b.half(us)

	for _, from := range b.PieceList(us, King) {
		for _, to := range kingTargets[h][from] {
			pc := b.squares[to]
			if IsColor(pc, us) || (g.quiescence && pc == NoPiece) {
				continue
			}
			if g.a.attackMap[to] {
				continue
			}
			g.moves = append(g.moves, Move{From: from, To: to})
		}
	}
	for _, from := range b.PieceList(us, Elephant) {
		for _, to := range elephantTargets[h][from] {
			if b.squares[(from+to)/2] != NoPiece {
				continue // 塞象眼
			}
			g.try(from, to)
		}
	}
	for _, from := range b.PieceList(us, Advisor) {
		for _, to := range advisorTargets[h][from] {
			g.try(from, to)
		}
	}
	for _, from := range b.PieceList(us, Cannon) {
		for dir := 0; dir < 4; dir++ {
			screened := false
			for _, to := range rays[from][dir] {
				pc := b.squares[to]
				if !screened {
					if pc == NoPiece {
						g.try(from, to)
						continue
					}
					screened = true
					continue
				}
				if pc != NoPiece {
					g.try(from, to)
					break
				}
			}
		}
	}
	for _, from := range b.PieceList(us, Pawn) {
		for _, to := range pawnTargets[h][from] {
			g.try(from, to)
		}
	}
	for _, from := range b.PieceList(us, Rook) {
		for dir := 0; dir < 4; dir++ {
			for _, to := range rays[from][dir] {
				g.try(from, to)
				if b.squares[to] != NoPiece {
					break
				}
			}
		}
	}
	for _, from := range b.PieceList(us, Horse) {
		for _, j := range horseTargets[from] {
			if b.squares[j.Leg] != NoPiece {
				continue // 蹩马腿
			}
			g.try(from, j.To)
		}
	}
}

// try 非帅棋子的第二阶段过滤
func (g *generator) try(from, to int) {
	b, a := g.b, g.a
	pc := b.squares[to]
	if IsColor(pc, b.moving) {
		return
	}
	if g.quiescence && pc == NoPiece {
		return
	}
	if a.illegalSquares[to] {
		return
	}
	if d := a.pinDir[from]; d >= 0 && a.rayDir[to] != d {
		return
	}
	if n := a.legPins[from]; n > 0 && (n > 1 || to != a.legPinHorse[from]) {
		return
	}
	if a.doubleScreens[from] == to {
		return
	}

	verify := a.pinDir[from] >= 0 || a.legPins[from] > 0 || a.onHotRay(from) || a.onHotRay(to)
	if a.checks > 0 {
		resolved := int(a.blockCredits[to])
		if a.causesDefect[from] {
			resolved++
		}
		if resolved < a.checks {
			return
		}
		verify = true
	}
	if verify && !b.safeAfter(a, from, to) {
		return
	}
	g.moves = append(g.moves, Move{From: from, To: to})
}
