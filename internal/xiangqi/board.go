package xiangqi

import (
	"errors"
	"strconv"
)

const DefaultMaxPlies = 200

// TerminalStatus 三值哨兵：-1 未结束，1 走子方无着（将死或困毙，均判负），0 步数上限和棋
type TerminalStatus int8

const (
	StatusOngoing TerminalStatus = -1
	StatusDraw    TerminalStatus = 0
	StatusNoMoves TerminalStatus = 1
)

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrHistoryEmpty     = errors.New("no move to undo")
	ErrSquareOutOfRange = errors.New("square out of range")
)

type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (m Move) String() string {
	return strconv.Itoa(m.From) + "-" + strconv.Itoa(m.To)
}

// Less 按 (from, to) 字典序比较
func (m Move) Less(o Move) bool {
	if m.From != o.From {
		return m.From < o.From
	}
	return m.To < o.To
}

type historyRecord struct {
	From, To int
	Captured Piece
	capIndex int8 // 被吃子在对方棋子表中的位置，悔棋时原位插回
}

// 每种棋子最多 5 个（兵）
type pieceList struct {
	sq [5]int
	n  int8
}

func (l *pieceList) indexOf(sq int) int {
	for i := 0; i < int(l.n); i++ {
		if l.sq[i] == sq {
			return i
		}
	}
	return -1
}

func (l *pieceList) removeAt(i int) {
	copy(l.sq[i:l.n], l.sq[i+1:l.n])
	l.n--
}

func (l *pieceList) insertAt(i, sq int) {
	copy(l.sq[i+1:l.n+1], l.sq[i:l.n])
	l.sq[i] = sq
	l.n++
}

type Board struct {
	squares [NumSquares]Piece
	lists   [2][NumPieceTypes]pieceList

	moving   Color
	opponent Color
	redUp    bool

	plies     int // 距上次兵卒走动的半回合数
	fullmoves int
	MaxPlies  int

	history      []historyRecord
	pliesHistory []int

	key         uint64
	repetitions map[uint64]int
}

const InitialFEN = "rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR w - - 0 1"

// NewBoard 初始局面
func NewBoard() *Board {
	b, err := ParseFEN(InitialFEN)
	if err != nil {
		panic("initial FEN: " + err.Error())
	}
	return b
}

func (b *Board) At(sq int) Piece            { return b.squares[sq] }
func (b *Board) Squares() [NumSquares]Piece { return b.squares }
func (b *Board) MovingColor() Color         { return b.moving }
func (b *Board) OpponentColor() Color       { return b.opponent }
func (b *Board) IsRedUp() bool              { return b.redUp }
func (b *Board) Plies() int                 { return b.plies }
func (b *Board) Fullmoves() int             { return b.fullmoves }
func (b *Board) Key() uint64                { return b.key }
func (b *Board) HistoryLen() int            { return len(b.history) }

// PieceList 返回 (c, t) 的棋子所在格，只读
func (b *Board) PieceList(c Color, t PieceType) []int {
	l := &b.lists[c][t]
	return l.sq[:l.n]
}

func (b *Board) KingSquare(c Color) int { return b.lists[c][King].sq[0] }

// LastMove 最近一步，没有历史时返回 false
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	r := b.history[len(b.history)-1]
	return Move{From: r.From, To: r.To}, true
}

// half 颜色 c 当前占据的半区
func (b *Board) half(c Color) Half {
	if (c == Red) == b.redUp {
		return Top
	}
	return Bottom
}

// HalfOf 导出的 half
func (b *Board) HalfOf(c Color) Half { return b.half(c) }

func (b *Board) toggle() {
	b.moving, b.opponent = b.opponent, b.moving
}

// MakeMove 走子。调用方保证 m 合法；searchState 为 true 时不计入重复局面表。
// 返回是否吃子。
func (b *Board) MakeMove(m Move, searchState bool) bool {
	moved := b.squares[m.From]
	captured := b.squares[m.To]

	l := &b.lists[b.moving][moved.Type()]
	l.sq[l.indexOf(m.From)] = m.To
	rec := historyRecord{From: m.From, To: m.To, Captured: captured, capIndex: -1}
	if captured != NoPiece {
		cl := &b.lists[b.opponent][captured.Type()]
		i := cl.indexOf(m.To)
		cl.removeAt(i)
		rec.capIndex = int8(i)
	}
	b.history = append(b.history, rec)

	if moved.Type() == Pawn {
		b.pliesHistory = append(b.pliesHistory, b.plies)
		b.plies = 0
	} else {
		b.plies++
	}
	if b.moving == Black {
		b.fullmoves++
	}

	b.squares[m.From] = NoPiece
	b.squares[m.To] = moved

	b.updateKey(m.From, m.To, moved, captured)
	if !searchState {
		b.repetitions[b.key]++
	}
	b.toggle()
	return captured != NoPiece
}

// ReverseMove 撤销最近一步，与 MakeMove 的 searchState 需一致。
func (b *Board) ReverseMove(searchState bool) error {
	n := len(b.history)
	if n == 0 {
		return ErrHistoryEmpty
	}
	rec := b.history[n-1]
	b.history = b.history[:n-1]
	moved := b.squares[rec.To]

	if !searchState {
		if c := b.repetitions[b.key]; c <= 1 {
			delete(b.repetitions, b.key)
		} else {
			b.repetitions[b.key] = c - 1
		}
	}
	b.toggle()
	b.updateKey(rec.From, rec.To, moved, rec.Captured)

	b.squares[rec.From] = moved
	b.squares[rec.To] = rec.Captured

	l := &b.lists[b.moving][moved.Type()]
	l.sq[l.indexOf(rec.To)] = rec.From
	if rec.Captured != NoPiece {
		b.lists[b.opponent][rec.Captured.Type()].insertAt(int(rec.capIndex), rec.To)
	}

	if b.moving == Black {
		b.fullmoves--
	}
	if moved.Type() == Pawn {
		k := len(b.pliesHistory) - 1
		b.plies = b.pliesHistory[k]
		b.pliesHistory = b.pliesHistory[:k]
	} else {
		b.plies--
	}
	return nil
}

// Play 外部输入的走子：先校验再落子，计入重复局面。
func (b *Board) Play(m Move) error {
	if !ValidSquare(m.From) || !ValidSquare(m.To) {
		return ErrSquareOutOfRange
	}
	for _, lm := range b.GenerateMoves(false) {
		if lm == m {
			b.MakeMove(m, false)
			return nil
		}
	}
	return ErrIllegalMove
}

// Undo 撤销一步由 Play 落下的棋
func (b *Board) Undo() error { return b.ReverseMove(false) }

func (b *Board) IsTerminalState(numMoves int) bool {
	return numMoves == 0 || b.plies >= b.MaxPlies
}

func (b *Board) GetTerminalStatus(numMoves int) TerminalStatus {
	if numMoves == 0 {
		return StatusNoMoves
	}
	if b.plies >= b.MaxPlies {
		return StatusDraw
	}
	return StatusOngoing
}

// IsRepetition 当前局面是否在对局中出现过
func (b *Board) IsRepetition() bool {
	_, ok := b.repetitions[b.key]
	return ok
}

func (b *Board) RepetitionCount() int { return b.repetitions[b.key] }

// Clone 深拷贝，供根节点并行的各 worker 独占使用
func (b *Board) Clone() *Board {
	nb := *b
	nb.history = append([]historyRecord(nil), b.history...)
	nb.pliesHistory = append([]int(nil), b.pliesHistory...)
	nb.repetitions = make(map[uint64]int, len(b.repetitions))
	for k, v := range b.repetitions {
		nb.repetitions[k] = v
	}
	return &nb
}
