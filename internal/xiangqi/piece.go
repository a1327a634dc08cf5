package xiangqi

// Color 0=黑，1=红
type Color int8

const (
	Black Color = 0
	Red   Color = 1
)

func (c Color) Opponent() Color { return 1 - c }

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

type PieceType int8

const (
	King     PieceType = iota // 帅 / 将
	Elephant                  // 相 / 象
	Advisor                   // 仕 / 士
	Cannon                    // 炮
	Pawn                      // 兵 / 卒
	Rook                      // 车
	Horse                     // 马
)

const NumPieceTypes = 7

// 与 PieceType 顺序一一对应
const pieceLetters = "keacprh"

// Piece 0=空；否则 1 + color*7 + type
type Piece int8

const NoPiece Piece = 0

func MakePiece(c Color, t PieceType) Piece {
	return Piece(1 + int(c)*NumPieceTypes + int(t))
}

func (p Piece) Color() Color    { return Color((int(p) - 1) / NumPieceTypes) }
func (p Piece) Type() PieceType { return PieceType((int(p) - 1) % NumPieceTypes) }
func (p Piece) IsEmpty() bool   { return p == NoPiece }

func GetColor(p Piece) Color    { return p.Color() }
func GetType(p Piece) PieceType { return p.Type() }

func IsColor(p Piece, c Color) bool {
	return p != NoPiece && p.Color() == c
}

func IsType(p Piece, t PieceType) bool {
	return p != NoPiece && p.Type() == t
}

func IsPiece(p Piece, c Color, t PieceType) bool {
	return p != NoPiece && p == MakePiece(c, t)
}

// Letter 红方大写，黑方小写；空位返回 '.'
func (p Piece) Letter() byte {
	if p == NoPiece {
		return '.'
	}
	ch := pieceLetters[p.Type()]
	if p.Color() == Red {
		ch -= 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string { return string(p.Letter()) }

func pieceFromLetter(ch byte) (Piece, bool) {
	c := Black
	if ch >= 'A' && ch <= 'Z' {
		c = Red
		ch += 'a' - 'A'
	}
	for t := 0; t < NumPieceTypes; t++ {
		if pieceLetters[t] == ch {
			return MakePiece(c, PieceType(t)), true
		}
	}
	return NoPiece, false
}
