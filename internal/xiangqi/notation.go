package xiangqi

import (
	"errors"
	"fmt"
)

var ErrBadMoveString = errors.New("bad move string")

// MoveString 记谱：起点棋子字母，括号内为起点(行,列)，后接终点(行,列)，如 C(71)-74
func (b *Board) MoveString(m Move) string {
	return fmt.Sprintf("%c(%d%d)-%d%d",
		b.squares[m.From].Letter(),
		RankOf(m.From), FileOf(m.From),
		RankOf(m.To), FileOf(m.To))
}

// ParseMove 解析 MoveString 的输出，也接受不带字母的 "from-to" 格式（Move.String）。
// 只校验格式与棋子字母，不校验合法性。
func (b *Board) ParseMove(s string) (Move, error) {
	var m Move
	if n, err := fmt.Sscanf(s, "%d-%d", &m.From, &m.To); err == nil && n == 2 {
		if !ValidSquare(m.From) || !ValidSquare(m.To) {
			return Move{}, ErrSquareOutOfRange
		}
		return m, nil
	}

	if len(s) != 8 || s[1] != '(' || s[4] != ')' || s[5] != '-' {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMoveString, s)
	}
	var d [4]int
	for i, pos := range [4]int{2, 3, 6, 7} {
		c := s[pos]
		if c < '0' || c > '9' {
			return Move{}, fmt.Errorf("%w: %q", ErrBadMoveString, s)
		}
		d[i] = int(c - '0')
	}
	if d[1] >= Files || d[3] >= Files {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMoveString, s)
	}
	m = Move{From: SquareAt(d[1], d[0]), To: SquareAt(d[3], d[2])}
	if pc := b.squares[m.From]; pc == NoPiece || pc.Letter() != s[0] {
		return Move{}, fmt.Errorf("%w: no %c at %d", ErrBadMoveString, s[0], m.From)
	}
	return m, nil
}
