package xiangqi

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// FENError 描述 FEN 的具体问题，errors.Is(err, ErrInvalidFEN) 为真
type FENError struct {
	Reason string
	Input  string
}

func (e *FENError) Error() string {
	return "invalid FEN: " + e.Reason + ": " + strconv.Quote(e.Input)
}

func (e *FENError) Unwrap() error { return ErrInvalidFEN }

var maxPieceCount = [NumPieceTypes]int{
	King:     1,
	Elephant: 2,
	Advisor:  2,
	Cannon:   2,
	Pawn:     5,
	Rook:     2,
	Horse:    2,
}

// ParseFEN 解析 "棋盘 走子方 - - 半回合 回合"，后四项可省略。
func ParseFEN(fen string) (*Board, error) {
	InitTables()
	bad := func(reason string) (*Board, error) {
		return nil, &FENError{Reason: reason, Input: fen}
	}

	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return bad("missing side to move")
	}
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Ranks {
		return bad("expected 10 ranks")
	}

	b := &Board{
		MaxPlies:    DefaultMaxPlies,
		fullmoves:   1,
		repetitions: make(map[uint64]int),
	}
	for r, row := range ranks {
		f := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '9' {
				f += int(ch - '0')
				if f > Files {
					return bad("rank " + strconv.Itoa(r) + " has more than 9 files")
				}
				continue
			}
			pc, ok := pieceFromLetter(ch)
			if !ok {
				return bad("unknown character " + strconv.QuoteRune(rune(ch)))
			}
			if f >= Files {
				return bad("rank " + strconv.Itoa(r) + " has more than 9 files")
			}
			l := &b.lists[pc.Color()][pc.Type()]
			if int(l.n) >= maxPieceCount[pc.Type()] {
				if pc.Type() == King {
					return bad("more than one " + pc.Color().String() + " king")
				}
				return bad("too many " + string(pc.Letter()))
			}
			sq := SquareAt(f, r)
			b.squares[sq] = pc
			l.sq[l.n] = sq
			l.n++
			f++
		}
		if f != Files {
			return bad("rank " + strconv.Itoa(r) + " does not sum to 9 files")
		}
	}
	for _, c := range [2]Color{Black, Red} {
		if b.lists[c][King].n == 0 {
			return bad("missing " + c.String() + " king")
		}
	}

	switch parts[1] {
	case "w", "r":
		b.moving = Red
	case "b":
		b.moving = Black
	default:
		return bad("side to move must be w or b")
	}
	b.opponent = b.moving.Opponent()
	b.redUp = RankOf(b.KingSquare(Red)) < riverRank

	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return bad("bad half-move clock")
		}
		b.plies = n
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return bad("bad full-move number")
		}
		b.fullmoves = n
	}

	b.key = b.CalculateKey()
	b.repetitions[b.key] = 1
	return b, nil
}

// FEN 输出与 ParseFEN 对应的字符串
func (b *Board) FEN() string {
	var sb strings.Builder
	for r := 0; r < Ranks; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < Files; f++ {
			pc := b.squares[SquareAt(f, r)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	if b.moving == Red {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	sb.WriteString(" - - ")
	sb.WriteString(strconv.Itoa(b.plies))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoves))
	return sb.String()
}
