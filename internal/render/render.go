// Package render 把棋盘画成终端文本
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"xiangqi/internal/xiangqi"
)

type Options struct {
	Plain     bool          // 不加颜色和边框，给日志和 HTTP 用
	Highlight *xiangqi.Move // 标出这一步的起止格
}

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	blackStyle = lipgloss.NewStyle().Bold(true)
	markStyle  = lipgloss.NewStyle().Reverse(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

const fileHeader = "   0 1 2 3 4 5 6 7 8"

// Board 顶部是第 0 行。空格用 '.'，Plain 模式下高亮的空起点用 '+'
func Board(b *xiangqi.Board, opt Options) string {
	var sb strings.Builder
	sb.WriteString(fileHeader)
	sb.WriteByte('\n')

	for rank := 0; rank < xiangqi.Ranks; rank++ {
		fmt.Fprintf(&sb, "%d ", rank)
		for file := 0; file < xiangqi.Files; file++ {
			sq := xiangqi.SquareAt(file, rank)
			sb.WriteByte(' ')
			sb.WriteString(cell(b.At(sq), marked(opt.Highlight, sq), opt.Plain))
		}
		sb.WriteByte('\n')
		if rank == xiangqi.Ranks/2-1 {
			sb.WriteString("   " + strings.Repeat("~", 2*xiangqi.Files-1) + "\n")
		}
	}

	grid := strings.TrimRight(sb.String(), "\n")
	if opt.Plain {
		return grid + "\n" + Caption(b) + "\n"
	}
	return boxStyle.Render(titleStyle.Render(Caption(b)) + "\n" + grid)
}

func marked(m *xiangqi.Move, sq int) bool {
	return m != nil && (m.From == sq || m.To == sq)
}

func cell(p xiangqi.Piece, mark, plain bool) string {
	s := "."
	if !p.IsEmpty() {
		s = p.String()
	}
	if plain {
		if mark && p.IsEmpty() {
			return "+"
		}
		return s
	}

	st := blackStyle
	if p.IsEmpty() {
		st = lipgloss.NewStyle()
	} else if p.Color() == xiangqi.Red {
		st = redStyle
	}
	if mark {
		st = st.Inherit(markStyle)
	}
	return st.Render(s)
}

// Caption 一行局面摘要
func Caption(b *xiangqi.Board) string {
	s := fmt.Sprintf("%s to move, move %d, plies %d", b.MovingColor(), b.Fullmoves(), b.Plies())
	if b.InCheck() {
		s += " (check)"
	}
	return s
}
