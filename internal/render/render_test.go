package render

import (
	"strings"
	"testing"

	"xiangqi/internal/xiangqi"
)

func TestPlainInitialBoard(t *testing.T) {
	out := Board(xiangqi.NewBoard(), Options{Plain: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// 表头 + 10 行 + 河界 + 摘要
	if len(lines) != 13 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	want := map[int]string{
		0:  fileHeader,
		1:  "0  r h e a k a e h r",
		3:  "2  . c . . . . . c .",
		6:  "   ~~~~~~~~~~~~~~~~~",
		11: "9  R H E A K A E H R",
		12: "red to move, move 1, plies 0",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestPlainHighlight(t *testing.T) {
	b := xiangqi.NewBoard()
	m := xiangqi.Move{From: 64, To: 67}
	if err := b.Play(m); err != nil {
		t.Fatal(err)
	}
	out := Board(b, Options{Plain: true, Highlight: &m})
	if !strings.Contains(out, "7  . + . . C . . C .") {
		t.Fatalf("highlight missing:\n%s", out)
	}
	if !strings.Contains(out, "black to move") {
		t.Fatalf("caption: %s", out)
	}
}

func TestStyledBoardHasBorderAndCaption(t *testing.T) {
	b, err := xiangqi.ParseFEN("4k4/4p4/R8/9/9/9/9/9/9/3K5 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	b.MakeMove(xiangqi.Move{From: 18, To: 0}, false)
	out := Board(b, Options{})
	if !strings.Contains(out, "╭") || !strings.Contains(out, "╯") {
		t.Fatalf("no rounded border:\n%s", out)
	}
	if !strings.Contains(out, "(check)") {
		t.Fatalf("check not shown:\n%s", out)
	}
}
