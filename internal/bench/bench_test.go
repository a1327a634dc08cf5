package bench

import (
	"context"
	"strings"
	"testing"

	"xiangqi/internal/xiangqi"
)

func TestCompareOrdering(t *testing.T) {
	stats, err := CompareOrdering(context.Background(), DefaultPositions[:2], 2, []int{1, 250})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(stats) != 2 || stats[0].Coef != 1 || stats[1].Coef != 250 {
		t.Fatalf("stats: %+v", stats)
	}
	for _, s := range stats {
		if s.Positions != 2 || s.MeanNodes <= 0 || s.MaxNodes < s.MeanNodes || s.TotalNodes != 2*s.MeanNodes {
			t.Errorf("coef %d: %+v", s.Coef, s)
		}
	}

	table := Format(stats)
	if lines := strings.Split(strings.TrimSpace(table), "\n"); len(lines) != 3 {
		t.Fatalf("table:\n%s", table)
	}
}

func TestCompareOrderingSinglePosition(t *testing.T) {
	stats, err := CompareOrdering(context.Background(), []string{xiangqi.InitialFEN}, 1, []int{250})
	if err != nil {
		t.Fatal(err)
	}
	// 一层只有 44 个叶子
	if stats[0].StdNodes != 0 || stats[0].MeanLeaves != 44 {
		t.Fatalf("single: %+v", stats[0])
	}
}

func TestDefaultPositionsParse(t *testing.T) {
	for i, fen := range DefaultPositions {
		if _, err := xiangqi.ParseFEN(fen); err != nil {
			t.Errorf("position %d: %v", i, err)
		}
	}
}

func TestCompareOrderingErrors(t *testing.T) {
	if _, err := CompareOrdering(context.Background(), []string{"bad"}, 1, []int{1}); err == nil {
		t.Fatal("bad fen accepted")
	}
	if _, err := CompareOrdering(context.Background(), nil, 1, []int{1}); err == nil {
		t.Fatal("empty positions accepted")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CompareOrdering(ctx, DefaultPositions, 1, []int{1}); err == nil {
		t.Fatal("cancelled context ignored")
	}
}
