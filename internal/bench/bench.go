// Package bench 比较不同吃子排序系数下的搜索规模
package bench

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// DefaultPositions 开局、中局、残局各取几个
var DefaultPositions = []string{
	xiangqi.InitialFEN,
	"rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C4/9/RHEAKAEHR b - - 1 1",
	"r1eakaehr/9/1ch4c1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C1H2/9/RHEAKAE1R w - - 3 3",
	"2eakae2/9/4c4/p3p3p/2p6/6P2/P3P3P/2H1C4/9/2EAKAE2 w - - 0 20",
	"3k5/4a4/4e4/9/9/9/9/4E4/4A4/3AK2R1 w - - 0 40",
}

// OrderingStats 一个系数在所有局面上的统计
type OrderingStats struct {
	Coef       int
	Positions  int
	TotalNodes float64
	MeanNodes  float64
	StdNodes   float64
	MaxNodes   float64
	MeanLeaves float64
	MeanTime   time.Duration
}

// CompareOrdering 每个系数在每个局面上做一次固定深度搜索。
// 不用置换表，每次新建引擎，节点数只受排序影响
func CompareOrdering(ctx context.Context, fens []string, depth int, coefs []int) ([]OrderingStats, error) {
	boards := make([]*xiangqi.Board, len(fens))
	for i, fen := range fens {
		b, err := xiangqi.ParseFEN(fen)
		if err != nil {
			return nil, errors.Wrapf(err, "position %d", i)
		}
		boards[i] = b
	}
	if len(boards) == 0 {
		return nil, errors.New("no positions")
	}

	out := make([]OrderingStats, 0, len(coefs))
	for _, coef := range coefs {
		nodes := make([]float64, 0, len(boards))
		leaves := make([]float64, 0, len(boards))
		var elapsed time.Duration

		for _, b := range boards {
			if err := ctx.Err(); err != nil {
				return out, errors.Wrap(err, "compare ordering")
			}
			res := engine.NewEngine().Search(ctx, b.Clone(), engine.SearchConfig{
				MaxDepth:  depth,
				OrderCoef: coef,
			})
			nodes = append(nodes, float64(res.Nodes))
			leaves = append(leaves, float64(res.Leaves))
			elapsed += res.TimeUsed
		}

		mean, std := stat.MeanStdDev(nodes, nil)
		if len(nodes) < 2 {
			std = 0
		}
		out = append(out, OrderingStats{
			Coef:       coef,
			Positions:  len(nodes),
			TotalNodes: floats.Sum(nodes),
			MeanNodes:  mean,
			StdNodes:   std,
			MaxNodes:   floats.Max(nodes),
			MeanLeaves: stat.Mean(leaves, nil),
			MeanTime:   elapsed / time.Duration(len(nodes)),
		})
	}
	return out, nil
}

// Format 打成对齐的表
func Format(stats []OrderingStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%6s %10s %12s %12s %12s %12s\n", "coef", "positions", "mean_nodes", "std_nodes", "mean_leaves", "mean_time")
	for _, s := range stats {
		fmt.Fprintf(&sb, "%6d %10d %12.0f %12.0f %12.0f %12s\n",
			s.Coef, s.Positions, s.MeanNodes, s.StdNodes, s.MeanLeaves, s.MeanTime.Round(time.Microsecond))
	}
	return sb.String()
}
