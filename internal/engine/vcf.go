package engine

import (
	"sort"

	"xiangqi/internal/xiangqi"
)

// 连将杀搜索：攻方每步必须将军，守方任意应着，守方无着即杀。
const (
	vcfDepthCap         = 15
	vcfDefaultDepth     = 7
	vcfNodeBudgetBase   = 32000
	vcfNodeBudgetPerPly = 8000
)

// 区分攻/守两种节点的置换表键
const (
	vcfModeAttack uint64 = 0xA5A5A5A5A5A5A5A5
	vcfModeDefend uint64 = 0x5A5A5A5A5A5A5A5A
)

type vcfTTEntry struct {
	Depth  int
	Result bool
	Move   xiangqi.Move
}

type vcfContext struct {
	b          *xiangqi.Board
	tt         map[uint64]vcfTTEntry
	inPath     map[uint64]bool
	nodes      int
	nodeBudget int
}

// VCFResult 连将搜索结果
type VCFResult struct {
	CanWin bool
	Move   xiangqi.Move
	Line   []xiangqi.Move // 攻守交替的主变，找到杀法时有效
	Nodes  int
}

// VCFSearch 在 maxDepth 层（攻守合计，奇数）内寻找连将杀。不修改 b。
func (e *Engine) VCFSearch(b *xiangqi.Board, maxDepth int) VCFResult {
	if maxDepth <= 0 {
		maxDepth = vcfDefaultDepth
	}
	if maxDepth > vcfDepthCap {
		maxDepth = vcfDepthCap
	}
	ctx := &vcfContext{
		b:          b.Clone(),
		tt:         make(map[uint64]vcfTTEntry, 1<<16),
		inPath:     make(map[uint64]bool, 1<<10),
		nodeBudget: vcfNodeBudgetBase + maxDepth*vcfNodeBudgetPerPly,
	}

	// 迭代加深：1, 3, 5 ... 先找最短的杀
	for d := 1; d <= maxDepth; d += 2 {
		if ctx.attackerCanForce(d) {
			key := ctx.b.Key() ^ vcfModeAttack
			mv := ctx.tt[key].Move
			return VCFResult{CanWin: true, Move: mv, Line: ctx.line(d), Nodes: ctx.nodes}
		}
		if ctx.nodes > ctx.nodeBudget {
			break
		}
	}
	return VCFResult{Nodes: ctx.nodes}
}

// checkingMoves 走子方所有能将军的着法，吃子优先
func (ctx *vcfContext) checkingMoves() []xiangqi.Move {
	b := ctx.b
	moves := b.GenerateMoves(false)
	out := moves[:0]
	for _, m := range moves {
		b.MakeMove(m, true)
		if b.InCheck() {
			out = append(out, m)
		}
		b.ReverseMove(true)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return victimValue(b.At(out[i].To)) > victimValue(b.At(out[j].To))
	})
	return out
}

func (ctx *vcfContext) attackerCanForce(depth int) bool {
	if depth <= 0 || ctx.reachNodeBudget() {
		return false
	}
	b := ctx.b
	key := b.Key() ^ vcfModeAttack
	if ctx.inPath[key] {
		return false
	}
	if entry, ok := ctx.tt[key]; ok && entry.Depth >= depth {
		return entry.Result
	}
	ctx.inPath[key] = true
	defer delete(ctx.inPath, key)

	moves := ctx.checkingMoves()
	if entry, ok := ctx.tt[key]; ok && entry.Result {
		moveToFront(moves, entry.Move)
	}

	result := false
	var bestMove xiangqi.Move
	for _, m := range moves {
		b.MakeMove(m, true)
		escape := ctx.defenderCanEscape(depth - 1)
		b.ReverseMove(true)
		if !escape {
			result, bestMove = true, m
			break
		}
	}
	ctx.tt[key] = vcfTTEntry{Depth: depth, Result: result, Move: bestMove}
	return result
}

func (ctx *vcfContext) defenderCanEscape(depth int) bool {
	b := ctx.b
	moves := b.GenerateMoves(false)
	if len(moves) == 0 {
		return false
	}
	if depth <= 0 || ctx.reachNodeBudget() {
		return true
	}
	key := b.Key() ^ vcfModeDefend
	if ctx.inPath[key] {
		return true
	}
	if entry, ok := ctx.tt[key]; ok && entry.Depth >= depth {
		return entry.Result
	}
	ctx.inPath[key] = true
	defer delete(ctx.inPath, key)

	result := false
	var bestMove xiangqi.Move
	for _, m := range moves {
		b.MakeMove(m, true)
		forced := ctx.attackerCanForce(depth - 1)
		b.ReverseMove(true)
		if !forced {
			// 守方只要有一个应着不被连将杀就算逃脱
			result, bestMove = true, m
			break
		}
	}
	if !result {
		// 记录一个应着，供主变使用
		bestMove = moves[0]
	}
	ctx.tt[key] = vcfTTEntry{Depth: depth, Result: result, Move: bestMove}
	return result
}

// line 沿置换表走出杀法
func (ctx *vcfContext) line(depth int) []xiangqi.Move {
	b := ctx.b
	var out []xiangqi.Move
	for i := 0; i < depth; i++ {
		mode := vcfModeAttack
		if i%2 == 1 {
			mode = vcfModeDefend
		}
		entry, ok := ctx.tt[b.Key()^mode]
		if !ok {
			break
		}
		legal := false
		for _, m := range b.GenerateMoves(false) {
			if m == entry.Move {
				legal = true
				break
			}
		}
		if !legal {
			break
		}
		b.MakeMove(entry.Move, true)
		out = append(out, entry.Move)
	}
	for range out {
		b.ReverseMove(true)
	}
	return out
}

func (ctx *vcfContext) reachNodeBudget() bool {
	ctx.nodes++
	return ctx.nodes > ctx.nodeBudget
}
