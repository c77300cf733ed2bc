package layout

import (
	"container/heap"

	"github.com/matzehuels/commitgraph/pkg/history"
)

// sequence orders commits parent-before-child. Among ready commits the one
// issued first is emitted first.
func sequence(commits []*history.Commit) []*history.Commit {
	pos := make(map[string]int, len(commits))
	for i, c := range commits {
		pos[c.Hash] = i
	}

	indeg := make([]int, len(commits))
	children := make([][]int, len(commits))
	for i, c := range commits {
		for _, p := range c.Parents {
			j, ok := pos[p]
			if !ok {
				continue
			}
			indeg[i]++
			children[j] = append(children[j], i)
		}
	}

	ready := &readyQueue{}
	for i, d := range indeg {
		if d == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]*history.Commit, 0, len(commits))
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		out = append(out, commits[i])
		for _, k := range children[i] {
			if indeg[k]--; indeg[k] == 0 {
				heap.Push(ready, k)
			}
		}
	}
	return out
}

// readyQueue is a min-heap of issuance indices.
type readyQueue []int

func (q readyQueue) Len() int           { return len(q) }
func (q readyQueue) Less(i, j int) bool { return q[i] < q[j] }
func (q readyQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *readyQueue) Push(x any)        { *q = append(*q, x.(int)) }
func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// assignRows returns the row of each commit in sequence order.
//
// In compact mode a non-merge commit shares the previous commit's row when
// the previous commit is on another branch, the commit's branch already has
// a commit on an earlier row, every parent sits on an earlier row, and the
// row does not already hold the commit's column.
func assignRows(order []*history.Commit, column func(*history.Commit) int, compact bool) []int {
	rows := make([]int, len(order))
	rowOf := make(map[string]int, len(order))
	lastRow := make(map[string]int)
	occupied := make(map[int]map[int]bool)

	for i, c := range order {
		row := 0
		if i > 0 {
			prevRow := rows[i-1]
			row = prevRow + 1
			if compact && canShare(c, order[i-1], prevRow, column(c), rowOf, lastRow, occupied) {
				row = prevRow
			}
		}
		rows[i] = row
		rowOf[c.Hash] = row
		lastRow[c.Branch] = row
		if occupied[row] == nil {
			occupied[row] = make(map[int]bool)
		}
		occupied[row][column(c)] = true
	}
	return rows
}

func canShare(c, prev *history.Commit, prevRow, col int, rowOf, lastRow map[string]int, occupied map[int]map[int]bool) bool {
	if c.IsMerge() || prev.Branch == c.Branch {
		return false
	}
	last, ok := lastRow[c.Branch]
	if !ok || last >= prevRow {
		return false
	}
	for _, p := range c.Parents {
		if r, ok := rowOf[p]; ok && r >= prevRow {
			return false
		}
	}
	return !occupied[prevRow][col]
}
