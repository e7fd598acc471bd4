// Package solver finds short move sequences that restore a shuffled puzzle.
//
// Boards are given as the layout reported by an engine snapshot: every cell
// holds the 1-based row-major home number of its tile and the hole is 0. The
// hole's own tile belongs to the top-right cell, so that number never occurs.
//
// The search is A* over single hole moves with the Manhattan distance as
// heuristic, bounded by an expansion limit so large boards fail fast instead
// of exhausting memory.
package solver

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/wricardo/slide-puzzle/game/geom"
)

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrUnsolvable   = errors.New("board cannot be solved")
	ErrSearchLimit  = errors.New("search limit reached")
)

// DefaultMaxExpand bounds the number of expanded states.
const DefaultMaxExpand = 200000

// Board is a puzzle layout in row-major order.
type Board struct {
	Cols  int
	Rows  int
	Cells []int
}

// Step slides the tile at From into the hole at To.
type Step struct {
	From geom.Index `json:"from"`
	To   geom.Index `json:"to"`
}

// Direction returns the unit direction the tile travels.
func (s Step) Direction() geom.Point {
	return geom.Point{X: s.To.Col - s.From.Col, Y: s.To.Row - s.From.Row}
}

// Result holds a solution.
type Result struct {
	Steps    []Step `json:"steps"`
	Expanded int    `json:"expanded"`
}

// Options tunes the search.
type Options struct {
	// MaxExpand caps expanded states; 0 means DefaultMaxExpand.
	MaxExpand int
	// Weight scales the heuristic. Values above 1 trade optimality for speed.
	Weight int
}

// FromLayout converts a [row][col] layout to a Board and checks that it
// holds exactly the expected tile numbers.
func FromLayout(layout [][]int) (Board, error) {
	rows := len(layout)
	if rows == 0 || len(layout[0]) == 0 {
		return Board{}, fmt.Errorf("%w: empty layout", ErrInvalidBoard)
	}
	cols := len(layout[0])

	b := Board{Cols: cols, Rows: rows, Cells: make([]int, 0, cols*rows)}
	for r, row := range layout {
		if len(row) != cols {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidBoard, r, len(row), cols)
		}
		b.Cells = append(b.Cells, row...)
	}
	if err := b.validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

func (b Board) validate() error {
	n := b.Cols * b.Rows
	if b.Cols <= 0 || b.Rows <= 0 || len(b.Cells) != n {
		return fmt.Errorf("%w: %dx%d with %d cells", ErrInvalidBoard, b.Cols, b.Rows, len(b.Cells))
	}
	seen := make([]bool, n+1)
	for _, v := range b.Cells {
		if v < 0 || v > n || v == b.goalHole()+1 || seen[v] {
			return fmt.Errorf("%w: unexpected cell value %d", ErrInvalidBoard, v)
		}
		seen[v] = true
	}
	if !seen[0] {
		return fmt.Errorf("%w: no hole", ErrInvalidBoard)
	}
	return nil
}

// goalHole is the cell index where the hole rests when solved.
func (b Board) goalHole() int { return b.Cols - 1 }

func (b Board) home(v int) int {
	if v == 0 {
		return b.goalHole()
	}
	return v - 1
}

func (b Board) index(i int) geom.Index {
	return geom.Index{Col: i % b.Cols, Row: i / b.Cols}
}

// Solved reports whether every tile is home.
func (b Board) Solved() bool {
	for i, v := range b.Cells {
		if b.home(v) != i {
			return false
		}
	}
	return true
}

// Solvable reports whether single hole moves can reach the solved layout.
// With one free cell every move is a transposition that also flips the
// hole's distance parity, so the two parities must agree. Single-row and
// single-column boards additionally cannot reorder their tiles.
func (b Board) Solvable() bool {
	if b.Cols == 1 || b.Rows == 1 {
		prev := 0
		for _, v := range b.Cells {
			if v == 0 {
				continue
			}
			if v < prev {
				return false
			}
			prev = v
		}
		return true
	}

	perm := make([]int, len(b.Cells))
	for i, v := range b.Cells {
		perm[i] = b.home(v)
	}
	swaps := 0
	visited := make([]bool, len(perm))
	for i := range perm {
		if visited[i] {
			continue
		}
		length := 0
		for j := i; !visited[j]; j = perm[j] {
			visited[j] = true
			length++
		}
		swaps += length - 1
	}

	hole := b.index(indexOf(b.Cells, 0))
	goal := b.index(b.goalHole())
	distance := abs(hole.Col-goal.Col) + abs(hole.Row-goal.Row)
	return swaps%2 == distance%2
}

func (b Board) manhattan(cells []int) int {
	sum := 0
	for i, v := range cells {
		if v == 0 {
			continue
		}
		h := v - 1
		sum += abs(i%b.Cols-h%b.Cols) + abs(i/b.Cols-h/b.Cols)
	}
	return sum
}

type node struct {
	cells  []int
	hole   int
	g, h   int
	index  int
	parent *node
	step   Step
}

type minQueue []*node

func (q minQueue) Len() int { return len(q) }
func (q minQueue) Less(i, j int) bool {
	fi, fj := q[i].g+q[i].h, q[j].g+q[j].h
	if fi == fj {
		return q[i].h < q[j].h
	}
	return fi < fj
}
func (q minQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *minQueue) Push(x any)   { n := x.(*node); n.index = len(*q); *q = append(*q, n) }
func (q *minQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	item.index = -1
	*q = old[:n-1]
	return item
}

func key(cells []int) string {
	buf := make([]byte, 2*len(cells))
	for i, v := range cells {
		buf[2*i] = byte(v)
		buf[2*i+1] = byte(v >> 8)
	}
	return string(buf)
}

// Solve searches for a move sequence from b to the solved layout.
func Solve(b Board, opts Options) (Result, error) {
	if err := b.validate(); err != nil {
		return Result{}, err
	}
	if !b.Solvable() {
		return Result{}, ErrUnsolvable
	}
	maxExpand := opts.MaxExpand
	if maxExpand <= 0 {
		maxExpand = DefaultMaxExpand
	}
	weight := opts.Weight
	if weight <= 0 {
		weight = 1
	}

	start := &node{
		cells: append([]int(nil), b.Cells...),
		hole:  indexOf(b.Cells, 0),
	}
	start.h = weight * b.manhattan(start.cells)

	open := &minQueue{}
	heap.Init(open)
	heap.Push(open, start)
	best := map[string]int{key(start.cells): 0}
	expanded := 0

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if (Board{Cols: b.Cols, Rows: b.Rows, Cells: current.cells}).Solved() {
			return Result{Steps: path(current), Expanded: expanded}, nil
		}
		if g, ok := best[key(current.cells)]; ok && g < current.g {
			continue
		}

		expanded++
		if expanded > maxExpand {
			return Result{Expanded: expanded}, ErrSearchLimit
		}

		hole := b.index(current.hole)
		for _, d := range [...]geom.Index{{Col: 0, Row: -1}, {Col: 0, Row: 1}, {Col: -1, Row: 0}, {Col: 1, Row: 0}} {
			from := hole.Add(d)
			if from.Col < 0 || from.Col >= b.Cols || from.Row < 0 || from.Row >= b.Rows {
				continue
			}
			fi := from.Row*b.Cols + from.Col
			if current.parent != nil && fi == current.parent.hole {
				continue
			}

			next := append([]int(nil), current.cells...)
			next[current.hole], next[fi] = next[fi], 0
			k := key(next)
			g := current.g + 1
			if prev, ok := best[k]; ok && prev <= g {
				continue
			}
			best[k] = g
			heap.Push(open, &node{
				cells:  next,
				hole:   fi,
				g:      g,
				h:      weight * b.manhattan(next),
				parent: current,
				step:   Step{From: from, To: hole},
			})
		}
	}
	return Result{Expanded: expanded}, ErrUnsolvable
}

func path(n *node) []Step {
	var steps []Step
	for ; n.parent != nil; n = n.parent {
		steps = append(steps, n.step)
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}

func indexOf(cells []int, v int) int {
	for i, c := range cells {
		if c == v {
			return i
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
