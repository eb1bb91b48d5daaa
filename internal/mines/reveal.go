package mines

import "github.com/gammazero/deque"

// pass selects which neighbours a reveal frame visits.
type pass uint8

const (
	passAll        pass = iota // up, down, left, right
	passHorizontal             // left, right
	passVertical               // up, down
)

// step is one neighbour offset together with the secondary pass a Number
// cell reached through it receives.
type step struct {
	dx, dy int
	then   pass
}

var passSteps = [...][]step{
	passAll: {
		{dx: 0, dy: -1, then: passHorizontal},
		{dx: 0, dy: 1, then: passHorizontal},
		{dx: -1, dy: 0, then: passVertical},
		{dx: 1, dy: 0, then: passVertical},
	},
	passHorizontal: {
		{dx: -1, dy: 0},
		{dx: 1, dy: 0},
	},
	passVertical: {
		{dx: 0, dy: -1},
		{dx: 0, dy: 1},
	},
}

// frame is a suspended reveal pass: the cell it runs from and the index of
// the next neighbour to look at.
type frame struct {
	x, y int
	pass pass
	next int
}

// revealFrom runs the flood fill from an Empty cell at column x, row y.
//
// The walk is depth-first and visits neighbours in the order up, down, left,
// right. A Number reached by the full pass only gets the perpendicular pass,
// so the fill spreads through Empty regions and stops one Number deep.
// Frames are kept on an explicit stack instead of the call stack; every cell
// is marked before anything is pushed for it, so no cell is entered twice.
func (e *Engine) revealFrom(x, y int) {
	var stack deque.Deque[frame]
	stack.PushBack(frame{x: x, y: y, pass: passAll})

	for stack.Len() > 0 {
		f := stack.PopBack()
		steps := passSteps[f.pass]

		for f.next < len(steps) {
			s := steps[f.next]
			f.next++

			nx, ny := f.x+s.dx, f.y+s.dy
			if !e.InBounds(nx, ny) || e.grid[ny][nx] != Unrevealed {
				continue
			}
			// Neighbours of an Empty cell are never mines, so only the
			// secondary passes need the check.
			if f.pass != passAll && e.IsMine(nx, ny) {
				continue
			}

			if e.MinesNearby(nx, ny) > 0 {
				e.grid[ny][nx] = Number
				if f.pass != passAll {
					continue
				}
				stack.PushBack(f)
				stack.PushBack(frame{x: nx, y: ny, pass: s.then})
			} else {
				e.grid[ny][nx] = Empty
				stack.PushBack(f)
				stack.PushBack(frame{x: nx, y: ny, pass: passAll})
			}
			break
		}
	}
}
