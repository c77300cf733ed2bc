package layout

import (
	"math"

	"github.com/matzehuels/commitgraph/pkg/template"
)

// vec is a point on the primary/secondary axes.
type vec struct{ p, s float64 }

func (a vec) add(b vec) vec       { return vec{a.p + b.p, a.s + b.s} }
func (a vec) sub(b vec) vec       { return vec{a.p - b.p, a.s - b.s} }
func (a vec) scale(f float64) vec { return vec{a.p * f, a.s * f} }
func (a vec) length() float64     { return math.Hypot(a.p, a.s) }
func (a vec) perp() vec           { return vec{-a.s, a.p} }
func (a vec) unit() vec           { return a.scale(1 / a.length()) }
func (a vec) point(o template.Orientation) Point {
	x, y := orient(o, a.p, a.s)
	return Point{X: x, Y: y}
}

// link computes the geometry from parent to child. k is the parent's
// position in the child's parent list.
func link(t template.Template, parent, child Node, k int) Link {
	l := Link{
		Kind:   LinkLane,
		Child:  child.Hash,
		Parent: parent.Hash,
		Branch: child.Branch,
	}
	switch {
	case k > 0:
		l.Kind = LinkMerge
		l.Branch = parent.Branch
	case parent.Branch != child.Branch:
		l.Kind = LinkFork
	}

	from := vec{parent.Primary, parent.Secondary}
	to := vec{child.Primary, child.Secondary}
	r := t.DotRadius()
	o := t.Orientation

	var start, end, dir vec
	curved := t.Branch.MergeStyle == template.Bezier && from.s != to.s && from.p != to.p
	if curved {
		sign := math.Copysign(1, to.p-from.p)
		dir = vec{sign, 0}
		start, end = from, to
		if math.Abs(to.p-from.p) > 2*r {
			start = from.add(dir.scale(r))
			end = to.sub(dir.scale(r))
		}
		mid := (start.p + end.p) / 2
		l.Curved = true
		l.Control1 = vec{mid, start.s}.point(o)
		l.Control2 = vec{mid, end.s}.point(o)
	} else {
		d := to.sub(from)
		start, end = from, to
		if d.length() > 0 {
			dir = d.unit()
		}
		if d.length() > 2*r {
			start = from.add(dir.scale(r))
			end = to.sub(dir.scale(r))
		}
		l.Control1 = start.point(o)
		l.Control2 = end.point(o)
	}
	l.Start = start.point(o)
	l.End = end.point(o)

	if t.Arrow.Height > 0 && dir != (vec{}) {
		base := start.add(dir.scale(t.Arrow.Height))
		half := dir.perp().scale(t.Arrow.Width / 2)
		l.Arrow = &Arrow{
			Tip:   start.point(o),
			Left:  base.add(half).point(o),
			Right: base.sub(half).point(o),
		}
	}
	return l
}
