package layout

import (
	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// Point is a position in layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned commit.
type Node struct {
	Hash      string  `json:"hash"`
	Branch    string  `json:"branch"`
	Index     int     `json:"index"` // rank in sequence order
	Row       int     `json:"row"`
	Column    int     `json:"column"`
	Primary   float64 `json:"-"`
	Secondary float64 `json:"-"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Merge     bool    `json:"merge,omitempty"`
}

// Point returns the node's position.
func (n Node) Point() Point { return Point{X: n.X, Y: n.Y} }

// LinkKind classifies a link by the relation it draws.
type LinkKind string

const (
	LinkLane  LinkKind = "lane"
	LinkFork  LinkKind = "fork"
	LinkMerge LinkKind = "merge"
)

// Link joins a commit to one of its parents. Start lies on the parent's
// dot boundary and End on the child's.
type Link struct {
	Kind   LinkKind `json:"kind"`
	Child  string   `json:"child"`
	Parent string   `json:"parent"`
	Branch string   `json:"branch"` // branch whose color the link takes
	Start  Point    `json:"start"`
	End    Point    `json:"end"`
	Curved bool     `json:"curved"`
	// Control points of a cubic bezier from Start to End. For straight
	// links they equal the endpoints.
	Control1 Point  `json:"control1"`
	Control2 Point  `json:"control2"`
	Arrow    *Arrow `json:"arrow,omitempty"`
}

// Arrow is a triangle whose Tip touches the parent's dot.
type Arrow struct {
	Tip   Point `json:"tip"`
	Left  Point `json:"left"`
	Right Point `json:"right"`
}

// Lane is the drawn extent of one branch.
type Lane struct {
	Branch   string  `json:"branch"`
	Column   int     `json:"column"`
	Offset   float64 `json:"offset"` // secondary-axis position
	Points   []Point `json:"points"` // fork point (if any) then own commits
	Fork     bool    `json:"fork"`   // Points[0] is the fork point
	Start    float64 `json:"start"`  // primary-axis extent
	End      float64 `json:"end"`
	StartRow int     `json:"startRow"`
	EndRow   int     `json:"endRow"`
}

// Layout is the geometry of a commit graph.
type Layout struct {
	Orientation     template.Orientation `json:"orientation"`
	Mode            template.Mode        `json:"mode"`
	Nodes           []Node               `json:"nodes"` // sequence order
	Links           []Link               `json:"links"`
	Lanes           []Lane               `json:"lanes"`
	Rows            int                  `json:"rows"`
	Columns         int                  `json:"columns"`
	Width           float64              `json:"width"`
	Height          float64              `json:"height"`
	CommitMessagesX float64              `json:"commitMessagesX"`

	index map[string]int
}

// Node returns the positioned commit with the given hash.
func (l *Layout) Node(hash string) (Node, bool) {
	i, ok := l.index[hash]
	if !ok {
		return Node{}, false
	}
	return l.Nodes[i], true
}

// Build lays out g with t.
func Build(g *history.Graph, t template.Template) *Layout {
	order := sequence(g.Commits())
	l := &Layout{
		Orientation: t.Orientation,
		Mode:        t.Mode,
		Nodes:       make([]Node, len(order)),
		index:       make(map[string]int, len(order)),
	}

	column := func(c *history.Commit) int {
		if b := g.BranchByName(c.Branch); b != nil {
			return b.Column
		}
		return 0
	}

	rows := assignRows(order, column, t.Mode == template.Compact)
	maxCol := -1
	for i, c := range order {
		col := column(c)
		n := Node{
			Hash:      c.Hash,
			Branch:    c.Branch,
			Index:     i,
			Row:       rows[i],
			Column:    col,
			Primary:   t.Commit.SpacingY * float64(rows[i]),
			Secondary: t.Branch.Spacing * float64(col),
			Merge:     c.IsMerge(),
		}
		n.X, n.Y = orient(t.Orientation, n.Primary, n.Secondary)
		l.Nodes[i] = n
		l.index[c.Hash] = i
		maxCol = max(maxCol, col)
		l.Rows = max(l.Rows, rows[i]+1)
	}

	for i, c := range order {
		for k, p := range c.Parents {
			j, ok := l.index[p]
			if !ok {
				continue
			}
			l.Links = append(l.Links, link(t, l.Nodes[j], l.Nodes[i], k))
		}
	}

	l.Lanes = lanes(g, t, l)

	if len(l.Nodes) > 0 {
		l.Columns = maxCol + 1
		l.CommitMessagesX = float64(maxCol+1) * t.Branch.Spacing
		l.Width, l.Height = orient(t.Orientation,
			t.Commit.SpacingY*float64(l.Rows-1),
			t.Branch.Spacing*float64(maxCol))
	}
	return l
}

// orient maps primary/secondary coordinates to x/y.
func orient(o template.Orientation, primary, secondary float64) (x, y float64) {
	if o == template.Horizontal {
		return primary, secondary
	}
	return secondary, primary
}

func lanes(g *history.Graph, t template.Template, l *Layout) []Lane {
	own := make(map[string][]Node)
	for _, n := range l.Nodes {
		own[n.Branch] = append(own[n.Branch], n)
	}

	var out []Lane
	for _, b := range g.Branches() {
		nodes := own[b.Name]
		if len(nodes) == 0 {
			continue
		}
		lane := Lane{
			Branch:   b.Name,
			Column:   b.Column,
			Offset:   t.Branch.Spacing * float64(b.Column),
			Start:    nodes[0].Primary,
			End:      nodes[len(nodes)-1].Primary,
			StartRow: nodes[0].Row,
			EndRow:   nodes[len(nodes)-1].Row,
		}
		if fork, ok := l.Node(b.ParentCommit); ok {
			lane.Fork = true
			lane.Points = append(lane.Points, fork.Point())
			lane.Start = fork.Primary
			lane.StartRow = fork.Row
		}
		for _, n := range nodes {
			lane.Points = append(lane.Points, n.Point())
		}
		out = append(out, lane)
	}
	return out
}
