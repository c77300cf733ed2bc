package render

// LineWriter is implemented by adapters that draw one line per commit and
// have no notion of pixels.
type LineWriter interface {
	// Commit draws one commit. left is the number of lanes before the
	// commit's lane, right the number after it, and messageOffset the
	// number of lanes the message must clear.
	Commit(hash string, refs []string, subject string, left, right, messageOffset int) error
	// OpenBranch draws a lane forking off before the next commit.
	OpenBranch() error
}

// Walk drives w over d in render order. OpenBranch is called before the
// first commit of every forked lane. Subjects are passed only for commits
// whose message is displayed.
func Walk(d *Data, w LineWriter) error {
	forked := make(map[string]bool, len(d.Branches))
	for _, b := range d.Branches {
		forked[b.Name] = b.Fork
	}
	opened := make(map[string]bool, len(d.Branches))
	last := max(d.Columns-1, 0)

	for _, c := range d.Commits {
		if forked[c.Branch] && !opened[c.Branch] {
			if err := w.OpenBranch(); err != nil {
				return err
			}
		}
		opened[c.Branch] = true

		subject := ""
		if c.Display {
			subject = c.Subject
		}
		if err := w.Commit(c.HashAbbrev, c.Refs, subject, c.Column, last-c.Column, d.Columns); err != nil {
			return err
		}
	}
	return nil
}
