package history

// columns is a min-free-slot allocator for lane columns.
type columns struct {
	used []bool
}

// acquire takes the smallest free column.
func (c *columns) acquire() int {
	for i, u := range c.used {
		if !u {
			c.used[i] = true
			return i
		}
	}
	c.used = append(c.used, true)
	return len(c.used) - 1
}

// release frees a column. Releasing a free column is a no-op.
func (c *columns) release(col int) {
	if col >= 0 && col < len(c.used) {
		c.used[col] = false
	}
}

// held reports whether the column is taken.
func (c *columns) held(col int) bool {
	return col >= 0 && col < len(c.used) && c.used[col]
}
