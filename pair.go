package morph

// Side selects one mesh of a pair.
type Side int

const (
	// SideA is the first image's mesh.
	SideA Side = iota
	// SideB is the second image's mesh.
	SideB
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// ChangeOp identifies what kind of mutation a change notification
// reports.
type ChangeOp int

const (
	// OpAdd reports a new landmark appended to both meshes.
	OpAdd ChangeOp = iota
	// OpMove reports a landmark coordinate replacement.
	OpMove
	// OpDelete reports an index-aligned deletion from both meshes.
	OpDelete
	// OpSelect reports a selection change.
	OpSelect
)

// Change describes one completed mutation on a pair. Index is the
// landmark index the mutation applied to, or -1 when not applicable.
type Change struct {
	Op    ChangeOp
	Side  Side
	Index int
}

// NoSelection is the selected-index value meaning no point is
// selected.
const NoSelection = -1

// Pair keeps two meshes index-aligned so triangle i of one mesh is
// always the morph counterpart of triangle i of the other. A landmark
// is not just geometry: position i in A's point list is the morph
// target of position i in B's, so every point-count-changing mutation
// on one mesh is balanced on the other before the call returns.
type Pair struct {
	a, b     *Mesh
	selected int
	onChange func(Change)
}

// NewPair wraps two meshes. Both meshes should be mutated through the
// pair from here on; mutating one directly leaves the caller
// responsible for calling Balance before the next render.
func NewPair(a, b *Mesh) *Pair {
	return &Pair{a: a, b: b, selected: NoSelection}
}

// OnChange registers the change notification callback, invoked
// synchronously after every completed mutation. Replaces any earlier
// callback.
func (p *Pair) OnChange(fn func(Change)) {
	p.onChange = fn
}

func (p *Pair) notify(c Change) {
	if p.onChange != nil {
		p.onChange(c)
	}
}

// Mesh returns the mesh on the given side.
func (p *Pair) Mesh(s Side) *Mesh {
	if s == SideA {
		return p.a
	}
	return p.b
}

// Selected returns the selected landmark index, or NoSelection.
func (p *Pair) Selected() int { return p.selected }

// Select marks the landmark at index i as selected on both meshes
// (selection is an index, so it addresses the corresponding point in
// either mesh).
func (p *Pair) Select(i int) error {
	if i != NoSelection && (i < 0 || i >= p.a.NumPoints()) {
		return ErrIndexOutOfRange
	}
	p.selected = i
	p.notify(Change{Op: OpSelect, Index: i})
	return nil
}

// ClearSelection drops the current selection.
func (p *Pair) ClearSelection() {
	p.selected = NoSelection
	p.notify(Change{Op: OpSelect, Index: NoSelection})
}

// AddPoint appends a landmark at (x, y) to the mesh on side s, then
// balances the pair: the other mesh receives a twin at the same
// coordinates, seeding a correspondence the user drags to the right
// spot afterwards. Adding clears the selection.
func (p *Pair) AddPoint(s Side, x, y float64) int {
	i := p.Mesh(s).AddPoint(x, y)
	p.Balance()
	p.selected = NoSelection
	p.notify(Change{Op: OpAdd, Side: s, Index: i})
	return i
}

// DeletePoint removes the landmark at index i from both meshes. The
// two points may sit at very different coordinates; the deletion is
// aligned by index, never by value.
func (p *Pair) DeletePoint(i int) error {
	if i < 0 || i >= p.a.NumPoints() || i >= p.b.NumPoints() {
		return ErrIndexOutOfRange
	}
	if err := p.a.RemovePointAt(i); err != nil {
		return err
	}
	if err := p.b.RemovePointAt(i); err != nil {
		return err
	}
	if p.selected == i {
		p.selected = NoSelection
	} else if p.selected > i {
		p.selected--
	}
	p.notify(Change{Op: OpDelete, Index: i})
	return nil
}

// MovePoint replaces the coordinate of landmark i on side s, with the
// mesh's clamping and deletion-gesture rules. marked reports that the
// gesture flagged the point instead of moving it; the caller commits
// the flagged deletions with CommitDeletions when the gesture ends.
func (p *Pair) MovePoint(s Side, i int, x, y float64) (marked bool, err error) {
	marked, err = p.Mesh(s).MovePoint(i, x, y)
	if err != nil {
		return false, err
	}
	p.notify(Change{Op: OpMove, Side: s, Index: i})
	return marked, nil
}

// CommitDeletions removes every landmark flagged for deletion on
// either mesh from both meshes, highest index first so earlier indexes
// stay valid while iterating.
func (p *Pair) CommitDeletions() {
	n := p.a.NumPoints()
	if bn := p.b.NumPoints(); bn < n {
		n = bn
	}
	for i := n - 1; i >= 0; i-- {
		if p.a.points[i].Deleted || p.b.points[i].Deleted {
			// Indexes were validated by the loop bounds; the only
			// error RemovePointAt can return cannot happen here.
			p.DeletePoint(i)
		}
	}
}

// Balance restores the pair's length invariant by appending to the
// shorter mesh copies of the coordinates found at the same indexes in
// the longer one. Safe to call at any time; a no-op when the meshes
// already match.
func (p *Pair) Balance() {
	source, target := p.a, p.b
	if target.NumPoints() > source.NumPoints() {
		source, target = target, source
	}
	for target.NumPoints() < source.NumPoints() {
		twin := source.points[target.NumPoints()]
		target.AddPoint(float64(twin.X), float64(twin.Y))
	}
}

// Validate reports whether the two meshes can morph into each other:
// equal landmark counts and equal effective point counts (a point
// flagged on one side only also breaks the correspondence).
func (p *Pair) Validate() error {
	if p.a.NumPoints() != p.b.NumPoints() {
		return ErrPointCountMismatch
	}
	if len(p.a.EffectivePoints()) != len(p.b.EffectivePoints()) {
		return ErrPointCountMismatch
	}
	return nil
}
