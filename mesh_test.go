package morph

import (
	"errors"
	"image"
	"testing"
)

func TestEffectivePointsCornerInvariant(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Mesh)
	}{
		{
			name:  "empty mesh",
			setup: func(m *Mesh) {},
		},
		{
			name: "with landmarks",
			setup: func(m *Mesh) {
				m.AddPoint(10, 10)
				m.AddPoint(200, 300)
			},
		},
		{
			name: "with flagged landmark",
			setup: func(m *Mesh) {
				m.AddPoint(10, 10)
				m.MarkForDeletion(0)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMesh(400, 400)
			tc.setup(m)

			pts := m.EffectivePoints()
			want := []image.Point{
				image.Pt(0, 0), image.Pt(400, 0), image.Pt(0, 400), image.Pt(400, 400),
			}
			if len(pts) < 4 {
				t.Fatalf("effective list has %d points, want at least the 4 corners", len(pts))
			}
			for i, c := range want {
				if pts[i] != c {
					t.Errorf("corner %d = %v, want %v", i, pts[i], c)
				}
			}
		})
	}
}

func TestAddPointRoundsCoordinates(t *testing.T) {
	m := NewMesh(400, 400)
	m.AddPoint(10.4, 10.6)

	p, err := m.Point(0)
	if err != nil {
		t.Fatal(err)
	}
	if p.X != 10 || p.Y != 11 {
		t.Errorf("stored point = (%d,%d), want (10,11)", p.X, p.Y)
	}
}

func TestMarkForDeletionExcludesFromEffectiveList(t *testing.T) {
	m := NewMesh(400, 400)
	m.AddPoint(10, 10)
	m.AddPoint(20, 20)

	if err := m.MarkForDeletion(0); err != nil {
		t.Fatal(err)
	}

	pts := m.EffectivePoints()
	if len(pts) != 5 {
		t.Fatalf("effective list has %d points, want 5 (4 corners + 1 live landmark)", len(pts))
	}
	if pts[4] != image.Pt(20, 20) {
		t.Errorf("surviving landmark = %v, want (20,20)", pts[4])
	}
	if m.NumPoints() != 2 {
		t.Errorf("point list shrank to %d, flagging must not remove the slot", m.NumPoints())
	}
}

func TestRemovePointAtShiftsIndexes(t *testing.T) {
	m := NewMesh(400, 400)
	m.AddPoint(1, 1)
	m.AddPoint(2, 2)
	m.AddPoint(3, 3)

	if err := m.RemovePointAt(1); err != nil {
		t.Fatal(err)
	}
	if m.NumPoints() != 2 {
		t.Fatalf("NumPoints = %d, want 2", m.NumPoints())
	}
	p, _ := m.Point(1)
	if p.X != 3 || p.Y != 3 {
		t.Errorf("point 1 = (%d,%d), want the shifted (3,3)", p.X, p.Y)
	}
}

func TestIndexMisuseIsAnError(t *testing.T) {
	m := NewMesh(400, 400)
	m.AddPoint(10, 10)

	if err := m.RemovePointAt(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemovePointAt(1) = %v, want ErrIndexOutOfRange", err)
	}
	if err := m.MarkForDeletion(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("MarkForDeletion(-1) = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := m.MovePoint(7, 0, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("MovePoint(7) = %v, want ErrIndexOutOfRange", err)
	}
}

func TestMovePointClampAndDeletionGesture(t *testing.T) {
	tests := []struct {
		name       string
		x, y       float64
		wantX      int
		wantY      int
		wantMarked bool
	}{
		{name: "clamped both axes", x: 450, y: -10, wantX: 400, wantY: 0},
		{name: "just inside the gesture threshold", x: 100, y: -19, wantX: 100, wantY: 0},
		{name: "exactly on the threshold", x: 100, y: -20, wantX: 100, wantY: 0},
		{name: "past the threshold marks for deletion", x: 100, y: -21, wantMarked: true},
		{name: "in-domain move", x: 120.6, y: 350.2, wantX: 121, wantY: 350},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMesh(400, 400)
			m.AddPoint(50, 50)

			marked, err := m.MovePoint(0, tc.x, tc.y)
			if err != nil {
				t.Fatal(err)
			}
			if marked != tc.wantMarked {
				t.Fatalf("marked = %v, want %v", marked, tc.wantMarked)
			}
			p, _ := m.Point(0)
			if p.Deleted != tc.wantMarked {
				t.Errorf("Deleted flag = %v, want %v", p.Deleted, tc.wantMarked)
			}
			if !tc.wantMarked && (p.X != tc.wantX || p.Y != tc.wantY) {
				t.Errorf("moved point = (%d,%d), want (%d,%d)", p.X, p.Y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestEdgesAreDeduplicated(t *testing.T) {
	m := NewMesh(400, 400)
	m.AddPoint(100, 100)
	m.AddPoint(300, 120)
	m.AddPoint(180, 300)

	tris := m.Triangles()
	edges := m.Edges()

	// Collect every distinct (min,max) side independently.
	want := map[[2]int]bool{}
	for _, tri := range tris {
		sides := [3][2]int{{tri[0], tri[1]}, {tri[1], tri[2]}, {tri[2], tri[0]}}
		for _, s := range sides {
			lo, hi := s[0], s[1]
			if lo > hi {
				lo, hi = hi, lo
			}
			want[[2]int{lo, hi}] = true
		}
	}

	if len(edges) != len(want) {
		t.Fatalf("Edges returned %d entries, want %d distinct sides", len(edges), len(want))
	}
	seen := map[[2]int]bool{}
	for _, e := range edges {
		if e[0] > e[1] {
			t.Errorf("edge %v is not canonicalized as (min,max)", e)
		}
		if seen[e] {
			t.Errorf("edge %v appears twice", e)
		}
		seen[e] = true
		if !want[e] {
			t.Errorf("edge %v is not a side of any triangle", e)
		}
	}
}

func TestTriangleCoordsResolveIndices(t *testing.T) {
	m := NewMesh(400, 400)
	m.AddPoint(200, 200)

	pts := m.EffectivePoints()
	tris := m.Triangles()
	coords := m.TriangleCoords()

	if len(tris) != len(coords) {
		t.Fatalf("index and coordinate triangle counts differ: %d vs %d", len(tris), len(coords))
	}
	for i, tri := range tris {
		for v := 0; v < 3; v++ {
			if coords[i][v] != pts[tri[v]] {
				t.Errorf("triangle %d vertex %d = %v, want %v", i, v, coords[i][v], pts[tri[v]])
			}
		}
	}
}
