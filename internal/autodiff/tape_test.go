package autodiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/tensor"
)

func leafFrom(t *testing.T, data []float32, shape tensor.Shape) *Tensor[float32, *cpu.CPUBackend] {
	t.Helper()
	x, err := FromSlice(data, shape, cpu.New())
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return x
}

func tapeIDs(tape []*Node) []uint64 {
	ids := make([]uint64, len(tape))
	for i, n := range tape {
		ids[i] = n.id
	}
	return ids
}

func TestBuildTape_Chain(t *testing.T) {
	x := leafFrom(t, []float32{2}, tensor.Shape{1}).RequireGrad()
	a := x.MulScalar(2)
	y := a.AddScalar(1)

	tape := buildTape(y.node)

	want := []uint64{x.ID(), a.ID(), y.ID()}
	if diff := cmp.Diff(want, tapeIDs(tape)); diff != "" {
		t.Errorf("tape order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTape_Diamond(t *testing.T) {
	x := leafFrom(t, []float32{2}, tensor.Shape{1}).RequireGrad()
	a := x.MulScalar(2)
	b := x.MulScalar(3)
	y := a.Add(b)

	tape := buildTape(y.node)

	want := []uint64{x.ID(), a.ID(), b.ID(), y.ID()}
	if diff := cmp.Diff(want, tapeIDs(tape)); diff != "" {
		t.Errorf("tape order mismatch (-want +got):\n%s", diff)
	}
}

// A node consumed both directly and through a deeper path must still be
// emitted before all of its consumers.
func TestBuildTape_SharedParentAcrossDepths(t *testing.T) {
	x := leafFrom(t, []float32{2}, tensor.Shape{1}).RequireGrad()
	a := x.MulScalar(2)
	y := x.Add(a) // x feeds y directly and through a

	tape := buildTape(y.node)

	pos := make(map[uint64]int, len(tape))
	for i, n := range tape {
		pos[n.id] = i
	}
	for _, n := range tape {
		for _, p := range n.parents {
			if pos[p.id] >= pos[n.id] {
				t.Errorf("parent %d emitted at %d, after consumer %d at %d",
					p.id, pos[p.id], n.id, pos[n.id])
			}
		}
	}
	if tape[len(tape)-1].id != y.ID() {
		t.Errorf("terminal not last: got %d, want %d", tape[len(tape)-1].id, y.ID())
	}
}

func TestBuildTape_PrunesUntrackedSubgraph(t *testing.T) {
	x := leafFrom(t, []float32{2}, tensor.Shape{1}).RequireGrad()
	c := leafFrom(t, []float32{5}, tensor.Shape{1}) // no grad
	d := c.MulScalar(4)                             // untracked subgraph
	y := x.Mul(d)

	tape := buildTape(y.node)

	for _, n := range tape {
		if n.id == c.ID() || n.id == d.ID() {
			t.Errorf("untracked node %d present in tape", n.id)
		}
	}

	want := []uint64{x.ID(), y.ID()}
	if diff := cmp.Diff(want, tapeIDs(tape)); diff != "" {
		t.Errorf("tape order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTape_NoGradTerminal(t *testing.T) {
	x := leafFrom(t, []float32{2}, tensor.Shape{1})
	y := x.MulScalar(2)

	if tape := buildTape(y.node); len(tape) != 0 {
		t.Errorf("tape for untracked terminal has %d nodes, want 0", len(tape))
	}
}

// Operations between untracked tensors must not allocate descriptors or
// link parents.
func TestRecord_NoGradFastPath(t *testing.T) {
	x := leafFrom(t, []float32{1, 2}, tensor.Shape{2})
	y := leafFrom(t, []float32{3, 4}, tensor.Shape{2})

	z := x.Add(y)
	if !z.node.IsLeaf() {
		t.Error("untracked result should be recorded as a leaf")
	}
	if z.node.requiresGrad {
		t.Error("untracked result should not require grad")
	}
	if len(z.node.parents) != 0 {
		t.Errorf("untracked result has %d parents, want 0", len(z.node.parents))
	}
}

func TestNodeIDs_IncreaseWithConstruction(t *testing.T) {
	x := leafFrom(t, []float32{1}, tensor.Shape{1}).RequireGrad()
	a := x.MulScalar(2)
	b := a.AddScalar(1)

	if !(x.ID() < a.ID() && a.ID() < b.ID()) {
		t.Errorf("ids not increasing: %d, %d, %d", x.ID(), a.ID(), b.ID())
	}
}

func TestRequireGrad_Propagation(t *testing.T) {
	x := leafFrom(t, []float32{1}, tensor.Shape{1}).RequireGrad()
	y := leafFrom(t, []float32{2}, tensor.Shape{1})

	z := x.Add(y)
	if !z.RequiresGrad() {
		t.Error("result of tracked input should require grad")
	}
	if z.node.IsLeaf() {
		t.Error("tracked result should carry an operation descriptor")
	}
}

func TestRequireGrad_OnInteriorPanics(t *testing.T) {
	x := leafFrom(t, []float32{1}, tensor.Shape{1}).RequireGrad()
	y := x.MulScalar(2)

	defer func() {
		if recover() == nil {
			t.Error("RequireGrad on interior node should panic")
		}
	}()
	y.RequireGrad()
}
