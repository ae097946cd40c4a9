package lsystem

import (
	"testing"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translation(m math32.Matrix4) math32.Vector3 {
	return math32.Vec3(m[12], m[13], m[14])
}

func TestInterpretSingleBranch(t *testing.T) {
	out, err := Interpret("F", TreeTable(), 90)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len(Branch))
	assertVec(t, math32.Vec3(0, 0.6, 0), translation(out.Class(Branch)[0]))
	assert.Equal(t, 0, out.Len(Leaf))
}

func TestInterpretPushPopRestoresPosition(t *testing.T) {
	out, err := Interpret("F[F]F", TreeTable(), 90)
	require.NoError(t, err)
	b := out.Class(Branch)
	require.Len(t, b, 3)
	assertVec(t, math32.Vec3(0, 0.6, 0), translation(b[0]))
	assertVec(t, math32.Vec3(0, 1.08, 0), translation(b[1]))
	assertVec(t, math32.Vec3(0, 1.2, 0), translation(b[2]))

	// The bracketed branch is one level deeper and thinner.
	assert.InDelta(t, 0.2*0.8, b[1][0], tol)
	assert.InDelta(t, 0.2, b[2][0], tol)
}

func TestInterpretRotationUsesAngle(t *testing.T) {
	out, err := Interpret("+F", TreeTable(), 90)
	require.NoError(t, err)
	assertVec(t, math32.Vec3(0, 0, 0.6), translation(out.Class(Branch)[0]))

	out, err = Interpret("||F", TreeTable(), 90)
	require.NoError(t, err)
	assertVec(t, math32.Vec3(0, 0.6, 0), translation(out.Class(Branch)[0]))

	out, err = Interpret("|,F", TreeTable(), 90)
	require.NoError(t, err)
	// Half turn about Y flips the local X axis, so ',' swings toward +X.
	assertVec(t, math32.Vec3(0.6, 0, 0), translation(out.Class(Branch)[0]))
}

func TestInterpretSkipsUnboundSymbols(t *testing.T) {
	out, err := Interpret("FA!’FxL", TreeTable(), 90)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len(Branch))
	assert.Equal(t, 1, out.Len(Leaf))
	assert.Equal(t, []GeometryClass{Branch, Leaf}, out.Classes())
}

func TestInterpretUnderflow(t *testing.T) {
	_, err := Interpret("F]F", TreeTable(), 90)
	require.ErrorIs(t, err, ErrStackUnderflow)
	var ue *UnderflowError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 1, ue.Position)
	assert.Equal(t, ']', ue.Symbol)

	_, err = Interpret("[F]]", TreeTable(), 90)
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 3, ue.Position)
}

func TestInterpretUnmatchedPushIsFine(t *testing.T) {
	out, err := Interpret("F[F", TreeTable(), 90)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len(Branch))
}

func TestInterpretUnknownGeometry(t *testing.T) {
	table := NewDrawingTable(DrawingRule{'Z', Advance(GeometryClass("cloud"), Term{1, FalloffNone})})
	_, err := Interpret("Z", table, 90)
	assert.ErrorIs(t, err, ErrUnknownGeometry)
}

func TestInterpretExpandedTreeIsReproducible(t *testing.T) {
	run := func() *Transforms {
		g, err := treeExpander().ExpandGrammar("F", 3, randx.NewSysRand(9))
		require.NoError(t, err)
		out, err := Interpret(g, TreeTable(), 22.5)
		require.NoError(t, err)
		return out
	}
	a, b := run(), run()
	assert.Equal(t, a.Counts(), b.Counts())
	assert.Equal(t, a.Class(Branch), b.Class(Branch))
	assert.Equal(t, a.Class(Leaf), b.Class(Leaf))
	assert.Greater(t, a.Len(Leaf), 0)
}

func TestInterpretStartTurtle(t *testing.T) {
	start := NewTurtle()
	start.Position = math32.Vec3(1, 2, 3)
	in := &Interpreter{Table: TreeTable(), Angle: 90, Start: &start}
	out, err := in.Run("F")
	require.NoError(t, err)
	assertVec(t, math32.Vec3(1, 2.6, 3), translation(out.Class(Branch)[0]))
	assertVec(t, math32.Vec3(1, 2, 3), start.Position)
}

// halfWet is a sampler in texture space: everything left of x=0 is water
// and population grows toward +X.
type halfWet struct{}

func (halfWet) Water(x, _ float32) float64 {
	if x < 0 {
		return 1
	}
	return 0
}
func (halfWet) Elevation(_, _ float32) float64 { return 0 }
func (halfWet) Population(x, _ float32) float64 {
	if x < 0 {
		return 0
	}
	return float64(x)
}

type allWet struct{ halfWet }

func (allWet) Water(_, _ float32) float64 { return 1 }

func TestSteerAvoidsWater(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		twin := randx.NewSysRand(seed)
		dry := false
		for i := 0; i < 3; i++ {
			// A draw below 0.5 is a clockwise offset, probing toward +X.
			if twin.Float64() < 0.5 {
				dry = true
			}
		}

		in := &Interpreter{Table: HighwayTable(), Angle: 60, Terrain: halfWet{}, Rand: randx.NewSysRand(seed)}
		tu := NewTurtle()
		in.steer(&tu, Steer(3, 60, 0.1))
		up := tu.Up()
		assert.GreaterOrEqual(t, up.X, float32(-1e-6), "seed %d turned toward water", seed)
		if dry {
			assert.Greater(t, up.X, float32(0), "seed %d", seed)
		} else {
			assertVec(t, math32.Vec3(0, 1, 0), up)
		}
	}
}

func TestSteerAllWaterKeepsHeading(t *testing.T) {
	in := &Interpreter{Terrain: allWet{}, Rand: randx.NewSysRand(4)}
	tu := NewTurtle()
	in.steer(&tu, Steer(3, 60, 0.1))
	assertVec(t, math32.Vec3(0, 1, 0), tu.Up())
}

func TestSteerWithoutTerrainIsNoop(t *testing.T) {
	out, err := Interpret("~H~H", HighwayTable(), 60)
	require.NoError(t, err)
	b := out.Class(Highway)
	require.Len(t, b, 2)
	assertVec(t, math32.Vec3(0, 0.1, 0), translation(b[0]))
	assertVec(t, math32.Vec3(0, 0.2, 0), translation(b[1]))
}

func TestHighwayRoadsFallOff(t *testing.T) {
	out, err := Interpret("H[+R]R", HighwayTable(), 60)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len(Highway))
	r := out.Class(Road)
	require.Len(t, r, 2)
	// Column 0 is the scaled local X axis; the turn only rotates it.
	assert.InDelta(t, 0.03*0.8, math32.Vec3(r[0][0], r[0][1], r[0][2]).Length(), tol)
	assert.InDelta(t, 0.03, r[1][0], tol)
}

func TestInterpretExpandedFL(t *testing.T) {
	e := NewExpander(MustExpansionRule('F', Weighted{1.0, "FF"}))
	g, err := e.ExpandGrammar("FL", 1, randx.NewSysRand(1))
	require.NoError(t, err)
	require.Equal(t, "FFL", g)

	out, err := Interpret(g, TreeTable(), 90)
	require.NoError(t, err)
	assert.Equal(t, []GeometryClass{Branch, Leaf}, out.Classes())
	b := out.Class(Branch)
	require.Len(t, b, 2)
	assertVec(t, math32.Vec3(0, 0.6, 0), translation(b[0]))
	assertVec(t, math32.Vec3(0, 1.2, 0), translation(b[1]))
	l := out.Class(Leaf)
	require.Len(t, l, 1)
	// A leaf at depth 0 strides 3.0 + 1.2 past the last branch.
	assertVec(t, math32.Vec3(0, 5.4, 0), translation(l[0]))
}
