package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rigsim/frame"
)

func TestRecorderCopiesLines(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.InitScene(frame.DefaultScene()))
	require.NoError(t, r.CreateMesh(7, beamDef()))

	lines := beamLines(0)
	require.NoError(t, r.UpdateMesh(7, lines, false))
	require.NoError(t, r.RenderFrame())
	lines[0].A[0] = 99

	last, ok := r.Last()
	require.True(t, ok)
	require.Len(t, last.Meshes, 1)
	assert.Equal(t, float32(-2), last.Meshes[0].Lines[0].A.X())
	assert.Equal(t, "beam", last.Meshes[0].Name)
}

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.CreateMesh(1, beamDef()))
	assert.Error(t, r.CreateMesh(1, beamDef()))
	r.DestroyMesh(1)
	r.DestroyMesh(1)

	assert.Equal(t, 1, r.Created)
	assert.Equal(t, 1, r.Destroyed)
	assert.Empty(t, r.MeshIDs())
}

func TestRecorderFaultAndKeep(t *testing.T) {
	r := NewRecorder()
	r.Keep = 2
	r.Fault = func(i int) bool { return i == 3 }

	for i := 0; i < 3; i++ {
		require.NoError(t, r.RenderFrame())
	}
	assert.ErrorIs(t, r.RenderFrame(), ErrInjectedFault)

	frames := r.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, 1, frames[0].Index)
	assert.Equal(t, 2, frames[1].Index)
}
