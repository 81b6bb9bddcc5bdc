package viewer

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testFrames(n int) []string {
	frames := make([]string, n)
	for i := range frames {
		frames[i] = "frame-" + string(rune('a'+i)) + ".jpg"
	}
	return frames
}

func newTestViewer(t *testing.T, n int, hotspots []Hotspot) *Viewer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Debug = true
	v, err := New(cfg, testFrames(n), hotspots, zaptest.NewLogger(t))
	require.NoError(t, err)
	return v
}

// loadAll resolves every frame of the current sequence.
func loadAll(t *testing.T, v *Viewer) {
	t.Helper()
	seq := v.Sequence()
	for i := range seq.Frames {
		require.True(t, v.ReportFrame(seq.ID, i, nil, nil))
	}
	require.True(t, v.Ready())
}

func newRotatingViewer(t *testing.T, n int, hotspots []Hotspot) *Viewer {
	t.Helper()
	v := newTestViewer(t, n, hotspots)
	loadAll(t, v)
	require.True(t, v.Activate())
	return v
}

func TestNew(t *testing.T) {
	t.Run("starts static on frame zero with the gate closed", func(t *testing.T) {
		v := newTestViewer(t, 10, nil)
		s := v.State()
		assert.Equal(t, ModeStatic, s.Mode)
		assert.Equal(t, 0, s.Frame)
		assert.Equal(t, 10, s.FrameCount)
		assert.False(t, s.Ready)
		assert.False(t, s.Dragging)
		assert.True(t, s.ShowHotspots)
		assert.NotEmpty(t, s.Generation)
		assert.Equal(t, 10, s.Preload.Pending)
	})

	t.Run("fails fast on an empty sequence", func(t *testing.T) {
		_, err := New(DefaultConfig(), nil, nil, nil)
		assert.ErrorIs(t, err, ErrEmptySequence)
	})

	t.Run("fails fast on a hotspot outside the sequence", func(t *testing.T) {
		_, err := New(DefaultConfig(), testFrames(3), []Hotspot{{ID: "x", Frame: 3}}, nil)
		assert.ErrorIs(t, err, ErrHotspotOutOfRange)
	})

	t.Run("copies the caller's frames", func(t *testing.T) {
		frames := testFrames(2)
		v, err := New(DefaultConfig(), frames, nil, nil)
		require.NoError(t, err)
		frames[0] = "mutated"
		assert.Equal(t, "frame-a.jpg", v.Sequence().Frames[0])
	})
}

func TestPreloadGate(t *testing.T) {
	t.Run("stays closed while any frame is pending", func(t *testing.T) {
		v := newTestViewer(t, 4, nil)
		seq := v.Sequence()
		v.ReportFrame(seq.ID, 2, nil, nil)
		v.ReportFrame(seq.ID, 0, nil, errors.New("404"))
		v.ReportFrame(seq.ID, 3, nil, nil)
		assert.False(t, v.Ready())

		v.ReportFrame(seq.ID, 1, nil, errors.New("decode"))
		assert.True(t, v.Ready())
		assert.Equal(t, 2, v.State().Preload.Failed)
	})

	t.Run("counts each frame once", func(t *testing.T) {
		v := newTestViewer(t, 2, nil)
		seq := v.Sequence()
		assert.True(t, v.ReportFrame(seq.ID, 0, nil, nil))
		assert.False(t, v.ReportFrame(seq.ID, 0, nil, nil))
		assert.False(t, v.ReportFrame(seq.ID, 0, nil, errors.New("late failure")))
		assert.False(t, v.Ready())
	})

	t.Run("ignores results from a replaced sequence", func(t *testing.T) {
		v := newTestViewer(t, 2, nil)
		old := v.Sequence()
		require.NoError(t, v.SetFrames(testFrames(2), nil))

		for i := range old.Frames {
			assert.False(t, v.ReportFrame(old.ID, i, nil, nil))
		}
		assert.False(t, v.Ready())
		assert.NotEqual(t, old.ID, v.Sequence().ID)
	})

	t.Run("resolves under concurrent reports in any order", func(t *testing.T) {
		v := newTestViewer(t, 50, nil)
		seq := v.Sequence()
		var wg sync.WaitGroup
		for i := len(seq.Frames) - 1; i >= 0; i-- {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var err error
				if i%3 == 0 {
					err = errors.New("boom")
				}
				v.ReportFrame(seq.ID, i, nil, err)
			}()
		}
		wg.Wait()
		assert.True(t, v.Ready())
	})
}

func TestActivate(t *testing.T) {
	t.Run("is a no-op before preload resolves", func(t *testing.T) {
		v := newTestViewer(t, 10, nil)
		assert.False(t, v.Activate())
		assert.Equal(t, ModeStatic, v.Mode())
		assert.False(t, v.State().CanActivate())
	})

	t.Run("switches to rotating once loaded", func(t *testing.T) {
		v := newTestViewer(t, 10, nil)
		loadAll(t, v)
		assert.True(t, v.State().CanActivate())
		assert.True(t, v.Activate())
		assert.Equal(t, ModeRotating, v.Mode())
		assert.False(t, v.Activate(), "activating twice changes nothing")
	})

	t.Run("seeds rotation from the displayed frame", func(t *testing.T) {
		v := newRotatingViewer(t, 10, nil)
		require.True(t, v.PointerDown(SourceMouse, 0, 0))
		require.True(t, v.PointerMove(110, 0))
		require.True(t, v.PointerUp())
		require.Equal(t, 3, v.Frame())

		// Leave rotating without touching the frame, then re-activate.
		v.mu.Lock()
		v.mode = ModeStatic
		v.mu.Unlock()

		require.True(t, v.Activate())
		assert.Equal(t, 3, v.Frame())
		assert.Equal(t, 3, FrameForRotation(v.Rotation(), 10))
		assert.InDelta(t, 108.0, v.Rotation(), 1e-9)
	})
}

func TestReset(t *testing.T) {
	t.Run("always returns to the initial view", func(t *testing.T) {
		v := newRotatingViewer(t, 10, nil)
		v.PointerDown(SourceTouch, 5, 5)
		v.PointerMove(200, 7)
		require.True(t, v.Dragging())

		v.Reset()
		s := v.State()
		assert.Equal(t, ModeStatic, s.Mode)
		assert.Equal(t, 0, s.Frame)
		assert.Equal(t, 0.0, s.Rotation)
		assert.False(t, s.Dragging)
		assert.True(t, s.Ready, "reset keeps the preload gate")
	})

	t.Run("is safe from the static state", func(t *testing.T) {
		v := newTestViewer(t, 3, nil)
		v.Reset()
		assert.Equal(t, ModeStatic, v.Mode())
		assert.Equal(t, 0, v.Frame())
	})
}

func TestDragTracking(t *testing.T) {
	t.Run("ignores a drag in static mode", func(t *testing.T) {
		v := newTestViewer(t, 10, nil)
		loadAll(t, v)
		assert.False(t, v.PointerDown(SourceMouse, 0, 0))
		assert.False(t, v.PointerMove(100, 0))
		assert.Equal(t, 0, v.Frame())
		assert.Equal(t, 0.0, v.Rotation())
	})

	t.Run("ignores a move without a start", func(t *testing.T) {
		v := newRotatingViewer(t, 10, nil)
		before := v.State()
		assert.False(t, v.PointerMove(500, 20))
		assert.Empty(t, cmp.Diff(before, v.State()))
	})

	t.Run("accumulates running deltas rather than distance from the origin", func(t *testing.T) {
		v := newRotatingViewer(t, 10, nil)
		v.PointerDown(SourceMouse, 100, 0)
		v.PointerMove(110, 0)
		v.PointerMove(130, 0)
		v.PointerMove(140, 0)
		assert.InDelta(t, 40.0, v.Rotation(), 1e-9)
		assert.Equal(t, 1, v.Frame())
	})

	t.Run("dragging left wraps to the last frames", func(t *testing.T) {
		v := newRotatingViewer(t, 10, nil)
		v.PointerDown(SourceMouse, 0, 0)
		v.PointerMove(-1, 0)
		assert.Equal(t, 9, v.Frame())
		v.PointerMove(-91, 0)
		assert.Equal(t, 7, v.Frame())
	})

	t.Run("vertical movement does not rotate", func(t *testing.T) {
		v := newRotatingViewer(t, 10, nil)
		v.PointerDown(SourceTouch, 10, 10)
		assert.False(t, v.PointerMove(10, 300))
		assert.Equal(t, 0.0, v.Rotation())
	})

	t.Run("release and leave end the session", func(t *testing.T) {
		v := newRotatingViewer(t, 10, nil)
		v.PointerDown(SourceMouse, 0, 0)
		assert.True(t, v.PointerUp())
		assert.False(t, v.PointerMove(100, 0))

		v.PointerDown(SourceMouse, 0, 0)
		assert.True(t, v.PointerLeave())
		assert.False(t, v.PointerLeave())
		assert.False(t, v.PointerMove(100, 0))
		assert.Equal(t, 0.0, v.Rotation())
	})

	t.Run("dispatches by phase", func(t *testing.T) {
		v := newRotatingViewer(t, 4, nil)
		events := []PointerEvent{
			{Phase: PointerStart, Source: SourceTouch, X: 0},
			{Phase: PointerMove, Source: SourceTouch, X: 95},
			{Phase: PointerMove, Source: SourceTouch, X: 185},
			{Phase: PointerEnd, Source: SourceTouch},
		}
		for _, ev := range events {
			v.HandlePointer(ev)
		}
		assert.Equal(t, 2, v.Frame())
		assert.False(t, v.Dragging())
	})

	t.Run("honours a custom sensitivity", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Sensitivity = 2
		v, err := New(cfg, testFrames(4), nil, nil)
		require.NoError(t, err)
		loadAll(t, v)
		require.True(t, v.Activate())

		v.PointerDown(SourceMouse, 0, 0)
		v.PointerMove(45, 0)
		assert.InDelta(t, 90.0, v.Rotation(), 1e-9)
		assert.Equal(t, 1, v.Frame())
	})
}

func TestViewerHotspots(t *testing.T) {
	hotspots := []Hotspot{
		{ID: "front-damage", X: 47.1, Y: 53.1, Frame: 0, Title: "Minor Scratch"},
		{ID: "door-dent", X: 79.9, Y: 48.2, Frame: 0, Title: "Door Dent"},
		{ID: "rear-damage", X: 94.9, Y: 59.4, Frame: 5, Title: "Rear Panel"},
	}

	t.Run("shows frame zero hotspots while static", func(t *testing.T) {
		v := newTestViewer(t, 10, hotspots)
		assert.Equal(t, []string{"front-damage", "door-dent"}, ids(v.State().Hotspots))
	})

	t.Run("follows the frame while rotating", func(t *testing.T) {
		v := newRotatingViewer(t, 10, hotspots)
		v.PointerDown(SourceMouse, 0, 0)
		v.PointerMove(180, 0)
		require.Equal(t, 5, v.Frame())
		assert.Equal(t, []string{"rear-damage"}, ids(v.State().Hotspots))

		v.PointerMove(180+4*36, 0)
		require.Equal(t, 9, v.Frame())
		assert.Equal(t, []string{"front-damage", "door-dent"}, ids(v.State().Hotspots))
	})

	t.Run("toggle hides the overlay but not the filter", func(t *testing.T) {
		v := newTestViewer(t, 10, hotspots)
		assert.False(t, v.ToggleHotspots())
		s := v.State()
		assert.False(t, s.ShowHotspots)
		assert.Empty(t, s.Hotspots)
		assert.Len(t, v.VisibleHotspots(), 2)

		v.SetShowHotspots(true)
		assert.Len(t, v.State().Hotspots, 2)
	})
}

func TestSetFrames(t *testing.T) {
	t.Run("resets view and gate for the new sequence", func(t *testing.T) {
		v := newRotatingViewer(t, 10, nil)
		v.PointerDown(SourceMouse, 0, 0)
		v.PointerMove(300, 0)

		require.NoError(t, v.SetFrames(testFrames(4), []Hotspot{{ID: "h", Frame: 3}}))
		s := v.State()
		assert.Equal(t, ModeStatic, s.Mode)
		assert.Equal(t, 0, s.Frame)
		assert.Equal(t, 4, s.FrameCount)
		assert.False(t, s.Ready)
		assert.False(t, s.Dragging)
	})

	t.Run("leaves the viewer untouched on invalid input", func(t *testing.T) {
		v := newRotatingViewer(t, 10, nil)
		before := v.Sequence()
		err := v.SetFrames(testFrames(2), []Hotspot{{ID: "h", Frame: 5}})
		assert.ErrorIs(t, err, ErrHotspotOutOfRange)
		assert.Equal(t, before.ID, v.Sequence().ID)
		assert.Equal(t, ModeRotating, v.Mode())
	})
}

func TestStateIndicator(t *testing.T) {
	v := newRotatingViewer(t, 10, nil)
	assert.Equal(t, "1 / 10", v.State().Indicator())
	v.PointerDown(SourceMouse, 0, 0)
	v.PointerMove(-1, 0)
	assert.Equal(t, "10 / 10", v.State().Indicator())
	assert.Equal(t, "frame-j.jpg", v.State().Locator)
}
