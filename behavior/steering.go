package behavior

import (
	"math"

	"github.com/Jonasi-Deetens/ecodungeon/components"
	"github.com/Jonasi-Deetens/ecodungeon/config"
)

// worldParams is the snapshot of world geometry a strategy steers
// against. Captured at construction so a live creature is unaffected by
// config reloads.
type worldParams struct {
	min, max float32
	margin   float32
	centerX  float32
	centerY  float32
}

func worldFromConfig(c *config.Config) worldParams {
	return worldParams{
		min:     c.Derived.WorldMin,
		max:     c.Derived.WorldMax,
		margin:  c.Derived.Margin,
		centerX: c.Derived.CenterX,
		centerY: c.Derived.CenterY,
	}
}

// nearBoundary reports whether pos is within the repulsion margin of any
// world edge (or outside the bounds entirely).
func (w worldParams) nearBoundary(pos components.Position) bool {
	return pos.X < w.min+w.margin || pos.X > w.max-w.margin ||
		pos.Y < w.min+w.margin || pos.Y > w.max-w.margin
}

// wander holds the periodic random-walk state shared by the mobile
// archetypes. The direction is re-picked when the interval elapses or
// the creature drifts near a world edge, in which case it points back
// toward the world center instead of a random heading.
type wander struct {
	world    worldParams
	dirs     DirectionSource
	interval float32

	dirX, dirY float32
	timer      float32
}

func newWander(world worldParams, dirs DirectionSource, interval float32) wander {
	w := wander{world: world, dirs: dirs, interval: interval}
	w.dirX, w.dirY = 1, 0
	x, y := dirs.Direction()
	if d := vecLen(x, y); d > 0 {
		w.dirX, w.dirY = x/d, y/d
	}
	return w
}

func (w *wander) advance(dt float32) {
	w.timer += dt
}

// maybeRepick re-selects the wander direction when due. A zero-length
// random candidate leaves the previous direction in place rather than
// producing NaN.
func (w *wander) maybeRepick(pos components.Position) {
	near := w.world.nearBoundary(pos)
	if !near && w.timer < w.interval {
		return
	}
	if near {
		dx := w.world.centerX - pos.X
		dy := w.world.centerY - pos.Y
		if d := vecLen(dx, dy); d > 0 {
			w.dirX, w.dirY = dx/d, dy/d
		}
	} else {
		x, y := w.dirs.Direction()
		if d := vecLen(x, y); d > 0 {
			w.dirX, w.dirY = x/d, y/d
		}
	}
	w.timer = 0
}

// step returns pos advanced along the wander direction.
func (w *wander) step(pos components.Position, speed, dt float32) components.Position {
	return components.Position{
		X: pos.X + w.dirX*speed*dt,
		Y: pos.Y + w.dirY*speed*dt,
	}
}

func vecLen(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}

// moveToward returns pos advanced toward target at the given speed.
// A zero-distance target returns pos unchanged.
func moveToward(pos, target components.Position, speed, dt float32) components.Position {
	dx := target.X - pos.X
	dy := target.Y - pos.Y
	d := vecLen(dx, dy)
	if d == 0 {
		return pos
	}
	return components.Position{
		X: pos.X + dx/d*speed*dt,
		Y: pos.Y + dy/d*speed*dt,
	}
}
