package warpcam

// MouseButton identifies a drag button for injected input.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
)

// inputQueue holds synthetic input frames. Each queued snapshot is consumed
// by one frame in place of polled input. Button and cursor state carry over
// between queued events so a press followed by moves reads as a drag.
type inputQueue struct {
	events []InputSnapshot
	cursor Vec2
	left   bool
	right  bool
}

func (q *inputQueue) snapshot() InputSnapshot {
	return InputSnapshot{Cursor: q.cursor, Left: q.left, Right: q.right}
}

func (q *inputQueue) push(in InputSnapshot) {
	q.events = append(q.events, in)
}

func (q *inputQueue) setButton(b MouseButton, down bool) {
	switch b {
	case MouseButtonRight:
		q.right = down
	default:
		q.left = down
	}
}

// pop removes the oldest queued snapshot.
func (q *inputQueue) pop() (InputSnapshot, bool) {
	if len(q.events) == 0 {
		return InputSnapshot{}, false
	}
	in := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return in, true
}

func (q *inputQueue) pending() int { return len(q.events) }

// InjectPress queues a button press at the given screen coordinates.
// The event is consumed on the next frame's Update.
func (a *App) InjectPress(x, y float64, b MouseButton) {
	a.inject.cursor = Vec2{x, y}
	a.inject.setButton(b, true)
	a.inject.push(a.inject.snapshot())
}

// InjectMove queues a cursor move with the current buttons held.
func (a *App) InjectMove(x, y float64) {
	a.inject.cursor = Vec2{x, y}
	a.inject.push(a.inject.snapshot())
}

// InjectRelease queues a button release at the given screen coordinates.
func (a *App) InjectRelease(x, y float64, b MouseButton) {
	a.inject.cursor = Vec2{x, y}
	a.inject.setButton(b, false)
	a.inject.push(a.inject.snapshot())
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2
// interpolated moves and a release at (toX, toY). Minimum frames is 2.
func (a *App) InjectDrag(b MouseButton, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	a.InjectPress(fromX, fromY, b)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		a.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	a.InjectRelease(toX, toY, b)
}

// InjectScroll queues one frame carrying ticks of wheel movement.
func (a *App) InjectScroll(ticks float64) {
	in := a.inject.snapshot()
	in.ScrollTicks = ticks
	a.inject.push(in)
}

// InjectKeys queues one frame with the given control key edges.
func (a *App) InjectKeys(keys ControlKeys) {
	in := a.inject.snapshot()
	in.Keys = keys
	a.inject.push(in)
}

// InjectReset queues one frame with the reset key pressed.
func (a *App) InjectReset() {
	in := a.inject.snapshot()
	in.Reset = true
	a.inject.push(in)
}

// InjectWait queues frames idle frames that keep the current button state.
func (a *App) InjectWait(frames int) {
	for i := 0; i < frames; i++ {
		a.inject.push(a.inject.snapshot())
	}
}

// PendingInput returns the number of injected frames not yet consumed.
func (a *App) PendingInput() int {
	return a.inject.pending()
}
