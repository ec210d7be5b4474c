package widget

// Geometry floors and defaults, in pixels. Widgets persisted without an
// explicit size render at the defaults; a resize can never shrink a card
// below the floors.
const (
	MinWidth      = 200.0
	MinHeight     = 150.0
	DefaultWidth  = 400.0
	DefaultHeight = 360.0
)

// Handle identifies which edge of a card a resize drag grabbed. A corner
// drag resizes both axes.
type Handle string

const (
	HandleRight  Handle = "right"
	HandleBottom Handle = "bottom"
	HandleCorner Handle = "corner"
)

func (h Handle) horizontal() bool { return h == HandleRight || h == HandleCorner }
func (h Handle) vertical() bool   { return h == HandleBottom || h == HandleCorner }

// EffectiveSize resolves a widget's render size, substituting defaults for
// missing or non-positive dimensions. Section titles have no geometry and
// report zero.
func EffectiveSize(w *Widget) (width, height float64) {
	if w.IsSectionTitle() {
		return 0, 0
	}
	width, height = w.Width, w.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

// ClampSize forces width and height onto the allowed range.
func ClampSize(width, height float64) (float64, float64) {
	if width < MinWidth {
		width = MinWidth
	}
	if height < MinHeight {
		height = MinHeight
	}
	return width, height
}

// ResizeSession tracks one pointer drag on a resize handle. The start size is
// captured once at BeginResize; each Step applies the accumulated pointer
// delta to that origin, so intermediate ticks never compound.
type ResizeSession struct {
	handle      Handle
	startWidth  float64
	startHeight float64
	originX     float64
	originY     float64
}

// BeginResize opens a drag session on w at the given pointer position.
func BeginResize(w *Widget, h Handle, pointerX, pointerY float64) *ResizeSession {
	width, height := EffectiveSize(w)
	return &ResizeSession{
		handle:      h,
		startWidth:  width,
		startHeight: height,
		originX:     pointerX,
		originY:     pointerY,
	}
}

// Step computes the card size for the current pointer position. Axes the
// handle does not control keep their start value; controlled axes are clamped
// to the floors. Safe to call on every pointer tick.
func (s *ResizeSession) Step(pointerX, pointerY float64) (width, height float64) {
	width, height = s.startWidth, s.startHeight
	if s.handle.horizontal() {
		width = s.startWidth + (pointerX - s.originX)
	}
	if s.handle.vertical() {
		height = s.startHeight + (pointerY - s.originY)
	}
	return ClampSize(width, height)
}

// Apply writes the session's current size onto w.
func (s *ResizeSession) Apply(w *Widget, pointerX, pointerY float64) {
	w.Width, w.Height = s.Step(pointerX, pointerY)
}

// DropBefore decides on which side of a hovered card a dragged widget lands:
// above the card's vertical midpoint inserts before it, below inserts after.
func DropBefore(pointerY, cardTop, cardHeight float64) bool {
	return pointerY < cardTop+cardHeight/2
}

// InsertIndex translates a drop over the card at targetIndex into the slice
// index the dragged widget should occupy.
func InsertIndex(targetIndex int, before bool) int {
	if before {
		return targetIndex
	}
	return targetIndex + 1
}
