package session

// Viewport is the visible time range, in trace time units. Left and Right
// are floats so sub-tick zoom levels render smoothly; conversion to query
// times truncates.
type Viewport struct {
	Left  float64
	Right float64
}

// Span returns the visible duration.
func (v Viewport) Span() float64 {
	return v.Right - v.Left
}

// ToTime maps a horizontal pixel position to a trace time.
func (v Viewport) ToTime(x, viewWidth float64) float64 {
	return v.Left + v.Span()/viewWidth*x
}

// FromTime maps a trace time to a horizontal pixel position.
func (v Viewport) FromTime(t, viewWidth float64) float64 {
	return (t - v.Left) / v.Span() * viewWidth
}

// Zoomed returns the viewport scaled by factor about a fixed point (a
// timestamp, typically the mouse position). factor < 1 zooms in.
func (v Viewport) Zoomed(about, factor float64) Viewport {
	return Viewport{
		Left:  about - (about-v.Left)*factor,
		Right: about + (v.Right-about)*factor,
	}
}

// Panned returns the viewport shifted by delta time units.
func (v Viewport) Panned(delta float64) Viewport {
	return Viewport{Left: v.Left + delta, Right: v.Right + delta}
}

// ClipTo constrains the viewport against the valid data range: the zoom is
// widened until at least 10% of the screen shows data, then the viewport is
// shifted so no more than 90% of it hangs off either end. A viewport already
// centered stays centered; one parked at an edge stays at that edge.
func (v Viewport) ClipTo(valid Viewport) Viewport {
	const fillLimit = 0.1

	currRange := v.Span()
	validRange := valid.Span()

	zoomFixed := v
	if corrZoom := fillLimit / (validRange / currRange); corrZoom > 1.0 {
		zoomFixed = Viewport{Left: v.Left / corrZoom, Right: v.Right / corrZoom}
	}

	const overlapLimit = 0.1
	minOverlap := min(currRange, validRange) * overlapLimit

	if corrRight := (valid.Left + minOverlap) - zoomFixed.Right; corrRight > 0 {
		return zoomFixed.Panned(corrRight)
	}
	if corrLeft := (valid.Right - minOverlap) - zoomFixed.Left; corrLeft < 0 {
		return zoomFixed.Panned(corrLeft)
	}

	return zoomFixed
}
