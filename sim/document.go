// Package sim is a headless host for the motion engine: a scrollable
// document, positioned elements that record the styles written to them, and
// scripted scroll playback against a manual frame clock.
package sim

import (
	"github.com/delaneyj/scrollsignals/behavior"
	"github.com/delaneyj/scrollsignals/interp"
)

type listener[T any] struct {
	id int
	fn func(T)
}

type listeners[T any] struct {
	next int
	list []listener[T]
}

func (l *listeners[T]) add(fn func(T)) (remove func()) {
	l.next++
	id := l.next
	l.list = append(l.list, listener[T]{id: id, fn: fn})
	return func() {
		kept := make([]listener[T], 0, len(l.list))
		for _, x := range l.list {
			if x.id != id {
				kept = append(kept, x)
			}
		}
		l.list = kept
	}
}

func (l *listeners[T]) fire(v T) {
	for _, x := range l.list {
		x.fn(v)
	}
}

// Document implements scroll.Source.
type Document struct {
	contentHeight  float64
	viewportWidth  float64
	viewportHeight float64
	offset         float64
	events         int
	scroll         listeners[float64]
}

func NewDocument(contentHeight, viewportWidth, viewportHeight float64) *Document {
	return &Document{
		contentHeight:  contentHeight,
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}
}

func (d *Document) ScrollOffset() float64 {
	return d.offset
}

func (d *Document) MaxScrollable() float64 {
	return d.contentHeight - d.viewportHeight
}

func (d *Document) ViewportSize() (width, height float64) {
	return d.viewportWidth, d.viewportHeight
}

func (d *Document) AddScrollListener(fn func(offset float64)) (remove func()) {
	return d.scroll.add(fn)
}

func (d *Document) ListenerCount() int {
	return len(d.scroll.list)
}

// Events counts scroll events fired.
func (d *Document) Events() int {
	return d.events
}

// ScrollTo moves the viewport like a browser would, clamped to the scrollable
// range, and fires a scroll event.
func (d *Document) ScrollTo(offset float64) {
	d.offset = interp.Clamp(offset, 0, max(0, d.MaxScrollable()))
	d.events++
	d.scroll.fire(d.offset)
}

// Resize changes content and viewport geometry without firing an event.
func (d *Document) Resize(contentHeight, viewportWidth, viewportHeight float64) {
	d.contentHeight = contentHeight
	d.viewportWidth = viewportWidth
	d.viewportHeight = viewportHeight
}

// Element implements behavior.Element and behavior.PointerSource.
type Element struct {
	Name    string
	bounds  behavior.Rect
	styles  []behavior.Style
	pointer listeners[behavior.PointerEvent]
}

func NewElement(name string, bounds behavior.Rect) *Element {
	return &Element{Name: name, bounds: bounds}
}

func (e *Element) Bounds() behavior.Rect {
	return e.bounds
}

func (e *Element) SetBounds(r behavior.Rect) {
	e.bounds = r
}

func (e *Element) Apply(s behavior.Style) {
	e.styles = append(e.styles, s)
}

// Last is the most recent style, or Identity if none was applied.
func (e *Element) Last() behavior.Style {
	if len(e.styles) == 0 {
		return behavior.Identity()
	}
	return e.styles[len(e.styles)-1]
}

func (e *Element) Styles() []behavior.Style {
	return e.styles
}

func (e *Element) AddPointerListener(fn func(behavior.PointerEvent)) (remove func()) {
	return e.pointer.add(fn)
}

func (e *Element) PointerListenerCount() int {
	return len(e.pointer.list)
}

func (e *Element) PointerMove(x, y float64) {
	e.pointer.fire(behavior.PointerEvent{Kind: behavior.PointerMove, X: x, Y: y})
}

func (e *Element) PointerLeave() {
	e.pointer.fire(behavior.PointerEvent{Kind: behavior.PointerLeave})
}
