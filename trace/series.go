package trace

import (
	"github.com/evholm/wavescope/logic"
	"github.com/evholm/wavescope/sigindex"
)

// series holds the transition history of one signal in columnar form: a
// sorted timestamp slice plus a value column matching the signal's kind.
//
// Vector kinds pack every value into a single contiguous payload at a fixed
// stride, so reading transition i slices payload[i*stride:(i+1)*stride]
// without touching any other value. Real, integer and string kinds use plain
// typed slices.
type series struct {
	times []uint64

	payload []byte // vector kinds, logic.BytesFor(width) bytes per transition
	stride  int

	reals []float64
	ints  []int64
	strs  []string

	width int
	kind  sigindex.SignalKind
}

func newSeries(width int, kind sigindex.SignalKind) *series {
	s := &series{width: width, kind: kind}
	if s.vectorKind() {
		s.stride = logic.BytesFor(width)
	}

	return s
}

func (s *series) vectorKind() bool {
	switch s.kind {
	case sigindex.KindWire, sigindex.KindReg, sigindex.KindEnum:
		return true
	default:
		return false
	}
}

func (s *series) len() int {
	return len(s.times)
}

func (s *series) lastTime() (uint64, bool) {
	if len(s.times) == 0 {
		return 0, false
	}

	return s.times[len(s.times)-1], true
}

// value returns the stored value at transition index i. Vector values are
// zero-copy views into the payload.
func (s *series) value(i int) logic.Value {
	switch s.kind {
	case sigindex.KindReal:
		return logic.RealValue(s.reals[i])
	case sigindex.KindInteger:
		return logic.IntValue(s.ints[i])
	case sigindex.KindString:
		return logic.StringValue(s.strs[i])
	default:
		return logic.VectorValue(logic.View(s.width, s.payload[i*s.stride:]))
	}
}

// append adds a transition at the end. The caller has already validated
// ordering and width; equal timestamps overwrite the previous value in
// place (last write wins).
func (s *series) append(ts uint64, v logic.Value) {
	if n := len(s.times); n > 0 && s.times[n-1] == ts {
		s.overwrite(n-1, v)

		return
	}
	s.times = append(s.times, ts)

	switch s.kind {
	case sigindex.KindReal:
		r, _ := v.Real()
		s.reals = append(s.reals, r)
	case sigindex.KindInteger:
		n, _ := v.Int()
		s.ints = append(s.ints, n)
	case sigindex.KindString:
		str, _ := v.Str()
		s.strs = append(s.strs, str)
	default:
		vec, _ := v.Vector()
		s.payload = append(s.payload, vec.Bytes()[:s.stride]...)
	}
}

func (s *series) overwrite(i int, v logic.Value) {
	switch s.kind {
	case sigindex.KindReal:
		s.reals[i], _ = v.Real()
	case sigindex.KindInteger:
		s.ints[i], _ = v.Int()
	case sigindex.KindString:
		s.strs[i], _ = v.Str()
	default:
		vec, _ := v.Vector()
		copy(s.payload[i*s.stride:(i+1)*s.stride], vec.Bytes()[:s.stride])
	}
}
