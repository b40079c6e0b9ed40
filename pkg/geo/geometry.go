package geo

type BoundingBox struct {
	min, max []float64 // x, y
}

func (bb *BoundingBox) GetMin() []float64 {
	return bb.min
}

func (bb *BoundingBox) GetMax() []float64 {
	return bb.max
}

// NewBoundingBox needs at least one point.
func NewBoundingBox(xs, ys []float64) BoundingBox {
	min, max := []float64{xs[0], ys[0]}, []float64{xs[0], ys[0]}
	for i := 1; i < len(xs); i++ {
		if xs[i] < min[0] {
			min[0] = xs[i]
		}
		if xs[i] > max[0] {
			max[0] = xs[i]
		}
		if ys[i] < min[1] {
			min[1] = ys[i]
		}
		if ys[i] > max[1] {
			max[1] = ys[i]
		}
	}
	return BoundingBox{
		min: min,
		max: max,
	}
}

func (bb *BoundingBox) Contains(x, y float64) bool {
	if x < bb.min[0] || x > bb.max[0] {
		return false
	}
	if y < bb.min[1] || y > bb.max[1] {
		return false
	}
	return true
}

func (bb *BoundingBox) ContainsBox(other BoundingBox) bool {
	return bb.Contains(other.min[0], other.min[1]) && bb.Contains(other.max[0], other.max[1])
}

var lonLatBound = BoundingBox{
	min: []float64{-180, -90},
	max: []float64{180, 90},
}

// IsLonLat reports whether every point of bb is a valid longitude/latitude pair.
// unit-sphere distances are meaningless for anything else.
func IsLonLat(bb BoundingBox) bool {
	return lonLatBound.ContainsBox(bb)
}
