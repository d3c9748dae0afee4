package frustum

import "softraster/internal/mathutil"

// Edge is a segment in camera space. Clipping and projection rewrite it in
// place.
type Edge struct {
	From mathutil.Vec3
	To   mathutil.Vec3
}

// Frustum owns the clip distances and the projection derived from them.
type Frustum struct {
	Near       float64
	Far        float64
	Kind       Kind
	Projection Projection
}

// New returns a frustum whose projection is already computed for the given
// focal length and aspect ratio.
func New(kind Kind, near, far, focalLength, heightOverWidth float64) *Frustum {
	f := &Frustum{Near: near, Far: far, Kind: kind}
	f.UpdateProjection(focalLength, heightOverWidth)
	return f
}

// UpdateProjection recomputes the projection scale and shear. Call it after
// any change to focal length, aspect ratio, Near, Far or Kind.
func (f *Frustum) UpdateProjection(focalLength, heightOverWidth float64) {
	n, fr := f.Near, f.Far
	p := Projection{
		ScaleX: focalLength * heightOverWidth,
		ScaleY: focalLength,
		Kind:   f.Kind,
	}
	depth := fr - n
	if depth == 0 {
		depth = 1e-9
	}
	switch f.Kind {
	case PerspectiveGL:
		p.ScaleZ = (fr + n) / depth
		p.ShearZ = -2 * fr * n / depth
	case PerspectiveDX:
		p.ScaleZ = fr / depth
		p.ShearZ = -fr * n / depth
	default:
		p.ScaleZ = 2 / depth
		p.ShearZ = -(fr + n) / depth
	}
	f.Projection = p
}

// plane is a half-space n·p + d >= 0.
type plane struct {
	n mathutil.Vec3
	d float64
}

func (p plane) distance(v mathutil.Vec3) float64 {
	return p.n.Dot(v) + p.d
}

func sidePlane(n mathutil.Vec3, d float64) plane {
	l := n.Len()
	if l == 0 {
		return plane{n: n, d: d}
	}
	return plane{n: n.Scale(1 / l), d: d / l}
}

// planes returns near, far, left, right, bottom, top. The side normals
// depend on focal length and aspect ratio and are rebuilt on every call.
func (f *Frustum) planes(focalLength, heightOverWidth float64) [6]plane {
	sx := focalLength * heightOverWidth
	sy := focalLength

	out := [6]plane{
		{n: mathutil.Vec3{0, 0, 1}, d: -f.Near},
		{n: mathutil.Vec3{0, 0, -1}, d: f.Far},
	}
	if f.Kind.Perspective() {
		// |sx·x| <= z and |sy·y| <= z
		out[2] = sidePlane(mathutil.Vec3{sx, 0, 1}, 0)
		out[3] = sidePlane(mathutil.Vec3{-sx, 0, 1}, 0)
		out[4] = sidePlane(mathutil.Vec3{0, sy, 1}, 0)
		out[5] = sidePlane(mathutil.Vec3{0, -sy, 1}, 0)
	} else {
		// |sx·x| <= 1 and |sy·y| <= 1
		out[2] = sidePlane(mathutil.Vec3{sx, 0, 0}, 1)
		out[3] = sidePlane(mathutil.Vec3{-sx, 0, 0}, 1)
		out[4] = sidePlane(mathutil.Vec3{0, sy, 0}, 1)
		out[5] = sidePlane(mathutil.Vec3{0, -sy, 0}, 1)
	}
	return out
}

// CullAndClipEdge clips e against near, far, left, right, bottom and top, in
// that order. It returns false as soon as both endpoints fall outside one
// plane; e is then partially clipped and must be ignored.
func (f *Frustum) CullAndClipEdge(e *Edge, focalLength, heightOverWidth float64) bool {
	for _, p := range f.planes(focalLength, heightOverWidth) {
		if !clipToPlane(e, p) {
			return false
		}
	}
	return true
}

// clipToPlane applies one plane test. Bit 0 of the outside code is From,
// bit 1 is To.
func clipToPlane(e *Edge, p plane) bool {
	d0 := p.distance(e.From)
	d1 := p.distance(e.To)

	code := 0
	if d0 < 0 {
		code |= 1
	}
	if d1 < 0 {
		code |= 2
	}

	switch code {
	case 3:
		return false
	case 1:
		e.From = e.From.Lerp(e.To, d0/(d0-d1))
	case 2:
		e.To = e.To.Lerp(e.From, d1/(d1-d0))
	}
	return true
}

// ProjectEdge maps both endpoints of an already clipped edge to pixel
// coordinates of d. X and Y become pixel positions; Z keeps the camera-space
// depth so the rasterizer can interpolate 1/z.
func (f *Frustum) ProjectEdge(e *Edge, d Dimensions) {
	e.From = f.ProjectPoint(e.From, d)
	e.To = f.ProjectPoint(e.To, d)
}

// ProjectPoint is ProjectEdge for a single point.
func (f *Frustum) ProjectPoint(v mathutil.Vec3, d Dimensions) mathutil.Vec3 {
	c := f.Projection.Apply(v)
	return mathutil.Vec3{
		c[0]*d.HalfWidth + d.HalfWidth,
		-c[1]*d.HalfHeight + d.HalfHeight,
		v[2],
	}
}

// Contains reports whether a camera-space point lies inside all six planes.
func (f *Frustum) Contains(v mathutil.Vec3, focalLength, heightOverWidth float64) bool {
	for _, p := range f.planes(focalLength, heightOverWidth) {
		if p.distance(v) < 0 {
			return false
		}
	}
	return true
}
