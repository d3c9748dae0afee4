// Package frustum clips camera-space segments against the view volume and
// maps what survives to screen pixels.
//
// Camera space is right-handed with x to the right, y up and z pointing
// forward, so z is the distance in front of the camera. Screen space has its
// origin at the top-left corner with y growing downwards.
package frustum

import (
	"fmt"
	"strings"

	"softraster/internal/mathutil"
)

// Kind selects the projection formula.
type Kind int

const (
	// Orthographic has no perspective divide; depth maps to [-1, 1].
	Orthographic Kind = iota
	// PerspectiveGL maps [near, far] to [-1, 1] after the divide.
	PerspectiveGL
	// PerspectiveDX maps [near, far] to [0, 1] after the divide.
	PerspectiveDX
)

func (k Kind) String() string {
	switch k {
	case Orthographic:
		return "ortho"
	case PerspectiveGL:
		return "gl"
	case PerspectiveDX:
		return "dx"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Perspective reports whether the kind divides by camera-space depth.
func (k Kind) Perspective() bool {
	return k == PerspectiveGL || k == PerspectiveDX
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ortho", "orthographic":
		return Orthographic, nil
	case "gl", "perspective", "perspective-gl":
		return PerspectiveGL, nil
	case "dx", "perspective-dx":
		return PerspectiveDX, nil
	}
	return 0, fmt.Errorf("frustum: unknown projection %q", s)
}

// Projection holds the per-axis scale factors and the depth shear of the
// current projection formula.
type Projection struct {
	ScaleX float64
	ScaleY float64
	ScaleZ float64
	ShearZ float64
	Kind   Kind
}

// Apply maps a camera-space point to normalized device coordinates:
// scale, shear on the depth axis, then the perspective divide by
// camera-space depth for perspective kinds.
func (p Projection) Apply(v mathutil.Vec3) mathutil.Vec3 {
	c := mathutil.Vec3{
		v[0] * p.ScaleX,
		v[1] * p.ScaleY,
		v[2]*p.ScaleZ + p.ShearZ,
	}
	if p.Kind.Perspective() && v[2] != 0 {
		c = c.Scale(1 / v[2])
	}
	return c
}

// Dimensions are the pixel metrics of one output surface. Rebuild them with
// NewDimensions whenever the resolution changes.
type Dimensions struct {
	Width           int
	Height          int
	Stride          int
	HalfWidth       float64
	HalfHeight      float64
	WidthOverHeight float64
	HeightOverWidth float64
}

// NewDimensions computes the metrics of a w×h surface.
func NewDimensions(w, h int) Dimensions {
	d := Dimensions{
		Width:      w,
		Height:     h,
		Stride:     w,
		HalfWidth:  float64(w) / 2,
		HalfHeight: float64(h) / 2,
	}
	if w > 0 && h > 0 {
		d.WidthOverHeight = float64(w) / float64(h)
		d.HeightOverWidth = float64(h) / float64(w)
	}
	return d
}
