package sphere

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestProjectStandardTransform(t *testing.T) {
	tests := []struct {
		name string
		in   GeoPoint
		want r3.Vector
	}{
		{"origin", GeoPoint{0, 0}, r3.Vector{X: 1}},
		{"east", GeoPoint{0, math.Pi / 2}, r3.Vector{Y: 1}},
		{"north pole", GeoPoint{math.Pi / 2, 0}, r3.Vector{Z: 1}},
		{"south pole", GeoPoint{-math.Pi / 2, 1.3}, r3.Vector{Z: -1}},
		{"antimeridian", GeoPoint{0, math.Pi}, r3.Vector{X: -1}},
	}

	p := NewProjector(UpZ)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Project(tt.in)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) || !approx(got.Z, tt.want.Z) {
				t.Errorf("Project(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProjectUpY(t *testing.T) {
	p := NewProjector(UpY)
	got := p.Project(GeoPoint{Lat: math.Pi / 2})
	if !approx(got.Y, 1) || !approx(got.X, 0) || !approx(got.Z, 0) {
		t.Errorf("north pole with UpY: got %v, want (0, 1, 0)", got)
	}
	got = p.Project(GeoPoint{Lng: math.Pi / 2})
	if !approx(got.Z, 1) {
		t.Errorf("lng 90 with UpY: got %v, want (0, 0, 1)", got)
	}
}

func TestProjectUnitLength(t *testing.T) {
	p := Projector{}
	for lat := -90.0; lat <= 90; lat += 7.5 {
		for lng := -180.0; lng <= 180; lng += 11.25 {
			v := p.Project(GeoPointFromDegrees(lat, lng))
			if math.Abs(v.Norm()-1) > 1e-12 {
				t.Fatalf("|Project(%v, %v)| = %v, want 1", lat, lng, v.Norm())
			}
		}
	}
}

func TestCentroid(t *testing.T) {
	c := Centroid([]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}})
	want := 1 / math.Sqrt(3)
	if !approx(c.X, want) || !approx(c.Y, want) || !approx(c.Z, want) {
		t.Errorf("Centroid = %v, want all components %v", c, want)
	}
	if c := Centroid(nil); c != (r3.Vector{}) {
		t.Errorf("Centroid(nil) = %v, want zero", c)
	}
	if c := Centroid([]r3.Vector{{X: 1}, {X: -1}}); c != (r3.Vector{}) {
		t.Errorf("Centroid of antipodes = %v, want zero", c)
	}
}

// hexagonAround returns a small regular ring around (lat, lng), in degrees.
func hexagonAround(lat, lng float64, n int, clockwise bool) []GeoPoint {
	ring := make([]GeoPoint, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(n)
		if clockwise {
			a = -a
		}
		ring[i] = GeoPointFromDegrees(lat+math.Sin(a), lng+math.Cos(a))
	}
	return ring
}

func TestTriangulateFan(t *testing.T) {
	color := Color{0.5, 0.6, 0.7}
	for _, n := range []int{3, 5, 6, 10} {
		for _, up := range []UpAxis{UpZ, UpY} {
			for _, cw := range []bool{false, true} {
				p := NewProjector(up)
				facet, err := p.Triangulate(hexagonAround(20, 30, n, cw), color)
				if err != nil {
					t.Fatalf("n=%d up=%s: unexpected error: %v", n, up, err)
				}
				if len(facet.Triangles) != n {
					t.Errorf("n=%d up=%s: got %d triangles, want %d", n, up, len(facet.Triangles), n)
				}
				if facet.Color != color {
					t.Errorf("facet color = %v, want %v", facet.Color, color)
				}
				for i, tri := range facet.Triangles {
					if tri[0].Position != facet.Center {
						t.Errorf("triangle %d does not start at the centroid", i)
					}
					face := tri[1].Position.Sub(tri[0].Position).Cross(tri[2].Position.Sub(tri[0].Position))
					if face.Dot(facet.Center) <= 0 {
						t.Errorf("n=%d up=%s cw=%v: triangle %d faces inward", n, up, cw, i)
					}
					for _, c := range tri {
						if c.Normal != facet.Center {
							t.Errorf("flat shading normal = %v, want centroid %v", c.Normal, facet.Center)
						}
					}
				}
			}
		}
	}
}

func TestTriangulateSmoothNormals(t *testing.T) {
	facet, err := Projector{}.TriangulateShaded(hexagonAround(-40, 100, 6, false), Color{}, ShadingSmooth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tri := range facet.Triangles {
		for _, c := range tri {
			if c.Normal.Sub(c.Position).Norm() > 1e-12 {
				t.Errorf("smooth normal %v differs from radial direction %v", c.Normal, c.Position)
			}
		}
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		_, err := Projector{}.Triangulate(make([]GeoPoint, n), Color{})
		if !errors.Is(err, ErrDegenerateBoundary) {
			t.Errorf("%d points: expected ErrDegenerateBoundary, got %v", n, err)
		}
	}
}

func TestPaletteDeterministic(t *testing.T) {
	a := NewPalette(42, 7)
	b := NewPalette(42, 7)
	c := NewPalette(42, 8)

	same := true
	for i := 0; i < 16; i++ {
		ca, cb, cc := a.Next(), b.Next(), c.Next()
		if ca != cb {
			t.Fatalf("color %d: same seed and stream diverged: %v vs %v", i, ca, cb)
		}
		if ca != cc {
			same = false
		}
		for _, ch := range ca {
			if ch < minChannel || ch > 1 {
				t.Errorf("channel %v outside [%v, 1]", ch, minChannel)
			}
		}
	}
	if same {
		t.Error("different streams produced identical colors")
	}
}

func TestParseOptions(t *testing.T) {
	if up, err := ParseUpAxis(""); err != nil || up != UpZ {
		t.Errorf("ParseUpAxis(\"\") = %v, %v", up, err)
	}
	if _, err := ParseUpAxis("x"); err == nil {
		t.Error("expected error for up axis x")
	}
	if s, err := ParseShading("smooth"); err != nil || s != ShadingSmooth {
		t.Errorf("ParseShading(smooth) = %v, %v", s, err)
	}
	if _, err := ParseShading("phong"); err == nil {
		t.Error("expected error for shading phong")
	}
	if m, err := ParseColorMode("chunk"); err != nil || m != ColorPerChunk {
		t.Errorf("ParseColorMode(chunk) = %v, %v", m, err)
	}
	if _, err := ParseColorMode("vertex"); err == nil {
		t.Error("expected error for color mode vertex")
	}
}
