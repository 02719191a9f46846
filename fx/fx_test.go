package fx

import (
	"testing"

	"github.com/kungfusheep/laserctl/frame"
	"github.com/kungfusheep/laserctl/modulate"
)

func TestRGBCurvesIdentity(t *testing.T) {
	identity := Curve{{X: 0, Y: 0}, {X: 255, Y: 255}}
	in := frame.Frame{{X: 100, Y: -200, R: 128, G: 64, B: 200}}
	out := RGBCurves(in, Params{RedCurve: identity, GreenCurve: identity, BlueCurve: identity}, EvalContext{})

	if out[0] != in[0] {
		t.Errorf("identity curve changed point: got %+v want %+v", out[0], in[0])
	}
}

func TestRGBCurvesGamma(t *testing.T) {
	curve := Curve{{X: 0, Y: 0}, {X: 128, Y: 255}, {X: 255, Y: 255}}
	in := frame.Frame{{X: 0, Y: 0, R: 128, G: 128, B: 128}}
	out := RGBCurves(in, Params{RedCurve: curve, GreenCurve: curve, BlueCurve: curve}, EvalContext{})

	if out[0].R != 255 || out[0].G != 255 || out[0].B != 255 {
		t.Errorf("gamma curve result = %+v, want (255,255,255)", out[0])
	}
	if out[0].X != 0 || out[0].Y != 0 {
		t.Errorf("rgb-curves must not move coordinates")
	}
}

func TestRGBCurvesClampsOutsideDomain(t *testing.T) {
	curve := Curve{{X: 0, Y: 10}, {X: 255, Y: 20}}
	out := applyCurve(curve, 0)
	if out != 10 {
		t.Errorf("clamp at lower bound = %d, want 10", out)
	}
}

func TestScaleAndOffsetAndRotate(t *testing.T) {
	in := frame.Frame{{X: frame.Denormalize(0.5), Y: frame.Denormalize(0.5)}}
	scaled := Scale(in, Params{ScaleX: ParamValue{Scalar: 2}, ScaleY: ParamValue{Scalar: 2}}, EvalContext{})
	if frame.Normalize(scaled[0].X) < 0.99 {
		t.Errorf("scale did not expand coordinate: %v", frame.Normalize(scaled[0].X))
	}

	offset := Offset(in, Params{OffsetX: ParamValue{Scalar: -0.5}, OffsetY: ParamValue{Scalar: -0.5}}, EvalContext{})
	if frame.Normalize(offset[0].X) > 0.01 {
		t.Errorf("offset did not shift coordinate to ~0: %v", frame.Normalize(offset[0].X))
	}

	rotated := Rotate(frame.Frame{{X: frame.Denormalize(1), Y: 0}}, Params{RotationRadians: ParamValue{Scalar: 3.14159265 / 2}}, EvalContext{})
	if frame.Normalize(rotated[0].Y) < 0.9 {
		t.Errorf("90deg rotation should move x-axis point near y=1, got y=%v", frame.Normalize(rotated[0].Y))
	}
}

func TestBlockedRegionsBlanksInPlace(t *testing.T) {
	in := frame.Frame{
		{X: frame.Denormalize(0), Y: frame.Denormalize(0), R: 255, G: 255, B: 255},
		{X: frame.Denormalize(0.9), Y: frame.Denormalize(0.9), R: 255, G: 255, B: 255},
	}
	regions := []Region{{Shape: RegionCircle, Center: Point2D{0, 0}, Radius: 0.2}}
	out := BlockedRegions(in, Params{Regions: regions}, EvalContext{})

	if !frame.Blanked(out[0]) {
		t.Errorf("point inside region should be blanked: %+v", out[0])
	}
	if frame.Blanked(out[1]) {
		t.Errorf("point outside region should stay lit: %+v", out[1])
	}
	if len(out) != len(in) {
		t.Errorf("blocked-regions must not drop points, got %d want %d", len(out), len(in))
	}
}

func TestViewportClipsAndRemaps(t *testing.T) {
	in := frame.Frame{
		{X: frame.Denormalize(0.5), Y: frame.Denormalize(0.5)},
		{X: frame.Denormalize(-0.9), Y: frame.Denormalize(-0.9)},
	}
	out := Viewport(in, Params{ViewMin: Point2D{0, 0}, ViewMax: Point2D{1, 1}}, EvalContext{})
	if len(out) != 1 {
		t.Fatalf("expected 1 point surviving viewport clip, got %d", len(out))
	}
	if frame.Normalize(out[0].X) < 0 {
		t.Errorf("surviving point should remap into [-1,1] remapped space, got %v", frame.Normalize(out[0].X))
	}
}

func TestHueShiftRotatesHueAndPreservesBlanked(t *testing.T) {
	in := frame.Frame{
		{X: 1, Y: 1, R: 255, G: 0, B: 0},
		{X: 2, Y: 2, R: 0, G: 0, B: 0},
	}
	out := HueShift(in, Params{HueDegrees: ParamValue{Scalar: 120}}, EvalContext{})
	if out[0].R == 255 && out[0].G == 0 && out[0].B == 0 {
		t.Errorf("hue-shift did not change color: %+v", out[0])
	}
	if !frame.Blanked(out[1]) {
		t.Errorf("hue-shift should not relight a blanked point: %+v", out[1])
	}
}

func TestRegistryUnknownEffectIsIdentity(t *testing.T) {
	r := NewRegistry()
	in := frame.Frame{{X: 5, Y: 5, R: 1, G: 2, B: 3}}
	out := r.Apply("no-such-effect", in, Params{}, EvalContext{})
	if out[0] != in[0] {
		t.Errorf("unknown effect should be identity, got %+v", out[0])
	}
}

func TestRegistryModulatedParam(t *testing.T) {
	r := NewRegistry()
	in := frame.Frame{{X: frame.Denormalize(0.1)}}
	mod := &modulate.Config{Active: true, Type: modulate.Constant, Min: 2, Max: 2, PeriodBeats: 1}
	out := r.Apply(IDScale, in, Params{ScaleX: ParamValue{Modulator: mod}, ScaleY: ParamValue{Scalar: 1}}, EvalContext{})
	if frame.Normalize(out[0].X) < 0.15 {
		t.Errorf("modulated scale did not apply: %v", frame.Normalize(out[0].X))
	}
}
