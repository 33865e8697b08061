package engine

import (
	"math"

	"pinchzoom/pkg/geom"
)

// BaseMatrix maps content of size (cw, ch) onto a (vw, vh) viewport per
// fit mode. For the FIT_* modes a base rotation that is not a multiple of
// 180° fits the content's rotated footprint instead.
func BaseMatrix(vw, vh, cw, ch float64, fit FitMode, baseRotation float64) geom.Matrix {
	if cw <= 0 || ch <= 0 || vw <= 0 || vh <= 0 {
		return geom.Identity()
	}

	widthScale := vw / cw
	heightScale := vh / ch

	switch fit {
	case Center:
		return geom.Translate((vw-cw)/2, (vh-ch)/2)

	case CenterCrop:
		s := math.Max(widthScale, heightScale)
		return geom.Matrix{s, 0, 0, s, (vw - cw*s) / 2, (vh - ch*s) / 2}

	case CenterInside:
		s := math.Min(1, math.Min(widthScale, heightScale))
		return geom.Matrix{s, 0, 0, s, (vw - cw*s) / 2, (vh - ch*s) / 2}
	}

	src := geom.Rect{Width: cw, Height: ch}
	if int(baseRotation)%180 != 0 {
		src = geom.Rect{Width: ch, Height: cw}
	}
	dst := geom.Rect{Width: vw, Height: vh}

	switch fit {
	case FitStart:
		return geom.RectToRect(src, dst, geom.Start)
	case FitEnd:
		return geom.RectToRect(src, dst, geom.End)
	case FitXY:
		return geom.RectToRect(src, dst, geom.Fill)
	}
	return geom.RectToRect(src, dst, geom.Center)
}

// ContentRect maps the intrinsic content rectangle (0, 0, cw, ch) through m.
func ContentRect(m geom.Matrix, cw, ch float64) geom.Rect {
	return geom.Rect{Width: cw, Height: ch}.Transform(m)
}

// ClampTranslation returns the translation that keeps rect within a
// (vw, vh) viewport. On an axis where the content is no larger than the
// viewport it is aligned per fit mode (start, end or centered); on an
// axis where it is larger, an edge that left the viewport boundary is moved
// back onto it. Applying the result and clamping again yields (0, 0).
func ClampTranslation(rect geom.Rect, vw, vh float64, fit FitMode) (dx, dy float64) {
	return clampAxis(rect.Left(), rect.Right(), vw, fit),
		clampAxis(rect.Top(), rect.Bottom(), vh, fit)
}

func clampAxis(lo, hi, view float64, fit FitMode) float64 {
	size := hi - lo
	if size <= view {
		switch fit {
		case FitStart:
			return -lo
		case FitEnd:
			return view - size - lo
		default:
			return (view-size)/2 - lo
		}
	}
	if lo > 0 {
		return -lo
	}
	if hi < view {
		return view - hi
	}
	return 0
}
