package crop

import (
	"math"
)

// Region is a pixel rectangle in source-image coordinates, always
// inside the image bounds and at least 1x1.
type Region struct {
	OriginX int `json:"originX"`
	OriginY int `json:"originY"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// Viewport is the on-screen preview rectangle the image is contained in.
type Viewport struct {
	X float64
	Y float64
	W float64
	H float64
}

// Gesture is the user's accumulated pinch scale and pan translation,
// in screen pixels. The zero value means no gesture; Scale must then
// be set to 1 by the caller or it is treated as invalid and reset.
type Gesture struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Map converts the fixed target frame, centered in the viewport, into
// a crop rectangle in original-image pixel coordinates.
//
// The image is contain-fitted into the viewport, then the pinch scale
// is applied anchored at the viewport center plus the pan translation.
// The frame rectangle is converted from screen space to image pixels
// with the combined scale, then clamped inside the image.
func Map(imgW, imgH int, pv Viewport, g Gesture, frameW, frameH float64) Region {
	if imgW < 1 || imgH < 1 || pv.W <= 0 || pv.H <= 0 || frameW <= 0 || frameH <= 0 {
		return Region{OriginX: 0, OriginY: 0, Width: max(1, imgW), Height: max(1, imgH)}
	}

	scale := g.Scale
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1.0
	}

	baseS := math.Min(pv.W/float64(imgW), pv.H/float64(imgH))
	dispW := float64(imgW) * baseS
	dispH := float64(imgH) * baseS
	imgLeft0 := pv.X + (pv.W-dispW)/2
	imgTop0 := pv.Y + (pv.H-dispH)/2

	pvCenterX := pv.X + pv.W/2
	pvCenterY := pv.Y + pv.H/2
	imgLeft := imgLeft0*scale + (1-scale)*pvCenterX + g.TranslateX
	imgTop := imgTop0*scale + (1-scale)*pvCenterY + g.TranslateY

	frameX := pv.X + (pv.W-frameW)/2
	frameY := pv.Y + (pv.H-frameH)/2

	pxPerDisp := 1 / (baseS * scale)
	originX := (frameX - imgLeft) * pxPerDisp
	originY := (frameY - imgTop) * pxPerDisp
	cropW := frameW * pxPerDisp
	cropH := frameH * pxPerDisp

	ox := clampInt(int(math.Floor(originX)), 0, imgW-1)
	oy := clampInt(int(math.Floor(originY)), 0, imgH-1)
	w := clampInt(int(math.Floor(cropW)), 1, imgW-ox)
	h := clampInt(int(math.Floor(cropH)), 1, imgH-oy)

	return Region{OriginX: ox, OriginY: oy, Width: w, Height: h}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
