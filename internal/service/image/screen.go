package image

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/kbinani/screenshot"
)

// CaptureScreen снимает все активные мониторы в один кадр.
func CaptureScreen() (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, errors.New("no active displays detected for screenshot")
	}

	// Вычисляем объединённые границы всех мониторов
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}

	canvas := image.NewRGBA(image.Rect(0, 0, union.Dx(), union.Dy()))
	captured := 0
	for i := range n {
		b := screenshot.GetDisplayBounds(i)
		img, err := screenshot.CaptureRect(b)
		if err != nil {
			continue
		}
		// Копируем в холст со смещением
		dstPoint := image.Pt(b.Min.X-union.Min.X, b.Min.Y-union.Min.Y)
		dstRect := image.Rectangle{Min: dstPoint, Max: dstPoint.Add(b.Size())}
		draw.Draw(canvas, dstRect, img, image.Point{}, draw.Src)
		captured++
	}
	if captured == 0 {
		return nil, fmt.Errorf("failed to capture any of %d displays", n)
	}
	return canvas, nil
}
