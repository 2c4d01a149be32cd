package ktpocr

import (
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
)

// preprocessForScan writes a grayscale, contrast-boosted, upscaled copy of
// the image to a temp file and returns its path. The caller removes it.
func preprocessForScan(path string) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 20)
	gray = imaging.Sharpen(gray, 0.8)
	// KTP photos are often small; the NIK line needs height to OCR reliably.
	if gray.Bounds().Dy() < 800 {
		gray = imaging.Resize(gray, 0, 1200, imaging.Lanczos)
	}
	bin := binarize(gray, 200)

	tmp, err := os.CreateTemp("", "ktpocr-*.png")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	tmp.Close()
	if err := imaging.Save(bin, name); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// binarize applies a global threshold to a grayscale image.
func binarize(img image.Image, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			gray := uint8((r + g + bb) / 3 >> 8)
			v := uint8(255)
			if gray <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}
