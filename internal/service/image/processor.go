package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
)

const (
	defaultMaxWidth     = 1280
	defaultMaxSizeBytes = 1 * 1024 * 1024
	defaultQuality      = 80
	minWidth            = 320
)

// Prepared картинка, готовая к отправке: JPEG в памяти.
type Prepared struct {
	Source    string
	Width     int
	Height    int
	SizeBytes int
	MimeType  string
	Data      []byte
}

// Base64 кодирует JPEG для запроса к AI.
func (p Prepared) Base64() string {
	return base64.StdEncoding.EncodeToString(p.Data)
}

// Processor приводит картинки к JPEG нужной ширины и размера.
type Processor struct {
	maxWidth    int
	maxSizeByte int
	quality     int
}

// NewProcessor создаёт процессор; нулевые значения заменяются дефолтами.
func NewProcessor(maxWidth, maxSizeBytes, quality int) *Processor {
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	if maxSizeBytes <= 0 {
		maxSizeBytes = defaultMaxSizeBytes
	}
	if quality <= 0 {
		quality = defaultQuality
	}
	return &Processor{
		maxWidth:    maxWidth,
		maxSizeByte: maxSizeBytes,
		quality:     min(quality, 100),
	}
}

// Process читает JPEG/PNG с диска и готовит его к отправке.
func (p *Processor) Process(path string) (Prepared, error) {
	file, err := os.Open(path)
	if err != nil {
		return Prepared{}, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return Prepared{}, fmt.Errorf("decode %s: %w", path, err)
	}

	out, err := p.Encode(img)
	if err != nil {
		return Prepared{}, fmt.Errorf("encode %s: %w", path, err)
	}
	out.Source = path
	return out, nil
}

// Encode масштабирует картинку до maxWidth и уменьшает её, пока JPEG не влезет в maxSizeByte.
func (p *Processor) Encode(img image.Image) (Prepared, error) {
	origBounds := img.Bounds()
	origWidth := origBounds.Dx()
	origHeight := origBounds.Dy()
	if origWidth == 0 || origHeight == 0 {
		return Prepared{}, fmt.Errorf("invalid image size: %dx%d", origWidth, origHeight)
	}

	resizedWidth := min(origWidth, p.maxWidth)
	resizedHeight := max(1, origHeight*resizedWidth/origWidth)

	var encoded []byte
	for {
		var src image.Image = img
		if resizedWidth != origWidth {
			src = resizeNearest(img, resizedWidth, resizedHeight)
		}
		var err error
		encoded, err = encodeJPEG(src, p.quality)
		if err != nil {
			return Prepared{}, err
		}

		if len(encoded) <= p.maxSizeByte {
			break
		}

		if resizedWidth <= minWidth {
			return Prepared{}, fmt.Errorf("image exceeds max size %d bytes even after downscale", p.maxSizeByte)
		}

		resizedWidth = max(1, int(float64(resizedWidth)*0.9))
		resizedHeight = max(1, origHeight*resizedWidth/origWidth)
	}

	return Prepared{
		Width:     resizedWidth,
		Height:    resizedHeight,
		SizeBytes: len(encoded),
		MimeType:  "image/jpeg",
		Data:      encoded,
	}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resizeNearest(src image.Image, width int, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	srcBounds := src.Bounds()
	srcWidth := srcBounds.Dx()
	srcHeight := srcBounds.Dy()
	if srcWidth == 0 || srcHeight == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		srcY := srcBounds.Min.Y + y*srcHeight/height
		for x := range width {
			srcX := srcBounds.Min.X + x*srcWidth/width
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}

	return dst
}
