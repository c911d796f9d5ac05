package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/gift"
)

const (
	ThumbnailWidth  = 300
	ThumbnailHeight = 300

	jpegQuality = 85
)

// DecodeError reports input bytes that could not be decoded as an image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Normalize produces a width x height JPEG preview of the input image.
// The source is downscaled with Lanczos resampling so it fits the target
// box without changing aspect ratio, then centered on a white canvas of
// exactly the target size. Transparency is composited against the white
// background. Sources already inside the box are not upscaled.
func Normalize(data []byte, width, height int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() > width || bounds.Dy() > height {
		g := gift.New(gift.ResizeToFit(width, height, gift.LanczosResampling))
		scaled := image.NewRGBA(g.Bounds(bounds))
		g.Draw(scaled, img)
		img = scaled
		bounds = img.Bounds()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	offset := image.Pt((width-bounds.Dx())/2, (height-bounds.Dy())/2)
	target := image.Rectangle{Min: offset, Max: offset.Add(bounds.Size())}
	draw.Draw(canvas, target, img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
