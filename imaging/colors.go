package imaging

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"sort"

	"github.com/disintegration/gift"
)

const (
	DefaultColorCount = 3

	// Working resolution for pixel counting, keeps cost independent of
	// the source size.
	colorSampleSize = 150

	// Mean-channel brightness bounds; candidates at or outside them are
	// treated as near-black/near-white noise.
	minBrightness = 30.0
	maxBrightness = 220.0
)

var fallbackColors = []string{"#808080", "#ffffff", "#000000"}

// ExtractColors returns the n most dominant colors of the image as
// lowercase #rrggbb strings. Colors too dark or too bright are skipped,
// and the result is padded with gray, white, then black when fewer than
// n candidates survive. Extraction failures never propagate: the caller
// always gets the fixed fallback palette instead.
func ExtractColors(data []byte, n int) []string {
	colors, err := extractColors(data, n)
	if err != nil {
		log.Printf("color extraction failed: %v", err)
		return append([]string(nil), fallbackColors...)
	}

	return colors
}

func extractColors(data []byte, n int) ([]string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	g := gift.New(gift.Resize(colorSampleSize, colorSampleSize, gift.NearestNeighborResampling))
	sampled := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(sampled, img)

	type rgb [3]uint8

	// Frequency over exact triples; order keeps first-seen scan order so
	// ties rank deterministically.
	counts := make(map[rgb]int)
	var order []rgb

	bounds := sampled.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, grn, blu, _ := sampled.At(x, y).RGBA()
			key := rgb{uint8(r >> 8), uint8(grn >> 8), uint8(blu >> 8)}
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	candidates := order
	if len(candidates) > n*3 {
		candidates = candidates[:n*3]
	}

	colors := make([]string, 0, n)
	for _, c := range candidates {
		brightness := float64(int(c[0])+int(c[1])+int(c[2])) / 3
		if brightness > minBrightness && brightness < maxBrightness {
			colors = append(colors, fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
			if len(colors) >= n {
				break
			}
		}
	}

	for len(colors) < n {
		switch len(colors) {
		case 0:
			colors = append(colors, "#808080")
		case 1:
			colors = append(colors, "#ffffff")
		default:
			colors = append(colors, "#000000")
		}
	}

	return colors[:n], nil
}
