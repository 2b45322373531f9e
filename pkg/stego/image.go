package stego

import (
	"image"
	"image/draw"
)

// cloneNRGBA copies img into a fresh NRGBA anchored at (0,0).
func cloneNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}

// pixelsOf returns a tightly packed RGBA view of img, copying only when the
// image is not already a packed NRGBA.
func pixelsOf(img image.Image) []byte {
	if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*n.Rect.Dx() {
		return n.Pix[:4*n.Rect.Dx()*n.Rect.Dy()]
	}
	return cloneNRGBA(img).Pix
}

// EmbedImage hides payload in a copy of carrier and returns the copy.
// The carrier is never modified, so a failed embed leaves nothing behind.
func EmbedImage(carrier image.Image, s Strategy, payload []byte) (*image.NRGBA, error) {
	output := cloneNRGBA(carrier)
	if err := s.Embed(output.Pix, payload); err != nil {
		return nil, err
	}
	return output, nil
}

// EmbedStreamsImage is EmbedImage for several split-mode streams.
func EmbedStreamsImage(carrier image.Image, s *FixedSplit, streams [][]byte) (*image.NRGBA, error) {
	output := cloneNRGBA(carrier)
	if err := s.EmbedStreams(output.Pix, streams); err != nil {
		return nil, err
	}
	return output, nil
}

// ExtractImage recovers the payload hidden in img.
func ExtractImage(img image.Image, s Strategy) ([]byte, error) {
	return s.Extract(pixelsOf(img))
}

// ExtractStreamsImage recovers every split-mode stream hidden in img.
func ExtractStreamsImage(img image.Image, s *FixedSplit) ([][]byte, error) {
	return s.ExtractStreams(pixelsOf(img))
}
