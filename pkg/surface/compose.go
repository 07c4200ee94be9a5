package surface

import (
	"image"
	"image/draw"
	"image/png"
	"io"
)

// Compose flattens layers bottom to top over an opaque background
func Compose(background Color, layers ...*Raster) (image.Image, error) {
	if len(layers) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	bounds := image.Rect(0, 0, layers[0].width, layers[0].height)
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, image.NewUniform(background.drawing()), image.Point{}, draw.Src)

	for _, layer := range layers {
		if layer == nil {
			continue
		}

		img, err := layer.Image()
		if err != nil {
			return nil, err
		}
		draw.Draw(out, bounds, img, image.Point{}, draw.Over)
	}

	return out, nil
}

// ComposePNG writes Compose's result as PNG
func ComposePNG(w io.Writer, background Color, layers ...*Raster) error {
	img, err := Compose(background, layers...)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
