package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

type ImageLoader struct{}

/**
 * @brief Decodes any registered image format into tightly packed RGBA
 * rows. With flip set the first row of the result is the bottom of the
 * picture, the order OpenGL expects.
 */
func decodeImage(path string, flip bool) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	core.LogDebug("decoded %s image %s", format, path)

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	if flip {
		flipRows(rgba)
	}
	return rgba, nil
}

func flipRows(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]uint8, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flip := false
	if typedParams, ok := params.(*metadata.ImageResourceParams); ok && typedParams != nil {
		flip = typedParams.FlipY
	}

	rgba, err := decodeImage(path, flip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", path, core.ErrTextureLoad, err)
	}
	if rgba.Bounds().Empty() {
		return nil, fmt.Errorf("%s has no pixels: %w", path, core.ErrTextureLoad)
	}

	return &metadata.Resource{
		Name:     "image",
		FullPath: path,
		DataSize: uint64(len(rgba.Pix)),
		Data: &metadata.ImageResourceData{
			ChannelCount: 4,
			Width:        uint32(rgba.Bounds().Dx()),
			Height:       uint32(rgba.Bounds().Dy()),
			Pixels:       rgba.Pix,
		},
	}, nil
}

func (il *ImageLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
