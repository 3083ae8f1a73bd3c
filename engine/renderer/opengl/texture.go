package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

func (r *OpenGLRenderer) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	if texture.ChannelCount != 4 {
		return fmt.Errorf("texture `%s`: expected 4 channels, got %d", texture.Name, texture.ChannelCount)
	}
	if len(pixels) != int(texture.Width)*int(texture.Height)*4 {
		return fmt.Errorf("texture `%s`: pixel buffer does not match %dx%d", texture.Name, texture.Width, texture.Height)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	wrap := int32(gl.REPEAT)
	switch texture.Repeat {
	case metadata.TextureRepeatMirroredRepeat:
		wrap = gl.MIRRORED_REPEAT
	case metadata.TextureRepeatClampToEdge:
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	minFilter, magFilter := int32(gl.NEAREST), int32(gl.NEAREST)
	if texture.Filter == metadata.TextureFilterModeLinear {
		minFilter, magFilter = gl.LINEAR, gl.LINEAR
		if texture.Mipmaps {
			minFilter = gl.LINEAR_MIPMAP_LINEAR
		}
	} else if texture.Mipmaps {
		minFilter = gl.NEAREST_MIPMAP_NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(texture.Width), int32(texture.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if texture.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := checkError("texture create"); err != nil {
		gl.DeleteTextures(1, &id)
		return err
	}
	texture.ID = id
	return nil
}

func (r *OpenGLRenderer) TextureDestroy(texture *metadata.Texture) error {
	gl.DeleteTextures(1, &texture.ID)
	texture.ID = metadata.NoTextureID
	return nil
}

func (r *OpenGLRenderer) TextureBind(texture *metadata.Texture, unit uint32) error {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture.ID)
	return nil
}
