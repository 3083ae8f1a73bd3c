package metadata

/** @brief The identifier of the "no texture" sentinel. Binding it is a no-op. */
const NoTextureID uint32 = 0

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
)

/**
 * @brief Represents a texture.
 */
type Texture struct {
	/** @brief The backend texture identifier, NoTextureID when nothing was uploaded. */
	ID           uint32
	/** @brief The texture Name. */
	Name         string
	/** @brief The file the pixels were read from. */
	Path         string
	/** @brief The texture Width. */
	Width        uint32
	/** @brief The texture Height. */
	Height       uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief Incremented every time the data is reloaded. */
	Generation   uint32
	/** @brief Sampling state used at upload. */
	Filter       TextureFilter
	Repeat       TextureRepeat
	Mipmaps      bool
}

// NewNoTexture returns the sentinel used when an image could not be loaded.
func NewNoTexture(path string) *Texture {
	return &Texture{
		ID:   NoTextureID,
		Name: "none",
		Path: path,
	}
}

func (t *Texture) IsLoaded() bool {
	return t != nil && t.ID != NoTextureID
}
