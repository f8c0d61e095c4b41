package tex

import (
	"image"
	"image/color"
)

// Sprite pairs a texture with a source rectangle and a modulation
// color, and computes the geometry a renderer needs to draw it. It
// references the texture and never mutates it; many sprites may share
// one texture.
//
// Rendering itself is out of scope here: a renderer takes the bounds
// and normalized texture coordinates and issues its own draw calls.
type Sprite struct {
	texture *Texture
	rect    image.Rectangle
	color   color.NRGBA
	pos     image.Point
}

// NewSprite creates a sprite covering the full texture, modulated
// white (drawn unchanged).
func NewSprite(t *Texture) *Sprite {
	return &Sprite{
		texture: t,
		rect:    image.Rectangle{Max: t.Size()},
		color:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// NewSpriteRect creates a sprite showing the given sub-rectangle of
// the texture.
func NewSpriteRect(t *Texture, rect image.Rectangle) *Sprite {
	s := NewSprite(t)
	s.rect = rect.Canon()
	return s
}

// Texture returns the referenced texture.
func (s *Sprite) Texture() *Texture { return s.texture }

// SetTexture switches the sprite to another texture. The texture
// rectangle is kept as-is; call SetTextureRect to adjust it.
func (s *Sprite) SetTexture(t *Texture) { s.texture = t }

// TextureRect returns the sub-rectangle of the texture the sprite
// shows.
func (s *Sprite) TextureRect() image.Rectangle { return s.rect }

// SetTextureRect sets the sub-rectangle of the texture to show.
func (s *Sprite) SetTextureRect(r image.Rectangle) { s.rect = r.Canon() }

// Color returns the modulation color.
func (s *Sprite) Color() color.NRGBA { return s.color }

// SetColor sets the modulation color multiplied with the texture
// pixels when drawing.
func (s *Sprite) SetColor(c color.NRGBA) { s.color = c }

// Position returns the sprite's placement offset.
func (s *Sprite) Position() image.Point { return s.pos }

// SetPosition places the sprite at the given offset.
func (s *Sprite) SetPosition(p image.Point) { s.pos = p }

// Move shifts the sprite by the given delta.
func (s *Sprite) Move(delta image.Point) { s.pos = s.pos.Add(delta) }

// LocalBounds returns the sprite's bounds in its own coordinate space:
// origin at (0,0), extent equal to the texture rectangle size.
func (s *Sprite) LocalBounds() image.Rectangle {
	return image.Rectangle{Max: s.rect.Size()}
}

// GlobalBounds returns the sprite's bounds translated by its position.
func (s *Sprite) GlobalBounds() image.Rectangle {
	return s.LocalBounds().Add(s.pos)
}

// TextureCoords returns the normalized texture coordinates of the
// sprite's rectangle: (u0, v0) for the top-left corner and (u1, v1)
// for the bottom-right. Storage with inverted row order is corrected
// here, so renderers can consume the coordinates as-is.
func (s *Sprite) TextureCoords() (u0, v0, u1, v1 float32) {
	if s.texture == nil || s.texture.IsEmpty() {
		return 0, 0, 0, 0
	}
	w := float32(s.texture.Width())
	h := float32(s.texture.Height())
	u0 = float32(s.rect.Min.X) / w
	u1 = float32(s.rect.Max.X) / w
	v0 = float32(s.rect.Min.Y) / h
	v1 = float32(s.rect.Max.Y) / h
	if s.texture.flipped {
		v0, v1 = 1-v0, 1-v1
	}
	return u0, v0, u1, v1
}
