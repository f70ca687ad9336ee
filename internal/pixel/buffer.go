// Package pixel provides an owned RGBA pixel buffer with the handful of
// operations needed to derive icon appearances: per-pixel access, uniform
// multiply tint, stretch drawing and PNG encoding.
package pixel

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

var (
	// ErrReleased is returned by operations on a buffer whose backing memory
	// has been released.
	ErrReleased = errors.New("pixel: buffer released")
	// ErrEmpty is returned when a zero-sized buffer cannot be processed.
	ErrEmpty = errors.New("pixel: empty buffer")
)

// Buffer is a non-premultiplied RGBA image owned by exactly one holder.
// Buffers are not safe for concurrent use.
type Buffer struct {
	img *image.NRGBA
}

// New allocates a transparent buffer of the given size.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies any image into a new buffer with origin (0,0).
func FromImage(src image.Image) *Buffer {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Buffer{img: dst}
}

// Width returns the buffer width in pixels, 0 once released.
func (b *Buffer) Width() int {
	if !b.Valid() {
		return 0
	}
	return b.img.Rect.Dx()
}

// Height returns the buffer height in pixels, 0 once released.
func (b *Buffer) Height() int {
	if !b.Valid() {
		return 0
	}
	return b.img.Rect.Dy()
}

// Valid reports whether the buffer still owns its pixels.
func (b *Buffer) Valid() bool {
	return b != nil && b.img != nil
}

// Release drops the backing memory. Any later operation fails with ErrReleased.
func (b *Buffer) Release() {
	if b != nil {
		b.img = nil
	}
}

// At returns the pixel at (x, y). Out of range coordinates return transparent black.
func (b *Buffer) At(x, y int) color.NRGBA {
	if !b.Valid() {
		return color.NRGBA{}
	}
	return b.img.NRGBAAt(x, y)
}

// Set writes the pixel at (x, y). Out of range writes are ignored.
func (b *Buffer) Set(x, y int, c color.NRGBA) {
	if !b.Valid() {
		return
	}
	b.img.SetNRGBA(x, y, c)
}

// Image exposes the buffer for drawing. The returned image aliases the buffer.
func (b *Buffer) Image() *image.NRGBA {
	if !b.Valid() {
		return nil
	}
	return b.img
}

// Clone returns a deep copy owned by the caller.
func (b *Buffer) Clone() (*Buffer, error) {
	if !b.Valid() {
		return nil, ErrReleased
	}
	dst := image.NewNRGBA(b.img.Rect)
	copy(dst.Pix, b.img.Pix)
	return &Buffer{img: dst}, nil
}

// Tint multiplies every channel of every pixel by the matching channel of c,
// treating both as fractions of 255.
func (b *Buffer) Tint(c color.NRGBA) error {
	if !b.Valid() {
		return ErrReleased
	}
	if b.img.Rect.Empty() {
		return ErrEmpty
	}
	pix := b.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = mul8(pix[i+0], c.R)
		pix[i+1] = mul8(pix[i+1], c.G)
		pix[i+2] = mul8(pix[i+2], c.B)
		pix[i+3] = mul8(pix[i+3], c.A)
	}
	return nil
}

// Recolor replaces the RGB channels of every pixel with c and keeps alpha.
func (b *Buffer) Recolor(c color.NRGBA) error {
	if !b.Valid() {
		return ErrReleased
	}
	if b.img.Rect.Empty() {
		return ErrEmpty
	}
	pix := b.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
	}
	return nil
}

// Resize returns a copy scaled to width x height with bilinear filtering.
func (b *Buffer) Resize(width, height int) (*Buffer, error) {
	if !b.Valid() {
		return nil, ErrReleased
	}
	if width == b.Width() && height == b.Height() {
		return b.Clone()
	}
	dst := New(width, height)
	draw.BiLinear.Scale(dst.img, dst.img.Bounds(), b.img, b.img.Bounds(), draw.Src, nil)
	return dst, nil
}

// mul8 multiplies two 8-bit fractions with rounding.
func mul8(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}

// Encode writes the buffer as PNG.
func (b *Buffer) Encode(w io.Writer) error {
	if !b.Valid() {
		return ErrReleased
	}
	return png.Encode(w, b.img)
}

// Decode reads a PNG (or any registered image format) into a new buffer.
func Decode(r io.Reader) (*Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("pixel: decode: %w", err)
	}
	return FromImage(img), nil
}

// Load decodes the image file at path.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// Save encodes the buffer as PNG at path, creating parent directories.
func (b *Buffer) Save(path string) error {
	if !b.Valid() {
		return ErrReleased
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := b.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
