package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// pngHeader is a PNG that stops after its IHDR chunk, enough for a decoder
// to learn the declared dimensions.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestResizer_Resize(t *testing.T) {
	tests := []struct {
		name       string
		src        func(t *testing.T) []byte
		width      int
		wantW      int
		wantH      int
		wantFormat string
	}{
		{name: "png downscale", src: func(t *testing.T) []byte { return encodePNG(t, sample(1000, 500)) }, width: 500, wantW: 500, wantH: 250, wantFormat: "png"},
		{name: "png upscale", src: func(t *testing.T) []byte { return encodePNG(t, sample(50, 100)) }, width: 100, wantW: 100, wantH: 200, wantFormat: "png"},
		{name: "jpeg stays jpeg", src: func(t *testing.T) []byte { return encodeJPEG(t, sample(400, 300)) }, width: 100, wantW: 100, wantH: 75, wantFormat: "jpeg"},
		{name: "thin strip keeps 1px height", src: func(t *testing.T) []byte { return encodePNG(t, sample(1000, 1)) }, width: 100, wantW: 100, wantH: 1, wantFormat: "png"},
	}

	r := NewResizer()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Resize(tt.src(t), tt.width)
			require.NoError(t, err)

			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
		})
	}
}

func TestResizer_Errors(t *testing.T) {
	tests := []struct {
		name        string
		src         []byte
		width       int
		unsupported bool
	}{
		{name: "not an image", src: []byte("definitely not an image"), width: 100, unsupported: true},
		{name: "zero width", src: encodePNG(t, sample(10, 10)), width: 0},
		{name: "declares 10000x10000", src: pngHeader(10000, 10000), width: 100, unsupported: true},
		{name: "declares 65535x65535", src: pngHeader(65535, 65535), width: 100, unsupported: true},
		{name: "one pixel over the cap", src: pngHeader(MaxPixels/1000+1, 1000), width: 100, unsupported: true},
	}

	r := NewResizer()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resize(tt.src, tt.width)
			require.Error(t, err)
			if tt.unsupported {
				require.ErrorIs(t, err, ErrUnsupported)
			}
		})
	}
}
