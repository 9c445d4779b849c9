package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestToWebP_ShrinksLongSide(t *testing.T) {
	out, err := ToWebP(pngOf(t, 1024, 256), MaxSide)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 512, cfg.Width)
	require.Equal(t, 128, cfg.Height)
}

func TestToWebP_KeepsSmallImages(t *testing.T) {
	out, err := ToWebP(pngOf(t, 100, 80), MaxSide)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 100, cfg.Width)
	require.Equal(t, 80, cfg.Height)
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), MaxSide)
	require.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestObjectBase(t *testing.T) {
	require.Equal(t, "https://cdn.example.com",
		objectBase(S3Config{PublicBaseURL: "https://cdn.example.com/"}))
	require.Equal(t, "http://minio:9000/avatars",
		objectBase(S3Config{Endpoint: "http://minio:9000", Bucket: "avatars"}))
	require.Equal(t, "https://avatars.s3.us-east-1.amazonaws.com",
		objectBase(S3Config{Bucket: "avatars", Region: "us-east-1"}))
	require.Equal(t, "providers/abc/profile.webp", ProfileImageKey("abc"))
}
