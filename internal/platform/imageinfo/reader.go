package imageinfo

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnknownFormat is returned when the file is not an image any registered decoder recognizes.
var ErrUnknownFormat = errors.New("unknown image format")

// UnknownFormatError names the file that could not be identified. It matches ErrUnknownFormat.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("cannot identify image file '%s'", e.Name)
}

// Is reports whether target is ErrUnknownFormat.
func (e *UnknownFormatError) Is(target error) bool {
	return target == ErrUnknownFormat
}

// Metadata describes an image without its pixel data.
type Metadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// Reader reads image headers from the filesystem.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read decodes only the header of the image at path and returns its dimensions and format tag.
func (r *Reader) Read(ctx context.Context, path string) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f, path)
}

// Decode reads image metadata from src. name is only used in error messages.
func Decode(src io.Reader, name string) (*Metadata, error) {
	cfg, format, err := image.DecodeConfig(bufio.NewReader(src))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, &UnknownFormatError{Name: name}
		}
		return nil, fmt.Errorf("failed to decode image header of '%s': %w", name, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image '%s' has invalid dimensions %dx%d", name, cfg.Width, cfg.Height)
	}
	return &Metadata{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: strings.ToUpper(format),
	}, nil
}

// Hash calculates the SHA256 hash of the image data.
func Hash(imageData []byte) string {
	hash := sha256.Sum256(imageData)
	return hex.EncodeToString(hash[:])
}

// HashFile calculates the SHA256 hash of the file at path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return Hash(data), nil
}
