package delivery

import (
	"bytes"
	"fmt"
	"image"
	// Register the decoders proof uploads may use.
	_ "image/jpeg"
	_ "image/png"
)

// MaxProofImageBytes bounds an upload.
const MaxProofImageBytes = 10 << 20

// ProofImage is an uploaded photo that decoded as JPEG or PNG.
type ProofImage struct {
	data   []byte
	format string
}

func NewProofImage(data []byte) (ProofImage, error) {
	if len(data) == 0 {
		return ProofImage{}, fmt.Errorf("%w: empty upload", ErrInvalidProofImage)
	}
	if len(data) > MaxProofImageBytes {
		return ProofImage{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidProofImage, len(data), MaxProofImageBytes)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ProofImage{}, fmt.Errorf("%w: %v", ErrInvalidProofImage, err)
	}
	if format != "jpeg" && format != "png" {
		return ProofImage{}, fmt.Errorf("%w: unsupported format %s", ErrInvalidProofImage, format)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return ProofImage{}, fmt.Errorf("%w: empty dimensions", ErrInvalidProofImage)
	}
	return ProofImage{data: data, format: format}, nil
}

func (p ProofImage) Data() []byte { return p.data }

func (p ProofImage) ContentType() string {
	return "image/" + p.format
}

func (p ProofImage) Extension() string {
	if p.format == "jpeg" {
		return ".jpg"
	}
	return "." + p.format
}
