package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"sync"

	"github.com/disintegration/imaging"
)

// Logo bounds in pixels; PDFs scale it down to the header height
const (
	logoMaxWidth  = 480
	logoMaxHeight = 160
)

// ImageService prepares the issuer logo printed on receipts
type ImageService struct {
	logoPath string

	once    sync.Once
	logoPNG []byte
	logoErr error
}

func NewImageService(logoPath string) *ImageService {
	return &ImageService{logoPath: logoPath}
}

// HasLogo reports whether a logo is configured
func (s *ImageService) HasLogo() bool {
	return s != nil && s.logoPath != ""
}

// LogoPNG returns the configured logo resized to fit the receipt header, encoded as PNG.
// The file is read once; later calls return the same bytes.
func (s *ImageService) LogoPNG() ([]byte, error) {
	if !s.HasLogo() {
		return nil, nil
	}
	s.once.Do(func() {
		s.logoPNG, s.logoErr = s.loadLogo()
	})
	return s.logoPNG, s.logoErr
}

// LogoDataURI returns the logo as a data URI for HTML documents, or "" without a logo
func (s *ImageService) LogoDataURI() (string, error) {
	data, err := s.LogoPNG()
	if err != nil || len(data) == 0 {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *ImageService) loadLogo() ([]byte, error) {
	f, err := os.Open(s.logoPath)
	if err != nil {
		return nil, fmt.Errorf("error al abrir logo: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("error al decodificar logo: %w", err)
	}
	return ResizeLogo(img)
}

// ResizeLogo shrinks img to the logo bounds keeping its aspect ratio and encodes it as PNG
func ResizeLogo(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() > logoMaxWidth || b.Dy() > logoMaxHeight {
		img = imaging.Fit(img, logoMaxWidth, logoMaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("error al codificar logo: %w", err)
	}
	return buf.Bytes(), nil
}
