package quiz

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	certWidth  = 800
	certHeight = 600
)

var (
	certBackground = color.RGBA{R: 255, G: 253, B: 245, A: 255}
	certNavy       = color.RGBA{R: 26, G: 54, B: 93, A: 255}
	certGold       = color.RGBA{R: 184, G: 134, B: 11, A: 255}
	certText       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// CertificateData is what gets printed on a certificate.
type CertificateData struct {
	Number     string
	Holder     string
	Difficulty string
	Score      float64
	Grade      string
	IssuedAt   string
}

// PNGRenderer draws certificates with gg. Without a TTF it falls back to the
// built-in bitmap face, which has no Hangul glyphs.
type PNGRenderer struct {
	font *truetype.Font
}

func NewPNGRenderer(fontPath string) (*PNGRenderer, error) {
	if fontPath == "" {
		return &PNGRenderer{}, nil
	}

	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}

	return &PNGRenderer{font: parsed}, nil
}

func (r *PNGRenderer) face(size float64) font.Face {
	if r.font == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(r.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Render writes the certificate PNG to path, creating parent directories.
func (r *PNGRenderer) Render(path string, data CertificateData) error {
	dc := gg.NewContext(certWidth, certHeight)

	dc.SetColor(certBackground)
	dc.Clear()

	dc.SetColor(certNavy)
	dc.SetLineWidth(8)
	dc.DrawRectangle(20, 20, certWidth-40, certHeight-40)
	dc.Stroke()

	dc.SetColor(certGold)
	dc.SetLineWidth(2)
	dc.DrawRectangle(36, 36, certWidth-72, certHeight-72)
	dc.Stroke()

	cx := float64(certWidth) / 2

	dc.SetColor(certNavy)
	dc.SetFontFace(r.face(44))
	dc.DrawStringAnchored("금융 지식 인증서", cx, 120, 0.5, 0.5)

	dc.SetColor(certGold)
	dc.SetFontFace(r.face(18))
	dc.DrawStringAnchored("Certificate of Financial Literacy", cx, 165, 0.5, 0.5)

	dc.SetColor(certText)
	dc.SetFontFace(r.face(30))
	dc.DrawStringAnchored(data.Holder, cx, 240, 0.5, 0.5)

	dc.SetFontFace(r.face(20))
	lines := []string{
		fmt.Sprintf("난이도: %s", data.Difficulty),
		fmt.Sprintf("점수: %.1f점", data.Score),
		fmt.Sprintf("등급: %s", data.Grade),
	}
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, 310+float64(i)*40, 0.5, 0.5)
	}

	dc.SetFontFace(r.face(16))
	dc.DrawStringAnchored(fmt.Sprintf("발급일: %s", data.IssuedAt), cx, 470, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("인증번호: %s", data.Number), cx, 500, 0.5, 0.5)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create certificate dir: %w", err)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save certificate: %w", err)
	}

	return nil
}
