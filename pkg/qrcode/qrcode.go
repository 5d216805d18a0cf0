package qr

import (
	"bytes"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

type Config struct {
	Content       string
	LogoPath      string
	Size          int
	LogoScale     float64
	Background    color.Color
	Foreground    color.Color
	RecoveryLevel int
	QuietZone     int // Size of quiet zone around QR code
}

// Generate creates a QR code with the given configuration and returns it as a byte slice
func (c *Config) Generate() ([]byte, error) {
	code, err := qrcode.New(c.Content, qrcode.RecoveryLevel(c.RecoveryLevel))
	if err != nil {
		return nil, err
	}

	totalSize := c.Size + 2*c.QuietZone
	matrix := code.Bitmap()
	moduleSize := float64(c.Size) / float64(len(matrix))

	dc := gg.NewContext(totalSize, totalSize)
	dc.SetColor(c.Background)
	dc.Clear()

	// qrcode already surrounds the bitmap with its own quiet zone modules;
	// draw every dark module as a filled square scaled into the inner area.
	dc.SetColor(c.Foreground)
	for y, row := range matrix {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := float64(c.QuietZone) + float64(x)*moduleSize
			py := float64(c.QuietZone) + float64(y)*moduleSize
			dc.DrawRectangle(px, py, moduleSize+0.5, moduleSize+0.5)
			dc.Fill()
		}
	}

	if c.LogoPath != "" {
		if err := c.drawLogo(dc, totalSize); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawLogo embeds a circular logo at the center of the code. The recovery
// level has to be high enough to survive the covered modules.
func (c *Config) drawLogo(dc *gg.Context, totalSize int) error {
	logo, err := gg.LoadImage(c.LogoPath)
	if err != nil {
		return err
	}

	logoSize := int(float64(c.Size) * c.LogoScale)
	resized := resize.Resize(uint(logoSize), uint(logoSize), logo, resize.Lanczos3)

	cx := float64(totalSize) / 2
	cy := float64(totalSize) / 2
	radius := float64(logoSize) / 2

	// Background disc so the logo never sits on top of dark modules.
	dc.SetColor(c.Background)
	dc.DrawCircle(cx, cy, radius+4)
	dc.Fill()

	dc.DrawCircle(cx, cy, radius)
	dc.Clip()
	dc.DrawImageAnchored(resized, int(cx), int(cy), 0.5, 0.5)
	dc.ResetClip()

	return nil
}
