package certificate

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	qr "github.com/thalyssonDEV/EventSync/pkg/qrcode"
)

const (
	pageWidth  = 1056
	pageHeight = 816
)

// Data holds everything printed on a certificate.
type Data struct {
	ParticipantName string
	EventTitle      string
	ValidationCode  string
	WorkloadHours   int
	IssueDate       time.Time
}

// Renderer draws participation certificates as PNG files. The validation
// code is embedded both as text and as a QR code pointing at the public
// validation endpoint.
type Renderer struct {
	OutputDir         string
	ValidationBaseURL string
	FontPath          string // optional TTF; falls back to the built-in face
	LogoPath          string // optional logo embedded in the QR code
}

func NewRenderer(outputDir, validationBaseURL, fontPath, logoPath string) *Renderer {
	wd, _ := os.Getwd()
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(wd, outputDir)
	}
	return &Renderer{
		OutputDir:         outputDir,
		ValidationBaseURL: validationBaseURL,
		FontPath:          fontPath,
		LogoPath:          logoPath,
	}
}

// Render draws the certificate and writes it to the output directory,
// returning the file path.
func (r *Renderer) Render(data Data) (string, error) {
	dc := gg.NewContext(pageWidth, pageHeight)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Frame
	dc.SetRGB(0.2, 0.2, 0.8)
	dc.SetLineWidth(5)
	dc.DrawRectangle(30, 30, pageWidth-60, pageHeight-60)
	dc.Stroke()

	dc.SetRGB(0.1, 0.1, 0.1)
	r.setFace(dc, 40)
	dc.DrawStringAnchored("CERTIFICATE OF PARTICIPATION", pageWidth/2, 150, 0.5, 0.5)

	r.setFace(dc, 24)
	dc.DrawStringAnchored("This certifies that", pageWidth/2, 250, 0.5, 0.5)

	r.setFace(dc, 30)
	dc.DrawStringAnchored(data.ParticipantName, pageWidth/2, 300, 0.5, 0.5)

	r.setFace(dc, 24)
	dc.DrawStringAnchored("successfully took part in the event:", pageWidth/2, 350, 0.5, 0.5)

	r.setFace(dc, 28)
	dc.DrawStringAnchored(data.EventTitle, pageWidth/2, 400, 0.5, 0.5)

	r.setFace(dc, 16)
	dc.DrawString(fmt.Sprintf("Workload: %d hours", data.WorkloadHours), 100, pageHeight-200)
	dc.DrawString(fmt.Sprintf("Issue date: %s", data.IssueDate.Format("02/01/2006")), 100, pageHeight-175)
	dc.DrawString(fmt.Sprintf("Validation code: %s", data.ValidationCode), 100, pageHeight-150)

	if err := r.drawValidationQR(dc, data.ValidationCode); err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.OutputDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(r.OutputDir, fmt.Sprintf("cert_%s.png", data.ValidationCode))
	if err := dc.SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Renderer) drawValidationQR(dc *gg.Context, code string) error {
	cfg := qr.Validation
	cfg.Content = fmt.Sprintf("%s/%s", r.ValidationBaseURL, code)
	cfg.LogoPath = r.LogoPath
	cfg.Size = 140

	data, err := cfg.Generate()
	if err != nil {
		return err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	dc.DrawImage(img, pageWidth-230, pageHeight-260)
	r.setFace(dc, 14)
	dc.DrawString("Validate certificate", pageWidth-215, pageHeight-85)
	return nil
}

// setFace loads the configured font at the given size; gg's built-in
// face is used when no font is configured or loading fails.
func (r *Renderer) setFace(dc *gg.Context, size float64) {
	if r.FontPath == "" {
		return
	}
	if err := dc.LoadFontFace(r.FontPath, size); err != nil {
		r.FontPath = ""
	}
}
