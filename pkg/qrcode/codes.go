package qr

import "image/color"

// CheckInPass is the preset for participant check-in passes scanned at the door.
var CheckInPass = Config{
	Size:          512,
	Background:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Foreground:    color.RGBA{R: 20, G: 20, B: 20, A: 255},
	RecoveryLevel: 2,
	QuietZone:     16,
}

// Validation is the preset for the validation code printed on certificates.
var Validation = Config{
	Size:          256,
	LogoScale:     0.2,
	Background:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Foreground:    color.RGBA{R: 40, G: 40, B: 160, A: 255},
	RecoveryLevel: 3,
	QuietZone:     8,
}
