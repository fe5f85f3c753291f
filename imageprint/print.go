// Package imageprint draws tile textures on the terminal. Debug aid for
// inspecting what the ingestion pipeline produced; no API stability
// guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"

	"github.com/gookit/color"
)

// Mode selects the escape-sequence dialect used for output.
type Mode int

const (
	// Mode24Bit shades each pixel with a 24-bit background escape.
	Mode24Bit Mode = iota
	// Mode256Color shades via the closest xterm 256-color entry.
	Mode256Color
	// ModeNoColor uses plain ascii shading only.
	ModeNoColor
	// ModeRasTerm emits native raster escapes (Kitty, iTerm2, sixel)
	// when the terminal supports them.
	ModeRasTerm
	// ModeITerm emits iTerm2 inline-image escapes.
	ModeITerm
)

// Options controls Print. The zero value prints 24-bit colored blanks.
type Options struct {
	Mode Mode
	// Blanks draws two spaces per pixel instead of ascii art shading.
	Blanks bool
	// Name labels the image in escape dialects that carry one.
	Name string
}

type dumper interface {
	Printf(s string, arg ...interface{})
}

type fmtDumperT struct{}

func (fmtDumperT) Printf(s string, arg ...interface{}) {
	fmt.Printf(s, arg...)
}

var fmtDumper fmtDumperT

// Print draws the image per the options.
func Print(i image.Image, o Options) {
	switch o.Mode {
	case ModeRasTerm:
		printRasTerm(i)
	case ModeITerm:
		printITerm(i, o.Name)
	default:
		printShaded(i, o)
	}
}

func printShaded(i image.Image, o Options) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			shade(i.At(x, y), o)
		}
		if o.Mode != ModeNoColor {
			fmt.Printf("\x1b[0m")
		}
		fmt.Printf("\n")
	}
}

func shade(col ic.Color, o Options) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		fmt.Printf("\x1b[0m  ")
		return
	}

	var d dumper
	switch o.Mode {
	case ModeNoColor:
		d = &fmtDumper
	case Mode24Bit:
		fmt.Printf("\x1b[48;2;%d;%d;%dm", uint8(cR>>8), uint8(cG>>8), uint8(cB>>8))
		d = &fmtDumper
	default:
		d = color.RGB(uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), true)
	}

	if o.Blanks {
		d.Printf("  ")
	} else {
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			d.Printf("..")
		case a < 64:
			d.Printf("--")
		case a < 128:
			d.Printf("==")
		default:
			d.Printf("##")
		}
	}

	if o.Mode == Mode24Bit {
		fmt.Printf("\x1b[0m")
	}
}

// printITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func printITerm(i image.Image, fn string) {
	if !isTermItermWez() {
		return
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	png.Encode(bEnc, i)
	fmt.Printf("\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, len(b.String()), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
}
