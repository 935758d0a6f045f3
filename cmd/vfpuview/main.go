// Command vfpuview renders the VFPU register cube live as an ebiten
// window: one tile per float32 slot, colored by magnitude, refreshed as
// the interpreted program runs. There's no pixel output to emulate here,
// so the cube itself becomes the picture.
package main

import (
	"flag"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"github.com/pspgo/vfpu/regfile"
	"github.com/pspgo/vfpu/vfpu"
)

const (
	tileSize = 24
	cols     = 4 * 8 // 8 matrices laid out side by side, 4 columns each
	rows     = 4
)

var scriptFile = flag.String("script", "", "Optional path to a sequence of register pokes. The file is not read; a non-empty value only turns off the live-updating demo pattern.")

// view adapts a vfpu.Machine to ebiten.Game.
type view struct {
	vm    *vfpu.Machine
	ticks int
}

func newView() *view {
	vm := vfpu.New(vfpu.WithLogger(logrus.StandardLogger()))
	return &view{vm: vm}
}

// Layout returns the fixed pixel size of the cube grid regardless of the
// window's outer dimensions, so ebiten scales rather than reflows it.
func (v *view) Layout(outsideW, outsideH int) (int, int) {
	return cols * tileSize, rows * tileSize
}

// Update advances a small demo animation over the register cube each
// frame when no script was given.
func (v *view) Update() error {
	v.ticks++
	if *scriptFile == "" {
		lane := v.ticks % 4
		reg := (v.ticks / 4) % 32
		v.vm.Regs.WriteScalar(reg*4+lane, float32(math.Sin(float64(v.ticks)/20.0)))
	}
	return nil
}

// Draw paints one tile per register-cube slot, colored by the slot's
// current magnitude - NaN and Inf slots render in a distinct warning
// color so a stuck prefix bug is visible at a glance.
func (v *view) Draw(screen *ebiten.Image) {
	for matrix := 0; matrix < 8; matrix++ {
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				reg := (matrix << 2) | row
				val := v.vm.Regs.ReadScalar(reg*4 + col)
				x := (matrix*4 + col) * tileSize
				y := row * tileSize
				ebitenutil.DrawRect(screen, float64(x), float64(y), tileSize-1, tileSize-1, tileColor(val))
			}
		}
	}
}

func tileColor(v float32) color.Color {
	if v != v { // NaN
		return color.RGBA{0xFF, 0x00, 0xFF, 0xFF}
	}
	bits := math.Float32bits(v)
	if bits&0x7F800000 == 0x7F800000 { // Inf
		return color.RGBA{0xFF, 0xA5, 0x00, 0xFF}
	}
	mag := math.Min(1, math.Abs(float64(v)))
	g := uint8(mag * 255)
	return color.RGBA{0x10, g, 0xFF - g, 0xFF}
}

func main() {
	flag.Parse()

	v := newView()

	ebiten.SetWindowSize(cols*tileSize*2, rows*tileSize*2)
	ebiten.SetWindowTitle("vfpuview - register cube")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
