package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ezrec/ubf/cpu"
	"github.com/ezrec/ubf/emulator"
	"github.com/ezrec/ubf/io"
)

// stepsPerFrame is the machine clock per 60fps frame (~600 kHz).
const stepsPerFrame = 10000

// windowRows / windowCols define the visible slice of data memory.
const (
	windowRows = 8
	windowCols = 16
)

type Game struct {
	emu  *emulator.Emulator
	text string // Output collected so far.
}

func (g *Game) Update() error {
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 256 {
			_ = g.emu.Queue.Feed(byte(r))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		_ = g.emu.Queue.Feed(10) // ASCII newline
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		_ = g.emu.Queue.Feed(8) // ASCII backspace
	}

	for i := 0; i < stepsPerFrame; i++ {
		done, _ := g.emu.Tick()
		if done {
			break
		}
	}

	g.text += string(g.emu.Queue.Drain())

	return nil
}

// windowBase returns the first data address of the visible window: the
// aligned row containing dp, centered vertically, modulo data memory.
func windowBase(dp uint16) int {
	base := (int(dp)/windowCols - windowRows/2) * windowCols
	return ((base % cpu.DATA_SIZE) + cpu.DATA_SIZE) % cpu.DATA_SIZE
}

func (g *Game) Draw(screen *ebiten.Image) {
	vm := g.emu.Cpu

	msg := fmt.Sprintf("ip=%03X dp=%04X ticks=%d\n\n", vm.Ip, vm.Dp, vm.Ticks)

	base := windowBase(vm.Dp)
	for row := 0; row < windowRows; row++ {
		addr := (base + row*windowCols) % cpu.DATA_SIZE
		msg += fmt.Sprintf("%04X:", addr)
		for col := 0; col < windowCols; col++ {
			cell := (addr + col) % cpu.DATA_SIZE
			mark := " "
			if uint16(cell) == vm.Dp {
				mark = ">"
			}
			msg += fmt.Sprintf("%s%02X", mark, vm.Data[cell])
		}
		msg += "\n"
	}

	msg += "\n" + g.text

	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 512, 384
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %v program.b", os.Args[0])
	}
	filename := os.Args[1]

	source, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	bc := &cpu.Compiler{}
	prog, err := bc.Compile(string(source))
	if err != nil {
		log.Fatalf("Compilation failed: %v", err)
	}

	emu := emulator.NewEmulator()
	emu.Program = prog

	// Keyboard and screen talk through the in-memory queue.
	emu.Devices = []io.Device{&emu.Queue}

	if err := emu.Reset(); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(512, 384)
	ebiten.SetWindowTitle("uBF Desktop")

	if err := ebiten.RunGame(&Game{emu: emu}); err != nil {
		log.Fatal(err)
	}
}
