// Command nesrun runs a cartridge's CPU and PPU core in real time behind
// an ebiten window. It drives the console's 1.79MHz CPU clock frame by
// frame, advancing at least as many CPU cycles as a 60Hz NES frame needs
// and letting the PPU's own dot clock fall out of Console.Step's 1:3
// coupling. Actual picture generation belongs to a fuller renderer; this
// window exists to prove the core runs, not to play games on.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/9Tempest/NES/cartridge"
	"github.com/9Tempest/NES/console"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// cyclesPerFrame approximates one NTSC NES frame (1.789773MHz CPU clock
// over 60.0988Hz) closely enough to keep vblank timing stable.
const cyclesPerFrame = 29780

var romPath = flag.String("rom", "", "path to an iNES (.nes) ROM file")

type game struct {
	sys *console.Console
}

func (g *game) Update() error {
	spent := 0
	for spent < cyclesPerFrame {
		spent += g.sys.Step()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, g.sys.CPU.String())
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256, 240
}

func main() {
	flag.Parse()
	if *romPath == "" {
		log.Fatal("nesrun: -rom is required")
	}

	f, err := os.Open(*romPath)
	if err != nil {
		log.Fatalf("nesrun: opening %s: %v", *romPath, err)
	}
	defer f.Close()

	cart, err := cartridge.LoadINES(f)
	if err != nil {
		log.Fatalf("nesrun: loading %s: %v", *romPath, err)
	}

	ebiten.SetWindowSize(512, 480)
	ebiten.SetWindowTitle("nesrun")
	if err := ebiten.RunGame(&game{sys: console.New(cart)}); err != nil {
		log.Fatal(err)
	}
}
