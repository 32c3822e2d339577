// Command nesdebug is an interactive terminal front end for stepping a
// cartridge's CPU one instruction at a time, inspecting registers, flags
// and a page of memory as it runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/9Tempest/NES/cartridge"
	"github.com/9Tempest/NES/console"
	tea "github.com/charmbracelet/bubbletea"
)

var romPath = flag.String("rom", "", "path to an iNES (.nes) ROM file")

func main() {
	flag.Parse()
	if *romPath == "" {
		log.Fatal("nesdebug: -rom is required")
	}

	f, err := os.Open(*romPath)
	if err != nil {
		log.Fatalf("nesdebug: opening %s: %v", *romPath, err)
	}
	defer f.Close()

	cart, err := cartridge.LoadINES(f)
	if err != nil {
		log.Fatalf("nesdebug: loading %s: %v", *romPath, err)
	}

	sys := console.New(cart)
	p := tea.NewProgram(newModel(sys))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
