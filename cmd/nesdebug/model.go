package main

import (
	"fmt"
	"strings"

	"github.com/9Tempest/NES/console"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

const memPageRows = 16

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	flagOnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	flagOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type model struct {
	sys     *console.Console
	memPage uint16
	lastErr string
}

func newModel(sys *console.Console) *model {
	return &model{sys: sys}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s", "enter":
		m.step()
	case "pgup":
		m.memPage -= 0x0100
	case "pgdown":
		m.memPage += 0x0100
	}
	return m, nil
}

func (m *model) step() {
	defer func() {
		if r := recover(); r != nil {
			m.lastErr = fmt.Sprintf("%v", r)
		}
	}()
	m.sys.Step()
}

func (m *model) View() string {
	left := paneStyle.Render(m.registers())
	right := paneStyle.Render(m.memory())
	view := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if m.lastErr != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, "error: "+m.lastErr)
	}
	return view + "\n[s/enter] step  [pgup/pgdown] scroll memory  [q] quit\n"
}

func (m *model) registers() string {
	cpu := m.sys.CPU
	flags := []struct {
		name string
		on   bool
	}{
		{"N", cpu.P&0x80 != 0}, {"V", cpu.P&0x40 != 0}, {"_", cpu.P&0x20 != 0},
		{"B", cpu.P&0x10 != 0}, {"D", cpu.P&0x08 != 0}, {"I", cpu.P&0x04 != 0},
		{"Z", cpu.P&0x02 != 0}, {"C", cpu.P&0x01 != 0},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", spew.Sdump(cpu))
	for _, f := range flags {
		if f.on {
			b.WriteString(flagOnStyle.Render(f.name))
		} else {
			b.WriteString(flagOffStyle.Render(f.name))
		}
		b.WriteString(" ")
	}
	return b.String()
}

func (m *model) memory() string {
	var b strings.Builder
	for row := 0; row < memPageRows; row++ {
		addr := m.memPage + uint16(row*16)
		fmt.Fprintf(&b, "%04X: ", addr)
		for col := 0; col < 16; col++ {
			fmt.Fprintf(&b, "%02X ", m.sys.Read(addr+uint16(col)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
