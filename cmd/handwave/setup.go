package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/handwave/pkg/hand"
	"github.com/gwillem/handwave/pkg/wire"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type SetupCommand struct {
	Baud int `long:"baud" default:"115200" description:"Serial baud rate"`
}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Handwave Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━"))
	fmt.Println()

	ports, err := wire.ListPorts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
		os.Exit(1)
	}

	var options []huh.Option[string]
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}
		options = append(options, huh.NewOption(port, port))
	}

	if len(options) == 0 {
		fmt.Println("No serial ports found.")
		fmt.Println("Make sure the hand is connected and powered on.")
		os.Exit(1)
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which port is the hand on?").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		os.Exit(1)
	}

	if hand.ConfigExists() {
		overwrite := true
		confirm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("%s already exists. Overwrite?", hand.DefaultConfigFile)).
					Value(&overwrite),
			),
		)
		if err := confirm.Run(); err != nil || !overwrite {
			fmt.Println("Keeping existing configuration.")
			return nil
		}
	}

	cfg := &hand.Config{
		Port:    selected,
		Baud:    c.Baud,
		Profile: hand.DefaultProfile(),
	}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", hand.DefaultConfigFile)
	fmt.Println()
	fmt.Println("Start controlling the hand with: " + headerStyle.Render("handwave control"))

	return nil
}
