package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Setup   SetupCommand   `command:"setup" description:"Pick the hand's serial port and save the configuration"`
	Control ControlCommand `command:"control" alias:"tui" description:"Interactive hand control and animations"`
	Show    ShowCommand    `command:"show" description:"Run a scripted animation show"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Handwave - animation controller for the multi-servo robotic hand"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
