package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gwillem/handwave/pkg/anim"
	"github.com/gwillem/handwave/pkg/hand"
	"github.com/gwillem/handwave/pkg/wire"
)

type ShowCommand struct {
	File string `long:"file" short:"f" description:"JSON show file (default: the built-in choreography)"`
}

func (c *ShowCommand) Execute(args []string) error {
	cfg, err := hand.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No configuration found. Run 'handwave setup' first.")
		os.Exit(1)
	}

	actions := anim.DefaultShow()
	if c.File != "" {
		actions, err = anim.LoadShow(c.File)
		if err != nil {
			return err
		}
	}
	if err := anim.ValidateActions(&cfg.Profile, actions); err != nil {
		return err
	}

	fmt.Printf("Connecting to %s @ %d baud...\n", cfg.Port, cfg.Baud)
	port, err := wire.Open(cfg.Port, cfg.Baud)
	if err != nil {
		log.Fatalf("Failed to open port: %v", err)
	}
	defer port.Close()

	state := hand.NewState(&cfg.Profile)
	cmdr := wire.NewCommander(state)
	cmdr.Attach(port)

	loop := anim.NewLoop()
	loop.Start()
	defer loop.Close()

	player := anim.NewPlayer(loop, cmdr, &cfg.Profile, state)
	disconnected := make(chan error, 1)
	cmdr.OnDisconnect = func(err error) {
		player.Stop()
		select {
		case disconnected <- err:
		default:
		}
	}

	go func() {
		for msg := range player.Logs() {
			fmt.Println(msg)
		}
	}()

	player.PushInit()
	time.Sleep(500 * time.Millisecond)

	if err := player.RunShow(actions); err != nil {
		return err
	}

	// RunShow marshals onto the loop; give it a beat before polling.
	time.Sleep(200 * time.Millisecond)
	for player.Busy() {
		select {
		case err := <-disconnected:
			return fmt.Errorf("hand disconnected: %w", err)
		case <-time.After(100 * time.Millisecond):
		}
	}

	fmt.Println("Show complete.")
	return nil
}
