package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/leandrodaf/midikeys/sdk/keybind"
)

// printListener prints every status change and sounding note.
type printListener struct{}

func (printListener) OnStatus(s contracts.Status) { fmt.Printf("[%s] %s\n", s.State, s.Detail) }

func (printListener) OnNote(name string, active bool) {
	if active {
		fmt.Println("note", name)
	}
}

func main() {
	log := logger.NewZapLogger()

	cfg := contracts.DefaultConfig()
	cfg.GateEnabled = false

	translator, err := keybind.NewTranslator(
		contracts.WithTranslatorLogger(log),
		contracts.WithTranslatorLogLevel(contracts.InfoLevel),
		contracts.WithStatusListener(printListener{}),
		contracts.WithConfig(cfg),
	)
	if err != nil {
		log.Error("Failed to initialize translator", log.Field().Error("error", err))
		return
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := translator.Close(ctx); err != nil {
			log.Error("Shutdown failed", log.Field().Error("error", err))
		}
	}()

	devices, err := translator.Devices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	if err := translator.StartLive(devices[0].Name); err != nil {
		log.Error("Failed to start live input", log.Field().Error("error", err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	fmt.Println("Translating notes from", devices[0].Name, "into keystrokes... Press Ctrl+C to exit.")
	<-ctx.Done()
}
