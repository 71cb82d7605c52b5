// Command ledpreview plays the animations of a ledtween config in the
// terminal instead of streaming them to a strip.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matt-g-everett/ledtween/animator"
	"github.com/matt-g-everett/ledtween/preview"
	"github.com/matt-g-everett/ledtween/stream"
)

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	logPath := flag.String("log", "", "Log file; logging is discarded when empty.")
	flag.Parse()

	// The terminal belongs to the preview.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "ledpreview")
		if err != nil {
			panic(err)
		}
		defer f.Close()
	}

	f, err := os.Open(*configPath)
	if err != nil {
		panic(err)
	}
	config, err := stream.ReadConfig(f)
	f.Close()
	if err != nil {
		panic(err)
	}

	animator.SetGlobalFPSTarget(config.Animator.FPS)
	animator.SetFrameSkip(*config.Animator.FrameSkip)

	controller, err := stream.NewController(config.Animations)
	if err != nil {
		panic(err)
	}
	controller.Start()

	model := preview.New(controller, config.Strip.Pixels, config.Strip.FrameRate)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		panic(err)
	}
}
