package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go-smf/config"
	"go-smf/debug"
	"go-smf/input"
	"go-smf/midi"
	"go-smf/smf"
	"go-smf/theme"
	"go-smf/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file.mid]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.BoolVar(&cfg.Decoder.RunningStatus, "running-status", cfg.Decoder.RunningStatus, "accept running status in track data")
	flag.StringVar(&cfg.Decoder.SysEx, "sysex", cfg.Decoder.SysEx, "sysex payload handling: scan or legacy")
	flag.BoolVar(&cfg.Decoder.VerifyTrackLength, "verify-length", cfg.Decoder.VerifyTrackLength, "fail when a track does not match its declared length")
	flag.StringVar(&cfg.Text.Encoding, "encoding", cfg.Text.Encoding, "meta text encoding: utf-8, shift-jis or latin1")
	flag.StringVar(&cfg.UI.Palette, "palette", cfg.UI.Palette, "GIMP palette file for colors")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write a debug log to ~/.config/go-smf/debug.log")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		path = cfg.UI.LastFile
	}
	if path == "" {
		flag.Usage()
		return fmt.Errorf("no file given")
	}

	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}

	opts, err := cfg.DecoderOptions()
	if err != nil {
		return err
	}
	text, err := midi.NewTextDecoder(cfg.Text.Encoding)
	if err != nil {
		return err
	}

	palette := theme.Plasma()
	if cfg.UI.Palette != "" {
		if palette, err = theme.LoadGPL(cfg.UI.Palette); err != nil {
			return err
		}
	}

	rc, err := input.Open(path)
	if err != nil {
		return err
	}
	file, err := smf.NewDecoder(rc, opts).Decode()
	rc.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	file.Filename = path
	debug.Log("main", "decoded %s: %d tracks", path, len(file.Tracks))

	cfg.UI.LastFile = path
	if err := cfg.Save(); err != nil {
		debug.Log("main", "save config: %v", err)
	}

	m := tui.NewModel(file, theme.New(palette), text)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
