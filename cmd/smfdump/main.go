package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	gosmf "gitlab.com/gomidi/midi/v2/smf"

	"go-smf/config"
	"go-smf/debug"
	"go-smf/input"
	"go-smf/midi"
	"go-smf/smf"
	"go-smf/theme"
)

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}

	if err := run(os.Stdout, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("smfdump - Standard MIDI File inspector")
	fmt.Println("")
	fmt.Println("Usage: smfdump <command> [flags] <file.mid>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  header  - Print the header chunk")
	fmt.Println("  tracks  - List tracks with names and event counts")
	fmt.Println("  events  - Print every event (-track N for one track, -merged for one timeline)")
	fmt.Println("  json    - Write the decoded file as JSON")
	fmt.Println("  verify  - Cross-check against the gomidi SMF reader")
}

type dumpFlags struct {
	track  int
	merged bool
	color  bool
	opts   smf.Options
	text   *midi.TextDecoder
}

func run(w io.Writer, cmd string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	var df dumpFlags
	fs.IntVar(&df.track, "track", 0, "only show this track (1-based)")
	fs.BoolVar(&df.merged, "merged", false, "merge all tracks into one timeline")
	fs.BoolVar(&df.color, "color", false, "color events by category")
	fs.BoolVar(&cfg.Decoder.RunningStatus, "running-status", cfg.Decoder.RunningStatus, "accept running status in track data")
	fs.StringVar(&cfg.Decoder.SysEx, "sysex", cfg.Decoder.SysEx, "sysex payload handling: scan or legacy")
	fs.BoolVar(&cfg.Decoder.VerifyTrackLength, "verify-length", cfg.Decoder.VerifyTrackLength, "fail when a track does not match its declared length")
	fs.BoolVar(&cfg.Decoder.SplitChannelMode, "split-mode", cfg.Decoder.SplitChannelMode, "report controllers 120-127 as channel mode messages")
	fs.StringVar(&cfg.Text.Encoding, "encoding", cfg.Text.Encoding, "meta text encoding: utf-8, shift-jis or latin1")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write a debug log to ~/.config/go-smf/debug.log")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%s: expected one file argument", cmd)
	}
	path := fs.Arg(0)

	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}

	if df.opts, err = cfg.DecoderOptions(); err != nil {
		return err
	}
	if df.text, err = midi.NewTextDecoder(cfg.Text.Encoding); err != nil {
		return err
	}

	data, err := input.ReadAll(path)
	if err != nil {
		return err
	}
	f, err := smf.NewDecoder(bytes.NewReader(data), df.opts).Decode()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	f.Filename = path

	switch cmd {
	case "header":
		return writeHeader(w, f)
	case "tracks":
		return writeTracks(w, f, df.text)
	case "events":
		return writeEvents(w, f, df)
	case "json":
		return writeJSON(w, f)
	case "verify":
		return verify(w, data, f)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func writeHeader(w io.Writer, f *smf.File) error {
	h := f.Header
	_, err := fmt.Fprintf(w, "file:     %s\nlength:   %d\nformat:   %d (%s)\ntracks:   %d\ndivision: %d (%s)\n",
		f.Filename, h.Length, h.Format, h.Format, h.NumTracks, int16(h.Division), h.Division)
	return err
}

func writeTracks(w io.Writer, f *smf.File, text *midi.TextDecoder) error {
	for i, t := range f.Tracks {
		info := midi.Summarize(i, t, text)
		status := "ok"
		if !info.Complete {
			status = "no end-of-track"
		}
		if _, err := fmt.Fprintf(w, "%3d  %-24q events=%-6d length=%-8d end=%-8d channels=%v %s\n",
			i+1, info.Name, info.Events, t.Length, info.EndTick, info.Channels, status); err != nil {
			return err
		}
	}
	return nil
}

func writeEvents(w io.Writer, f *smf.File, df dumpFlags) error {
	var events []midi.Event
	switch {
	case df.merged:
		events = midi.Flatten(f)
	case df.track > 0:
		if df.track > len(f.Tracks) {
			return fmt.Errorf("track %d out of range (file has %d)", df.track, len(f.Tracks))
		}
		events = midi.TrackEvents(df.track-1, f.Tracks[df.track-1])
	default:
		for i, t := range f.Tracks {
			events = append(events, midi.TrackEvents(i, t)...)
		}
	}

	th := theme.New(nil)
	for _, ev := range events {
		line := fmt.Sprintf("%3d %8d %6d  %-34s %s", ev.Track+1, ev.Tick, ev.Delta, ev.Type, midi.Describe(ev.TrackEvent, df.text))
		if df.color {
			line = lipgloss.NewStyle().Foreground(th.Category(midi.CategoryOf(ev.Type))).Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type jsonEvent struct {
	Delta   uint32 `json:"delta"`
	Kind    string `json:"kind"`
	Channel *uint8 `json:"channel,omitempty"`
	Data    []byte `json:"data,omitempty"`
}

type jsonTrack struct {
	Length uint32      `json:"length"`
	Events []jsonEvent `json:"events"`
}

type jsonFile struct {
	Filename  string      `json:"filename,omitempty"`
	Format    uint16      `json:"format"`
	NumTracks uint16      `json:"numTracks"`
	Division  int16       `json:"division"`
	Tracks    []jsonTrack `json:"tracks"`
}

func writeJSON(w io.Writer, f *smf.File) error {
	out := jsonFile{
		Filename:  f.Filename,
		Format:    uint16(f.Header.Format),
		NumTracks: f.Header.NumTracks,
		Division:  int16(f.Header.Division),
	}
	for _, t := range f.Tracks {
		jt := jsonTrack{Length: t.Length, Events: make([]jsonEvent, 0, len(t.Events))}
		for _, ev := range t.Events {
			je := jsonEvent{Delta: ev.Delta, Kind: ev.Type.Kind.String(), Data: ev.Data}
			if ev.Type.HasChannel() {
				ch := ev.Type.Channel
				je.Channel = &ch
			}
			jt.Events = append(jt.Events, je)
		}
		out.Tracks = append(out.Tracks, jt)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type trackDiff struct {
	Track               int
	Events, OtherEvents int
	Ticks, OtherTicks   uint64
}

// compare decodes data with gomidi's reader and lines its tracks up with f.
func compare(data []byte, f *smf.File) ([]trackDiff, error) {
	other, err := gosmf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gomidi: %w", err)
	}
	if len(other.Tracks) != len(f.Tracks) {
		return nil, fmt.Errorf("track count differs: %d here, %d in gomidi", len(f.Tracks), len(other.Tracks))
	}

	diffs := make([]trackDiff, len(f.Tracks))
	for i, t := range f.Tracks {
		d := trackDiff{Track: i, Events: len(t.Events), OtherEvents: len(other.Tracks[i])}
		for _, ev := range t.Events {
			d.Ticks += uint64(ev.Delta)
		}
		for _, ev := range other.Tracks[i] {
			d.OtherTicks += uint64(ev.Delta)
		}
		diffs[i] = d
	}
	return diffs, nil
}

func verify(w io.Writer, data []byte, f *smf.File) error {
	diffs, err := compare(data, f)
	if err != nil {
		return err
	}

	bad := 0
	for _, d := range diffs {
		status := "ok"
		if d.Ticks != d.OtherTicks {
			status = "TICKS DIFFER"
			bad++
		} else if d.Events != d.OtherEvents {
			status = "event count differs"
		}
		if _, err := fmt.Fprintf(w, "%3d  events %d/%d  ticks %d/%d  %s\n",
			d.Track+1, d.Events, d.OtherEvents, d.Ticks, d.OtherTicks, status); err != nil {
			return err
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d tracks disagree on timing", bad)
	}
	return nil
}
