package smf

import "fmt"

// SysExMode selects how SystemExclusive payloads are read.
type SysExMode uint8

const (
	// SysExScan reads payload bytes up to and including the terminating 0xF7.
	SysExScan SysExMode = iota
	// SysExLegacy reads no payload at all, leaving the SysEx body in the
	// stream to be decoded as further events.
	SysExLegacy
)

func (m SysExMode) String() string {
	switch m {
	case SysExScan:
		return "scan"
	case SysExLegacy:
		return "legacy"
	}
	return fmt.Sprintf("SysExMode(%d)", uint8(m))
}

// ParseSysExMode parses the names returned by SysExMode.String. An empty
// name selects SysExScan.
func ParseSysExMode(name string) (SysExMode, error) {
	switch name {
	case "", "scan":
		return SysExScan, nil
	case "legacy":
		return SysExLegacy, nil
	}
	return 0, fmt.Errorf("unknown sysex mode %q", name)
}

// Options controls decoder behaviour. The zero value decodes without
// running status, scans SysEx payloads and skips the track length check.
type Options struct {
	// RunningStatus lets a data byte in status position reuse the previous
	// channel status of the same track.
	RunningStatus bool

	SysEx SysExMode

	// VerifyTrackLength fails a track whose events do not consume exactly
	// the declared chunk length.
	VerifyTrackLength bool

	// SplitChannelMode reports control changes 120-127 as ChannelModeMessages.
	SplitChannelMode bool
}
