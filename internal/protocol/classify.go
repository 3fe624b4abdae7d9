package protocol

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Prefixes the engine puts on log lines.  A line carrying one of these is never treated as a structured message.
const (
	PrefixLog   = "LOG:"
	PrefixError = "ERROR:"
	PrefixDebug = "DEBUG:"
)

// LogLine is a diagnostic line written by the engine
type LogLine struct {
	Level string // "info", "error" or "debug"
	Text  string
}

// InboundKind tells what a received line turned out to be
type InboundKind int

const (
	InboundIgnored InboundKind = iota
	InboundEvent
	InboundLog
)

// Inbound is a classified line received from the engine
type Inbound struct {
	Kind  InboundKind
	Event Event
	Log   LogLine
}

// AsLogLine checks text against the log prefixes
func AsLogLine(text string) (LogLine, bool) {
	switch {
	case strings.HasPrefix(text, PrefixLog):
		return LogLine{Level: "info", Text: text}, true
	case strings.HasPrefix(text, PrefixError):
		return LogLine{Level: "error", Text: text}, true
	case strings.HasPrefix(text, PrefixDebug):
		return LogLine{Level: "debug", Text: text}, true
	}
	return LogLine{}, false
}

// Classify inspects a single line read from the engine channel.  Log lines (either bare text or JSON strings) short
// circuit before any structured parsing.  Objects without a valid discriminant, unknown kinds and anything else that
// cannot be understood are reported as InboundIgnored; the channel is shared so such lines are expected.
func Classify(line []byte) Inbound {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Inbound{Kind: InboundIgnored}
	}

	switch line[0] {
	case '{':
		event, err := DecodeEvent(line)
		if err != nil {
			return Inbound{Kind: InboundIgnored}
		}
		return Inbound{Kind: InboundEvent, Event: event}
	case '"':
		var text string
		if err := json.Unmarshal(line, &text); err != nil {
			return Inbound{Kind: InboundIgnored}
		}
		return classifyText(text)
	default:
		return classifyText(string(line))
	}
}

func classifyText(text string) Inbound {
	if logLine, ok := AsLogLine(text); ok {
		return Inbound{Kind: InboundLog, Log: logLine}
	}
	return Inbound{Kind: InboundIgnored}
}
