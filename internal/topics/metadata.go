package topics

import (
	"regexp"
	"strings"
)

// dateToken matches dates written as "12 March 2024".
var dateToken = regexp.MustCompile(`(\d{1,2} \w+ \d{4})`)

type scanState int

const (
	stateIdle scanState = iota
	stateCollecting
)

type lineKind int

const (
	kindOther lineKind = iota
	kindOpening
	kindDeadline
	kindDestination
	kindHeader
)

// metadataScanner attributes call announcements to the headers that follow them.
type metadataScanner struct {
	state   scanState
	current Metadata
	out     MetadataMap
}

type transition func(s *metadataScanner, line string) scanState

// metadataTransitions is the scanner's state table. Missing entries leave the
// state unchanged and ignore the line.
var metadataTransitions = map[scanState]map[lineKind]transition{
	stateIdle: {
		kindOpening: (*metadataScanner).openCall,
	},
	stateCollecting: {
		kindOpening:     (*metadataScanner).openCall,
		kindDeadline:    (*metadataScanner).setDeadline,
		kindDestination: (*metadataScanner).setDestination,
		kindHeader:      (*metadataScanner).attribute,
	},
}

func classifyMetadataLine(line string) lineKind {
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, "opening:"):
		return kindOpening
	case strings.HasPrefix(lower, "deadline"):
		return kindDeadline
	case strings.HasPrefix(lower, "destination"):
		return kindDestination
	case headerLine.MatchString(line):
		return kindHeader
	}
	return kindOther
}

func (s *metadataScanner) step(line string) {
	next, ok := metadataTransitions[s.state][classifyMetadataLine(line)]
	if !ok {
		return
	}
	s.state = next(s, line)
}

func (s *metadataScanner) openCall(line string) scanState {
	s.current.OpeningDate = findDate(line)
	s.current.Deadline = nil
	return stateCollecting
}

func (s *metadataScanner) setDeadline(line string) scanState {
	s.current.Deadline = findDate(line)
	return stateCollecting
}

func (s *metadataScanner) setDestination(line string) scanState {
	s.current.Destination = strPtr(afterColon(line))
	return stateCollecting
}

// attribute snapshots the current announcement under the header's code. The
// announcement stays live, so later headers receive it too until the next opening.
func (s *metadataScanner) attribute(line string) scanState {
	code, _, _ := parseHeader(line)
	s.out[code] = s.current
	return stateCollecting
}

// ScanMetadata walks the reflowed lines and returns the metadata attributed to
// each header code encountered after an "Opening:" announcement.
func ScanMetadata(lines []string) MetadataMap {
	s := &metadataScanner{state: stateIdle, out: MetadataMap{}}
	for _, line := range lines {
		s.step(line)
	}
	return s.out
}

func findDate(line string) *string {
	m := dateToken.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return strPtr(m[1])
}

// afterColon returns the trimmed text after the first colon, or the whole
// trimmed line when there is none.
func afterColon(line string) string {
	if _, rest, ok := strings.Cut(line, ":"); ok {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(line)
}
