package dispatch

import (
	"fmt"
	"strings"
)

// PatternError is returned by Compile when a route pattern is malformed.
// Route registration treats it as a fatal configuration error.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("dispatch: invalid pattern %q: %s", e.Pattern, e.Reason)
}

type segmentKind uint8

// Segment kinds are ordered by specificity: a literal segment beats a
// capture, which beats a wildcard, when two patterns compete for the
// same path.
const (
	segmentLiteral segmentKind = iota
	segmentCapture
	segmentWildcard
)

// segment is one element of a compiled pattern. For literals, name holds
// the exact text to match; for captures and wildcards it holds the binding
// name, which may be empty for the anonymous forms ":" and "*".
type segment struct {
	kind segmentKind
	name string
}

// Pattern is a compiled route template. A pattern is an ordered sequence of
// path segments, each of which is a literal (matched exactly,
// case-sensitive), a named capture ":name" (consumes exactly one non-empty
// segment and binds it), an anonymous capture ":" (consumes one segment
// without binding), or a wildcard "*" / "*name" (consumes all remaining
// segments, including none, and is only legal in the final position).
//
// Patterns are immutable once compiled and safe for concurrent use.
type Pattern struct {
	raw      string
	segments []segment
	wildcard bool
}

// Compile parses a route pattern. It returns a *PatternError if a wildcard
// appears anywhere but the final position, since segments after a wildcard
// could never be reached.
func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{raw: pattern}

	for _, seg := range splitPath(pattern) {
		if p.wildcard {
			return nil, &PatternError{Pattern: pattern, Reason: "wildcard must be the final segment"}
		}

		switch {
		case strings.HasPrefix(seg, "*"):
			p.wildcard = true
			p.segments = append(p.segments, segment{kind: segmentWildcard, name: seg[1:]})
		case strings.HasPrefix(seg, ":"):
			p.segments = append(p.segments, segment{kind: segmentCapture, name: seg[1:]})
		default:
			p.segments = append(p.segments, segment{kind: segmentLiteral, name: seg})
		}
	}

	return p, nil
}

// String returns the pattern as it was written.
func (p *Pattern) String() string {
	return p.raw
}

// Match compares path against the pattern segment by segment, returning the
// extracted captures on success. A trailing slash on path is ignored, so
// "/foo/" and "/foo" compare equal. Captures accept any non-empty segment;
// validating or parsing the captured text is the caller's concern.
func (p *Pattern) Match(path string) (Captures, bool) {
	segs := splitPath(path)

	fixed := len(p.segments)
	if p.wildcard {
		fixed--
		if len(segs) < fixed {
			return Captures{}, false
		}
	} else if len(segs) != fixed {
		return Captures{}, false
	}

	var caps Captures
	for i := 0; i < fixed; i++ {
		ps := p.segments[i]
		switch ps.kind {
		case segmentLiteral:
			if segs[i] != ps.name {
				return Captures{}, false
			}
		case segmentCapture:
			if ps.name != "" {
				caps.bind(ps.name, segs[i])
			}
		}
	}

	if p.wildcard {
		caps.hasWildcard = true
		caps.wildcard = strings.Join(segs[fixed:], "/")
		if name := p.segments[fixed].name; name != "" {
			caps.bind(name, caps.wildcard)
		}
	}

	return caps, true
}

// shape returns the pattern's structural identity with binding names erased.
// Two patterns with the same shape registered in one table would make the
// same concrete request ambiguous, so shapes must be unique per table.
func (p *Pattern) shape() string {
	if len(p.segments) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte('/')
		switch s.kind {
		case segmentLiteral:
			b.WriteString(s.name)
		case segmentCapture:
			b.WriteByte(':')
		case segmentWildcard:
			b.WriteByte('*')
		}
	}

	return b.String()
}

// moreSpecific reports whether a should be preferred over b when both match
// the same path. The first position where the two shapes differ decides:
// literal beats capture beats wildcard. Past that, a pattern without a
// wildcard beats one with, and a longer fixed part beats a shorter one.
// Binding names never participate, so the ordering is deterministic and
// independent of registration order.
func moreSpecific(a, b *Pattern) bool {
	for i := 0; i < len(a.segments) && i < len(b.segments); i++ {
		if a.segments[i].kind != b.segments[i].kind {
			return a.segments[i].kind < b.segments[i].kind
		}
	}

	if a.wildcard != b.wildcard {
		return !a.wildcard
	}

	if len(a.segments) != len(b.segments) {
		return len(a.segments) > len(b.segments)
	}

	return a.shape() < b.shape()
}

// splitPath splits a path into its non-empty segments. Leading, trailing,
// and repeated slashes produce empty segments, which are dropped; this is
// what makes "/foo/" and "/foo" route identically.
func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
