// Package extraction turns a model's free-form reply into PII records.
//
// The reply is untrusted text. Parsing never fails: the whole reply is first
// checked against the NIL token, then every line is classified as blank, a
// "Label: value" pair, or a malformed line that is kept under a generic kind.
package extraction

import (
	"strings"

	"piiguard/internal/domain"
)

const separator = ":"

// LineClass is the category a single reply line falls into.
type LineClass int

const (
	LineBlank LineClass = iota
	LinePair
	LineMalformed
	// LineDropped is a pair whose label or value is empty after trimming.
	LineDropped
)

func (c LineClass) String() string {
	switch c {
	case LineBlank:
		return "blank"
	case LinePair:
		return "pair"
	case LineMalformed:
		return "malformed"
	case LineDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// ClassifyLine categorizes one reply line and returns the record it yields,
// if any. Pairs are split on the first separator only, so values may contain
// colons (times, URLs, IPv6 addresses).
func ClassifyLine(line string) (LineClass, domain.PIIRecord) {
	line = strings.TrimSpace(line)
	if line == "" {
		return LineBlank, domain.PIIRecord{}
	}

	kind, value, found := strings.Cut(line, separator)
	if !found {
		return LineMalformed, domain.PIIRecord{Kind: domain.KindFallback, Value: line}
	}

	kind, value = strings.TrimSpace(kind), strings.TrimSpace(value)
	if kind == "" || value == "" {
		return LineDropped, domain.PIIRecord{}
	}
	return LinePair, domain.PIIRecord{Kind: kind, Value: value}
}

// IsNoPII reports whether the whole reply is the NIL token.
func IsNoPII(reply string) bool {
	return strings.TrimSpace(reply) == domain.NoPIIToken
}

// ParseReply converts a model reply into an ExtractionResult. Records keep the
// order in which they appear in the reply; nothing is deduplicated.
func ParseReply(reply string) domain.ExtractionResult {
	if IsNoPII(reply) {
		return domain.NoPIIResult()
	}

	var records []domain.PIIRecord
	for _, line := range splitLines(reply) {
		class, rec := ClassifyLine(line)
		switch class {
		case LinePair, LineMalformed:
			records = append(records, rec)
		}
	}
	return domain.ExtractionResult{Records: records}
}

// splitLines splits on \n, \r\n and bare \r.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
