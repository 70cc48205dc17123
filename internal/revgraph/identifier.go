package revgraph

import (
	"regexp"
	"strconv"
	"strings"
)

// relativePattern matches a relative identifier body: an optional symbol
// (any run of characters other than @, +, -) followed by a sign and a
// run of digits. The symbol half may be empty ("+2" walks from context).
var relativePattern = regexp.MustCompile(`^([^@+-]*)([+-])(\d+)$`)

// reservedTokens are the absolute-form symbols with special meaning,
// distinct from a literal or partial revision id. "current" is a
// supplemental token (recovered from the original implementation, see
// SPEC_FULL.md §4) resolved against caller-supplied context rather than
// the map.
var reservedTokens = map[string]bool{
	"":       true, // empty body after an "@" with nothing following, or null
	"base":   true,
	"head":   true,
	"heads":  true,
	"null":   true,
	"current": true,
}

// RelativeOffset is a parsed relative-form identifier: "{symbol?}+N" or
// "{symbol?}-N", optionally branch-qualified.
type RelativeOffset struct {
	Branch string
	Symbol string
	Offset int
}

// AbsoluteIdentifier is a parsed absolute-form identifier: a reserved
// token or a literal/partial revision id, optionally branch-qualified.
type AbsoluteIdentifier struct {
	Branch string
	Token  string
}

// ParsedIdentifier is the result of parsing one identifier string: it is
// exactly one of Relative or Absolute.
type ParsedIdentifier struct {
	Relative *RelativeOffset
	Absolute *AbsoluteIdentifier
}

func (p *ParsedIdentifier) IsReserved(token string) bool {
	return p.Absolute != nil && p.Absolute.Token == token
}

// ParseIdentifiers accepts nil, a single identifier string, or an
// ordered collection of identifier strings, per the engine's identifier
// contract. Any other shape is a fatal RevisionError.
func ParseIdentifiers(raw any) ([]*ParsedIdentifier, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		p, err := parseOne(v)
		if err != nil {
			return nil, err
		}
		return []*ParsedIdentifier{p}, nil
	case []string:
		out := make([]*ParsedIdentifier, 0, len(v))
		for _, s := range v {
			p, err := parseOne(s)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	default:
		return nil, newRevisionErr("revision identifier is not a string")
	}
}

// ParseIdentifier is a convenience wrapper over ParseIdentifiers for the
// common single-string case.
func ParseIdentifier(s string) (*ParsedIdentifier, error) {
	return parseOne(s)
}

func parseOne(s string) (*ParsedIdentifier, error) {
	branch := ""
	body := s
	if idx := strings.Index(s, "@"); idx >= 0 {
		branch = s[:idx]
		body = s[idx+1:]
	}

	if m := relativePattern.FindStringSubmatch(body); m != nil {
		symbol, sign, digits := m[1], m[2], m[3]
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, newRevisionErr("invalid relative offset in identifier %q", s)
		}
		if sign == "-" {
			n = -n
		}
		return &ParsedIdentifier{Relative: &RelativeOffset{Branch: branch, Symbol: symbol, Offset: n}}, nil
	}

	return &ParsedIdentifier{Absolute: &AbsoluteIdentifier{Branch: branch, Token: body}}, nil
}

func isReservedToken(token string) bool {
	return reservedTokens[token]
}
