// Package symbols resolves variable tokens (GI_123, PC_456.2, ~GR_5,
// literal {…}/[…], operator tokens) to a human-readable description,
// grounded on original_source/.../helpers/var_lookup.py and
// defs.py:split_var_token. Describe never raises; an unparseable or
// unresolved token is returned unchanged (spec.md §4.2 "Failure mode").
package symbols

import (
	"strconv"
	"strings"

	"github.com/mikegtech/insbridge-decoder/internal/entities"
)

var operatorPhrases = map[string]string{
	"=":  "[equals]",
	">":  "[greater than]",
	"<":  "[less than]",
	"<=": "[less than or equal to]",
	">=": "[greater than or equal to]",
	"!=": "[not equal to]",
	"<>": "[not equal to]",
	"@":  "[bitwise AND]",
	"^":  "[bitwise OR]",
}

// variablePrefixes is the closed set of two-letter scoping codes a
// variable token may carry.
var variablePrefixes = map[string]bool{
	"LS": true, "PL": true, "GL": true, "GI": true, "GR": true, "PR": true,
	"PC": true, "GC": true, "PP": true, "GP": true, "IG": true, "LX": true,
	"IX": true, "PQ": true, "GQ": true,
}

// token is the parsed shape of a variable reference: prefix, numeric id,
// and an optional sub-id after a '.'.
type token struct {
	prefix string
	id     int
	subID  int
	hasSub bool
}

// splitVarToken parses "PC_456.2", "~GI_123", or "DGR_4740" into its
// prefix/id/sub-id parts. It strips one leading '~' or 'D' indirection
// marker, then requires the closed "<2 letters>_<digits>[.<digits>]"
// grammar; any other shape is a MalformedToken (spec.md §7.1) and returns
// ok=false so the caller can fall back to the raw text.
func splitVarToken(raw string) (token, bool) {
	s := raw
	if strings.HasPrefix(s, "~") || strings.HasPrefix(s, "D") {
		s = s[1:]
	}
	if len(s) < 4 || s[2] != '_' {
		return token{}, false
	}
	prefix := s[:2]
	if !variablePrefixes[prefix] {
		return token{}, false
	}
	rest := s[3:]
	idPart := rest
	subPart := ""
	hasSub := false
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		idPart = rest[:dot]
		subPart = rest[dot+1:]
		hasSub = true
	}
	if idPart == "" || !isAllDigits(idPart) {
		return token{}, false
	}
	if hasSub && (subPart == "" || !isAllDigits(subPart)) {
		return token{}, false
	}
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return token{}, false
	}
	t := token{prefix: prefix, id: id, hasSub: hasSub}
	if hasSub {
		sub, err := strconv.Atoi(subPart)
		if err != nil {
			return token{}, false
		}
		t.subID = sub
	}
	return t, true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Describe returns a human-readable description for a variable token (or
// operator, or bracketed literal), consulting scope and program in the
// order spec.md §4.2 defines. It never raises: any step that can't
// resolve falls through to returning the raw token text.
func Describe(raw string, scope entities.Scope, program *entities.ProgramVersion) string {
	// 1) operator tokens
	if phrase, ok := operatorPhrases[raw]; ok {
		return phrase
	}

	// 2) bracketed literal
	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		inner := strings.TrimSpace(raw)
		if len(inner) >= 2 {
			inner = strings.TrimSpace(inner[1 : len(inner)-1])
		} else {
			inner = ""
		}
		if inner == "" {
			return "NULL"
		}
		return inner
	}

	// 3) parse prefix/id/sub-id
	tok, ok := splitVarToken(raw)
	if !ok {
		return raw
	}

	// 4) GI/LX/IX → program's global-input dictionary, matched by (index, line)
	if tok.prefix == "GI" || tok.prefix == "LX" || tok.prefix == "IX" {
		if program != nil {
			for _, iv := range program.DataDictionary.Inputs {
				if iv.Index == tok.id && iv.Line == program.Line {
					if iv.Description != "" {
						return iv.Description
					}
					return raw
				}
			}
		}
		return raw
	}

	// 5) LS → "Results of Step <id>"
	if tok.prefix == "LS" {
		return "Results of Step " + strconv.Itoa(tok.id)
	}

	// 6) scan scope for a matching dependency by family
	switch tok.prefix {
	case "PL", "GL", "PQ", "GQ":
		for _, dep := range scope {
			if dep != nil && dep.IsTableVariable() && dep.Index == tok.id {
				if dep.Description != "" {
					return dep.Description
				}
				return raw
			}
		}
	case "GR", "PR":
		for _, dep := range scope {
			if dep != nil && dep.IsResultVariable() && dep.Index == tok.id {
				if dep.Description != "" {
					return dep.Description
				}
				return raw
			}
		}
	case "PC", "GC", "PP", "GP":
		for _, dep := range scope {
			if dep != nil && dep.IsCalculatedVariable() && dep.HasCalcIndex && dep.CalcIndex == tok.id {
				if dep.Description != "" {
					return dep.Description
				}
				return raw
			}
		}
	}

	// 7) fall back to the raw token
	return raw
}
