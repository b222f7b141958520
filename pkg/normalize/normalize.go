// Package normalize cleans retailer listing and query text into a canonical
// lower-case form that every downstream comparison works on.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxPasses bounds phrase removal. Each pass only ever shortens the text, so
// realistic phrase tables reach a fixed point in one or two passes.
const maxPasses = 8

// DefaultPhrases are the retail noise patterns stripped from listing text.
// Patterns apply to already folded text: lower case, no punctuation except a
// decimal point between digits.
var DefaultPhrases = []string{
	`clubcard price`,
	`clubcard`,
	`nectar price`,
	`price lock`,
	`rollback`,
	`half price`,
	`multibuy`,
	`special offer`,
	`offer`,
	`deal`,
	`special`,
	`was \d+(?:\.\d+)?p?`,
	`now \d+(?:\.\d+)?p?`,
	`was`,
	`now`,
	`any \d+ for \d+(?:\.\d+)?p?`,
	`\d+ for \d+(?:\.\d+)?p?`,
	`save \d+(?:\.\d+)?p?`,
	`save`,
	`clearance`,
	`new`,
	`improved`,
	`formula`,
}

// PromotionalPhrases flag listings whose price is likely a temporary promotion.
var PromotionalPhrases = []string{
	`clubcard price`,
	`nectar price`,
	`rollback`,
	`half price`,
	`multibuy`,
	`was \d+`,
	`\d+ for \d+`,
	`save \d+`,
	`special offer`,
}

var whitespace = regexp.MustCompile(`\s+`)

// Normalizer strips noise phrases and punctuation from text. It is safe for
// concurrent use; its pattern tables are immutable after New.
type Normalizer struct {
	phrases []*regexp.Regexp
	promo   []*regexp.Regexp
}

// New compiles the given noise phrases. A nil slice selects DefaultPhrases.
func New(phrases []string) (*Normalizer, error) {
	if phrases == nil {
		phrases = DefaultPhrases
	}

	compiled, err := compileWords(phrases)
	if err != nil {
		return nil, fmt.Errorf("compiling noise phrases: %w", err)
	}

	promo, err := compileWords(PromotionalPhrases)
	if err != nil {
		return nil, fmt.Errorf("compiling promotional phrases: %w", err)
	}

	return &Normalizer{phrases: compiled, promo: promo}, nil
}

// MustNew is New that panics on error, for package-level defaults and tests.
func MustNew(phrases []string) *Normalizer {
	n, err := New(phrases)
	if err != nil {
		panic(err)
	}
	return n
}

func compileWords(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("empty pattern")
		}
		re, err := regexp.Compile(`(?i)(?:^|\b)` + p + `(?:\b|$)`)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Normalize returns the canonical form of text. The result only contains
// lower-case letters, digits, single spaces and decimal points between digits.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func (n *Normalizer) Normalize(text string) string {
	s := clean(text)
	for range maxPasses {
		next := n.strip(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// IsPromotional reports whether raw listing text carries a promotional price label.
func (n *Normalizer) IsPromotional(raw string) bool {
	s := clean(raw)
	for _, re := range n.promo {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Clean folds case, strips diacritics and punctuation but leaves noise
// phrases in place. Rule tables use it so brand aliases compare against
// normalized text without losing words that happen to be noise phrases.
func Clean(text string) string {
	return clean(text)
}

// Tokens splits normalized text into words.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

func (n *Normalizer) strip(s string) string {
	for _, re := range n.phrases {
		s = re.ReplaceAllString(s, " ")
	}
	return collapse(dropStrayDots(s))
}

// clean folds case, removes diacritics and apostrophes and turns all other
// punctuation into spaces.
func clean(text string) string {
	// Casers and transformers keep state, so each call builds its own.
	folded := cases.Fold().String(text)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, folded); err == nil {
		folded = stripped
	}

	rs := []rune(folded)
	var b strings.Builder
	b.Grow(len(folded))
	for i, r := range rs {
		switch {
		case r == '\'' || r == '’' || r == '`':
			continue
		case r == '×':
			b.WriteRune('x')
		case r == '.':
			if i > 0 && i < len(rs)-1 && unicode.IsDigit(rs[i-1]) && unicode.IsDigit(rs[i+1]) {
				b.WriteRune('.')
			} else {
				b.WriteRune(' ')
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
	}
	return collapse(b.String())
}

// dropStrayDots removes decimal points that lost a neighbouring digit after
// phrase removal.
func dropStrayDots(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	bs := []byte(s)
	var b strings.Builder
	b.Grow(len(bs))
	for i, c := range bs {
		if c == '.' && (i == 0 || i == len(bs)-1 || !isDigit(bs[i-1]) || !isDigit(bs[i+1])) {
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
