package language

import (
	"strings"

	"golang.org/x/text/language"
)

// Code is a supported two-letter work-order language.
type Code string

const (
	Portuguese Code = "pt"
	English    Code = "en"
	Spanish    Code = "es"
	Polish     Code = "pl"
)

type entry struct {
	code    Code
	display string
	voice   language.Tag // BCP-47 locale used for narration voices
	words   []string
}

var languages = []entry{
	{Portuguese, "Portuguese", language.MustParse("pt-BR"), []string{"portuguese", "portugues"}},
	{English, "English", language.MustParse("en-US"), []string{"english"}},
	{Spanish, "Spanish", language.MustParse("es-ES"), []string{"spanish", "espanol"}},
	{Polish, "Polish", language.MustParse("pl-PL"), []string{"polish", "polski"}},
}

var (
	byCode map[Code]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[Code]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode[e.code] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

// Parse resolves a raw language value (two-letter code or full word, any
// case) to a supported Code.
func Parse(raw string) (Code, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", false
	}
	if e, ok := byCode[Code(normalized)]; ok {
		return e.code, true
	}
	if e, ok := byWord[normalized]; ok {
		return e.code, true
	}
	return "", false
}

// All returns the supported codes in stable order.
func All() []Code {
	out := make([]Code, 0, len(languages))
	for _, e := range languages {
		out = append(out, e.code)
	}
	return out
}

// Display returns the human-readable name for a code.
func (c Code) Display() string {
	if e, ok := byCode[c]; ok {
		return e.display
	}
	return string(c)
}

// Voice returns the BCP-47 locale string used to pick a narration voice.
func (c Code) Voice() string {
	if e, ok := byCode[c]; ok {
		return e.voice.String()
	}
	return ""
}

func (c Code) String() string { return string(c) }
