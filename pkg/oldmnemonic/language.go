package oldmnemonic

import (
	"strings"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Language names a legacy word list.
type Language string

// LanguageEnglish is the only language the legacy scheme shipped with.
const LanguageEnglish Language = "english"

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

// ParseLanguage normalizes a language name. Whether the language is
// registered is decided by the Registry.
func ParseLanguage(name string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(name)))
	if lang == "" {
		return "", kiterr.WithDetails(kiterr.ErrUnknownLanguage, map[string]string{"language": name})
	}
	return lang, nil
}
