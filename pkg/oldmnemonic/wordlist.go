package oldmnemonic

import (
	"bufio"
	"bytes"
	"embed"
	"strconv"
	"strings"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// EnglishWordCount is the size of the English legacy word list.
const EnglishWordCount = 1626

//go:embed wordlists/*.txt
var wordlistFS embed.FS

// WordList is an ordered, immutable word list with a reverse index.
type WordList struct {
	lang  Language
	words []string
	index map[string]int
}

// NewWordList validates words and builds the reverse index. The list must be
// non-empty, free of blanks and duplicates, and exactly size long when size
// is positive.
func NewWordList(lang Language, words []string, size int) (*WordList, error) {
	if len(words) == 0 || (size > 0 && len(words) != size) {
		return nil, kiterr.WithDetails(kiterr.ErrWordListInvalid, map[string]string{
			"language": string(lang),
			"reason":   "expected " + strconv.Itoa(size) + " words, got " + strconv.Itoa(len(words)),
		})
	}

	wl := &WordList{
		lang:  lang,
		words: make([]string, len(words)),
		index: make(map[string]int, len(words)),
	}
	for i, w := range words {
		if w == "" {
			return nil, kiterr.WithDetails(kiterr.ErrWordListInvalid, map[string]string{
				"language": string(lang),
				"reason":   "blank word at line " + strconv.Itoa(i+1),
			})
		}
		if _, dup := wl.index[w]; dup {
			return nil, kiterr.WithDetails(kiterr.ErrWordListInvalid, map[string]string{
				"language": string(lang),
				"reason":   "duplicate word " + strconv.Quote(w),
			})
		}
		wl.words[i] = w
		wl.index[w] = i
	}
	return wl, nil
}

// ParseWordList reads one word per line. Surrounding whitespace and a
// trailing blank line are ignored.
func ParseWordList(lang Language, data []byte, size int) (*WordList, error) {
	var words []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		words = append(words, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, kiterr.WithCause(kiterr.ErrWordListInvalid, err)
	}
	for len(words) > 0 && words[len(words)-1] == "" {
		words = words[:len(words)-1]
	}
	return NewWordList(lang, words, size)
}

// Language returns the list's language.
func (wl *WordList) Language() Language {
	return wl.lang
}

// Len returns N, the number of words.
func (wl *WordList) Len() int {
	return len(wl.words)
}

// Word returns the word at position i.
func (wl *WordList) Word(i int) (string, bool) {
	if i < 0 || i >= len(wl.words) {
		return "", false
	}
	return wl.words[i], true
}

// Index returns the position of word.
func (wl *WordList) Index(word string) (int, bool) {
	i, ok := wl.index[word]
	return i, ok
}

// ContainsAll reports whether every word resolves in the list.
func (wl *WordList) ContainsAll(words []string) bool {
	for _, w := range words {
		if _, ok := wl.index[w]; !ok {
			return false
		}
	}
	return true
}

// Words returns a copy of the words in order.
func (wl *WordList) Words() []string {
	return append([]string(nil), wl.words...)
}
