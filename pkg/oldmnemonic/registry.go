package oldmnemonic

import (
	"io/fs"
	"sync"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Loader produces the word list for one language.
type Loader interface {
	Language() Language
	Load() (*WordList, error)
}

// FSLoader reads a word list file from a file system.
type FSLoader struct {
	Lang Language
	FS   fs.FS
	Path string
	Size int
}

// Language implements Loader.
func (l FSLoader) Language() Language {
	return l.Lang
}

// Load implements Loader.
func (l FSLoader) Load() (*WordList, error) {
	data, err := fs.ReadFile(l.FS, l.Path)
	if err != nil {
		return nil, kiterr.WithCause(
			kiterr.WithDetails(kiterr.ErrWordListInvalid, map[string]string{
				"language": string(l.Lang),
				"path":     l.Path,
			}),
			err,
		)
	}
	return ParseWordList(l.Lang, data, l.Size)
}

// WordsLoader serves an in-memory word list.
type WordsLoader struct {
	Lang  Language
	Words []string
}

// Language implements Loader.
func (l WordsLoader) Language() Language {
	return l.Lang
}

// Load implements Loader.
func (l WordsLoader) Load() (*WordList, error) {
	return NewWordList(l.Lang, l.Words, 0)
}

// entry loads its list at most once; the result, good or bad, is kept.
type entry struct {
	loader Loader
	once   sync.Once
	list   *WordList
	err    error
}

func (e *entry) get() (*WordList, error) {
	e.once.Do(func() {
		e.list, e.err = e.loader.Load()
	})
	return e.list, e.err
}

// Registry holds word list loaders in registration order. Lists load lazily
// on first use and are shared read-only afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries []*entry
	byLang  map[Language]*entry
}

// NewRegistry builds a registry from loaders. A later loader for the same
// language replaces an earlier one.
func NewRegistry(loaders ...Loader) *Registry {
	r := &Registry{byLang: make(map[Language]*entry)}
	for _, l := range loaders {
		r.Register(l)
	}
	return r
}

// Register adds or replaces the loader for l.Language().
func (r *Registry) Register(l Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := &entry{loader: l}
	if old, ok := r.byLang[l.Language()]; ok {
		for i, cur := range r.entries {
			if cur == old {
				r.entries[i] = e
			}
		}
	} else {
		r.entries = append(r.entries, e)
	}
	r.byLang[l.Language()] = e
}

// Languages returns the registered languages in order.
func (r *Registry) Languages() []Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Language, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.loader.Language()
	}
	return out
}

// Get returns the word list for lang, loading it on first use.
func (r *Registry) Get(lang Language) (*WordList, error) {
	r.mu.RLock()
	e, ok := r.byLang[lang]
	r.mu.RUnlock()
	if !ok {
		return nil, kiterr.WithDetails(kiterr.ErrUnknownLanguage, map[string]string{
			"language": string(lang),
		})
	}
	return e.get()
}

// all loads every registered list in order.
func (r *Registry) all() ([]*WordList, error) {
	r.mu.RLock()
	entries := append([]*entry(nil), r.entries...)
	r.mu.RUnlock()

	lists := make([]*WordList, 0, len(entries))
	for _, e := range entries {
		wl, err := e.get()
		if err != nil {
			return nil, err
		}
		lists = append(lists, wl)
	}
	return lists, nil
}

//nolint:gochecknoglobals // process-wide registry of embedded lists
var defaultRegistry = NewRegistry(
	FSLoader{Lang: LanguageEnglish, FS: wordlistFS, Path: "wordlists/english.txt", Size: EnglishWordCount},
)

// DefaultRegistry returns the registry of embedded word lists.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
