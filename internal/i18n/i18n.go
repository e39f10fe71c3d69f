// Package i18n loads the embedded message catalogs and formats UI text in
// the player's language. English is the base locale; keys missing from
// another locale fall back to it.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

//go:embed locales/*.yaml
var localesFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every locale's messages and the x/text catalog built from
// them.
type Bundle struct {
	tags     []language.Tag
	names    []string
	matcher  language.Matcher
	messages map[string]map[string]string
	catalog  *catalog.Builder
}

var defaultBundle = mustLoad()

func mustLoad() *Bundle {
	b, err := LoadFromFS(localesFS)
	if err != nil {
		panic(err)
	}
	return b
}

// Default returns the bundle built from the embedded catalogs.
func Default() *Bundle {
	return defaultBundle
}

// LoadFromFS reads locales/*.yaml from fsys. The base locale must be
// present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	sort.Strings(paths)

	base := language.Make(types.LanguageEnglish)
	b := &Bundle{
		messages: make(map[string]map[string]string),
		catalog:  catalog.NewBuilder(catalog.Fallback(base)),
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := b.add(path, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.messages[types.LanguageEnglish]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", types.LanguageEnglish)
	}

	// Base locale first so the matcher falls back to it.
	sort.SliceStable(b.names, func(i, j int) bool {
		return b.names[i] == types.LanguageEnglish && b.names[j] != types.LanguageEnglish
	})
	b.tags = make([]language.Tag, len(b.names))
	for i, name := range b.names {
		b.tags[i] = language.Make(name)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) add(path string, file catalogFile) error {
	locale := strings.ToLower(strings.TrimSpace(file.Locale))
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", path)
	}
	if _, exists := b.messages[locale]; exists {
		return fmt.Errorf("catalog %s: locale %q already defined", path, locale)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale %q: %w", path, locale, err)
	}

	msgs := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", path)
		}
		if err := b.catalog.SetString(tag, key, value); err != nil {
			return fmt.Errorf("catalog %s: register %q: %w", path, key, err)
		}
		msgs[key] = value
	}
	b.messages[locale] = msgs
	b.names = append(b.names, locale)
	return nil
}

// Locales returns the loaded locale names, base locale first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Has reports whether key is defined in the base locale.
func (b *Bundle) Has(key string) bool {
	_, ok := b.messages[types.LanguageEnglish][key]
	return ok
}

// Missing returns the base locale keys that locale does not translate.
func (b *Bundle) Missing(locale string) []string {
	own := b.messages[strings.ToLower(locale)]
	var out []string
	for key := range b.messages[types.LanguageEnglish] {
		if _, ok := own[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// Localizer formats messages for one language.
type Localizer struct {
	bundle  *Bundle
	lang    string
	printer *message.Printer
	base    *message.Printer
}

// New returns a Localizer from the default bundle for lang. Unsupported
// languages resolve to English.
func New(lang string) *Localizer {
	return defaultBundle.Localizer(lang)
}

// Localizer returns a Localizer for the closest supported match to lang.
func (b *Bundle) Localizer(lang string) *Localizer {
	idx := 0
	if tag, err := language.Parse(strings.TrimSpace(lang)); err == nil {
		_, idx, _ = b.matcher.Match(tag)
	}
	return &Localizer{
		bundle:  b,
		lang:    b.names[idx],
		printer: message.NewPrinter(b.tags[idx], message.Catalog(b.catalog)),
		base:    message.NewPrinter(b.tags[0], message.Catalog(b.catalog)),
	}
}

// Language returns the resolved language name.
func (l *Localizer) Language() string { return l.lang }

// T formats the message for key. Unknown keys render as the key itself.
func (l *Localizer) T(key string, args ...any) string {
	if _, ok := l.bundle.messages[l.lang][key]; ok {
		return l.printer.Sprintf(key, args...)
	}
	if l.bundle.Has(key) {
		return l.base.Sprintf(key, args...)
	}
	return key
}
