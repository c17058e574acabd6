package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashwch/pomichnyk/internal/appdirs"
	"golang.org/x/text/language"
)

// DefaultLocale is used when neither config nor environment name a locale.
const DefaultLocale = "uk"

// Catalog holds the user-facing messages of one locale. Messages are
// fmt-style templates addressed by key.
type Catalog struct {
	Locale   string            `json:"locale"`
	Messages map[string]string `json:"messages"`
}

var supported = []language.Tag{
	language.Ukrainian,
	language.English,
}

var matcher = language.NewMatcher(supported)

func LoadCatalog(requestedLocale string) Catalog {
	locale := NormalizeLocale(requestedLocale)
	if locale == "" || strings.EqualFold(locale, "auto") {
		locale = DetectLocale()
	}
	base := baseCatalogForLocale(locale)

	if override, ok := loadCommunityCatalog(locale); ok {
		merged := mergeCatalog(base, override)
		if strings.TrimSpace(override.Locale) != "" {
			merged.Locale = NormalizeLocale(override.Locale)
		} else {
			merged.Locale = locale
		}
		return merged
	}

	base.Locale = locale
	return base
}

func (c Catalog) Language() string {
	return BaseLanguage(c.Locale)
}

// T formats the message for key. A missing key renders as the key itself so
// a broken override never hides output.
func (c Catalog) T(key string, args ...any) string {
	msg, ok := c.Messages[key]
	if !ok {
		msg = key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func BaseLanguage(locale string) string {
	tag, err := language.Parse(NormalizeLocale(locale))
	if err != nil {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLocale
	}
	base, _ := supported[index].Base()
	return base.String()
}

func baseCatalogForLocale(locale string) Catalog {
	switch BaseLanguage(locale) {
	case "en":
		base := defaultEnglishCatalog()
		base.Locale = "en"
		return base
	default:
		// Ukrainian first, English fallback for keys an override might add.
		base := mergeCatalog(defaultEnglishCatalog(), defaultUkrainianCatalog())
		base.Locale = "uk"
		return base
	}
}

func DetectLocale() string {
	candidates := []string{
		os.Getenv("POMICHNYK_LOCALE"),
		os.Getenv("LC_ALL"),
		os.Getenv("LC_MESSAGES"),
		os.Getenv("LANG"),
	}
	for _, candidate := range candidates {
		normalized := NormalizeLocale(candidate)
		// "C" and "POSIX" carry no language preference.
		if normalized == "" || normalized == "c" || normalized == "posix" {
			continue
		}
		return normalized
	}
	return DefaultLocale
}

func NormalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.Split(trimmed, ".")[0]
	trimmed = strings.Split(trimmed, "@")[0]
	trimmed = strings.ReplaceAll(trimmed, "_", "-")

	parts := strings.Split(trimmed, "-")
	lang := strings.ToLower(parts[0])
	if len(parts) == 1 {
		if lang == "c" || lang == "posix" {
			return lang
		}
		if !isValidLocaleToken(lang, true) {
			return ""
		}
		return lang
	}
	region := strings.ToUpper(parts[1])
	if !isValidLocaleToken(lang, true) {
		return ""
	}
	if region == "" {
		return lang
	}
	if !isValidLocaleToken(strings.ToLower(region), false) {
		return ""
	}
	return lang + "-" + region
}

func isValidLocaleToken(token string, lettersOnly bool) bool {
	if len(token) < 2 || len(token) > 8 {
		return false
	}
	for _, r := range token {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if !lettersOnly && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func loadCommunityCatalog(locale string) (Catalog, bool) {
	configDir, err := appdirs.ConfigDir()
	if err != nil {
		return Catalog{}, false
	}

	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return Catalog{}, false
	}
	lang := normalized
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}

	paths := []string{
		filepath.Join(configDir, "locales", normalized+".json"),
	}
	if lang != normalized {
		paths = append(paths, filepath.Join(configDir, "locales", lang+".json"))
	}

	for _, path := range paths {
		loaded, ok := loadCatalogFile(path)
		if ok {
			return loaded, true
		}
	}
	return Catalog{}, false
}

func loadCatalogFile(path string) (Catalog, bool) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, false
	}
	var catalog Catalog
	if err := json.Unmarshal(bytes, &catalog); err != nil {
		return Catalog{}, false
	}
	return catalog, true
}

func mergeCatalog(base Catalog, override Catalog) Catalog {
	merged := Catalog{
		Locale:   base.Locale,
		Messages: make(map[string]string, len(base.Messages)+len(override.Messages)),
	}
	for key, msg := range base.Messages {
		merged.Messages[key] = msg
	}
	for key, msg := range override.Messages {
		if strings.TrimSpace(msg) == "" {
			continue
		}
		merged.Messages[key] = msg
	}
	return merged
}
