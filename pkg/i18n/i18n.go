// Package i18n, arayüz metinlerinin Türkçe/İngilizce çevirisini sağlar.
//
// Sadece site "chrome"u (menü, buton, hata mesajları) çevrilir.
// İçerik çevirisi (title_en, bio_en...) backend verisinden gelir, burada değil.
//
// Dil şu sırayla belirlenir (bkz. middleware.Language):
//  1. ?lang= query parametresi
//  2. "lang" cookie'si
//  3. Accept-Language HTTP header'ı
//  4. Varsayılan dil (tr)
//
// Kullanım:
//
//	localizer := i18n.NewLocalizer("en")
//	msg := localizer.T("common.operationFailed")
//	// → "Operation failed"
package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

// SupportedLanguages, desteklenen dil kodları.
var SupportedLanguages = []string{"tr", "en"}

// DefaultLanguage, varsayılan dil.
const DefaultLanguage = "tr"

// translations, map[lang]map[key]value formatında tüm çeviriler.
// Başlangıçta bir kere yüklenir, sonra sadece okunur.
var (
	translations map[string]map[string]string
	loadOnce     sync.Once
	loadErr      error
)

// Load, çeviri dosyalarını fs.FS'ten yükler (tr.json, en.json).
// Birden fazla çağrılırsa sadece ilki çalışır; sonrakiler aynı hatayı döner.
func Load(localesFS fs.FS) error {
	loadOnce.Do(func() {
		loaded := make(map[string]map[string]string, len(SupportedLanguages))

		for _, lang := range SupportedLanguages {
			fileName := lang + ".json"

			data, err := fs.ReadFile(localesFS, fileName)
			if err != nil {
				loadErr = fmt.Errorf("failed to read translation file %s: %w", fileName, err)
				return
			}

			// Nested JSON → flat key: {"nav": {"home": "..."}} → "nav.home"
			var nested map[string]any
			if err := json.Unmarshal(data, &nested); err != nil {
				loadErr = fmt.Errorf("failed to parse translation file %s: %w", fileName, err)
				return
			}

			flat := make(map[string]string)
			flattenMap("", nested, flat)
			loaded[lang] = flat
		}

		translations = loaded
	})

	return loadErr
}

// KeyCount, bir dil için yüklenmiş anahtar sayısını döner (startup log'u için).
func KeyCount(lang string) int {
	return len(translations[lang])
}

// Localizer, belirli bir dil için çeviri yapar.
type Localizer struct {
	lang string
}

// NewLocalizer, belirli bir dil için Localizer oluşturur.
// Desteklenmeyen dil verilirse varsayılana düşer.
func NewLocalizer(lang string) *Localizer {
	return &Localizer{lang: Normalize(lang)}
}

// Lang, Localizer'ın dil kodunu döner.
func (l *Localizer) Lang() string {
	return l.lang
}

// T, çeviri anahtarına karşılık gelen metni döner.
// Anahtar bulunamazsa → Türkçe'ye düşer, orada da yoksa anahtarın kendisi döner.
func (l *Localizer) T(key string) string {
	if msg, ok := translations[l.lang][key]; ok {
		return msg
	}
	if msg, ok := translations[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// TWithParams, {{param}} yer tutucularını değerlerle değiştirerek çevirir.
//
//	localizer.TWithParams("auth.tooManyAttempts", map[string]string{"wait": "2 dakika"})
func (l *Localizer) TWithParams(key string, params map[string]string) string {
	msg := l.T(key)
	for k, v := range params {
		msg = strings.ReplaceAll(msg, "{{"+k+"}}", v)
	}
	return msg
}

// DetectLanguage, Accept-Language header'ından en uygun dili belirler.
// Header formatı: "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"
func DetectLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLanguage
	}

	for _, part := range strings.Split(acceptLanguage, ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		lang = strings.ToLower(strings.Split(lang, "-")[0])

		if IsSupported(lang) {
			return lang
		}
	}

	return DefaultLanguage
}

// Normalize, dil kodunu bölge ekinden arındırır ("en-US" → "en");
// desteklenmeyen veya boş kodu varsayılana çevirir.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if !IsSupported(lang) {
		return DefaultLanguage
	}
	return lang
}

// IsSupported, dil kodu destekleniyorsa true döner.
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// flattenMap, nested JSON'u "dot notation" key'lere dönüştürür.
func flattenMap(prefix string, src map[string]any, dst map[string]string) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			dst[key] = val
		case map[string]any:
			flattenMap(key, val, dst)
		}
	}
}
