// Package slug, başlık ve kategori isimlerinden URL-safe slug üretir.
//
// Kurallar (sırasıyla):
//  1. Küçük harfe çevir, baştaki/sondaki boşlukları kırp
//  2. [a-z0-9], boşluk ve '-' dışındaki tüm karakterleri sil
//  3. Boşluk gruplarını tek '-' yap
//  4. Ardışık '-' karakterlerini teke indir
//
// "Boşluk" JavaScript'in \s sınıfıdır: ASCII boşluklar, \v, tüm Unicode
// ayırıcıları (NBSP, em space ...) ve BOM. Go'nun \s'i bunların sadece
// ASCII kısmını kapsar.
//
// Aksanlı harfler dönüştürülmez, silinir: "Çay" → "ay".
// Mevcut posts.json içindeki slug'lar bu kurallarla üretildi; değiştirmek
// eski linkleri kırar.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s\v\p{Z}\x{FEFF}-]`)
	spaces     = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	dashes     = regexp.MustCompile(`-+`)
)

// Make, verilen metnin slug'ını döner.
func Make(text string) string {
	s := cases.Lower(language.Und).String(text)
	s = strings.TrimFunc(s, isSpace)
	s = disallowed.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "-")
	return dashes.ReplaceAllString(s, "-")
}

// isSpace, spaces regex'i ile aynı kümeyi tanır. unicode.IsSpace
// kullanılmaz: U+0085'i içerir, U+FEFF'i içermez.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Z)
}
