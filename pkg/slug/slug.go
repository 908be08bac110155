// Package slug genera identificadores legibles y seguros para URL a partir de títulos.
//
// "Desenvolvedor Sênior (Back-end)" -> "desenvolvedor-senior-back-end"
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback se usa cuando el título no deja ningún carácter alfanumérico.
const Fallback = "job-offer"

// Make normaliza s: quita acentos, pasa a minúsculas y reemplaza cada tramo
// no alfanumérico por un solo guion. maxLen <= 0 no trunca.
func Make(s string, maxLen int) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	out := truncate(b.String(), maxLen)
	if out == "" {
		return Fallback
	}
	return out
}

// WithSuffix devuelve base-n respetando maxLen. n <= 0 devuelve base.
func WithSuffix(base string, n, maxLen int) string {
	if n <= 0 {
		return base
	}
	suffix := "-" + strconv.Itoa(n)
	if maxLen > 0 && len(base)+len(suffix) > maxLen {
		base = truncate(base, maxLen-len(suffix))
	}
	return base + suffix
}

// NextFree elige el primer candidato libre: base, base-1, base-2, ...
func NextFree(base string, taken []string, maxLen int) string {
	used := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		used[s] = struct{}{}
	}
	for n := 0; ; n++ {
		candidate := WithSuffix(base, n, maxLen)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}

// Make solo emite ASCII, así que cortar por bytes es seguro.
func truncate(s string, maxLen int) string {
	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	return strings.Trim(s, "-")
}
