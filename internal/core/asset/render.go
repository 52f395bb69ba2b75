package asset

import (
	"html"
	"strings"
)

// Render turns descriptors, already in output order, into markup for type t.
// css and js sources are attribute-escaped; inline bodies are emitted raw and
// must be trusted by whoever submitted them. Unknown types render as "".
func Render(t Type, sorted []Descriptor) string {
	out, err := RenderStrict(t, sorted)
	if err != nil {
		return ""
	}
	return out
}

// RenderStrict is Render but fails with *UnsupportedAssetTypeError for types
// without a rendering strategy
func RenderStrict(t Type, sorted []Descriptor) (string, error) {
	if !t.IsKnown() {
		return "", &UnsupportedAssetTypeError{Type: t}
	}

	var b strings.Builder
	for _, d := range sorted {
		switch t {
		case TypeCSS:
			b.WriteString(`<link rel="stylesheet" href="`)
			b.WriteString(html.EscapeString(d.Source()))
			b.WriteString(`">`)
		case TypeJS:
			b.WriteString(`<script src="`)
			b.WriteString(html.EscapeString(d.Source()))
			b.WriteString(`"`)
			if d.Defer() {
				b.WriteString(" defer")
			}
			if d.Async() {
				b.WriteString(" async")
			}
			b.WriteString(`></script>`)
		case TypeInline:
			b.WriteString("<script>")
			b.WriteString(d.Source())
			b.WriteString("</script>")
		}
	}
	return b.String(), nil
}
