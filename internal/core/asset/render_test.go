package asset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRender_CSS tests stylesheet link rendering in sorted order
func TestRender_CSS(t *testing.T) {
	store := NewStore()
	store.Add(mustNormalize(t, CSS("a.css").WithPriority(10)))
	store.Add(mustNormalize(t, CSS("b.css").WithPriority(90)))

	out := Render(TypeCSS, store.Sorted(TypeCSS, GroupHead))

	assert.Equal(t,
		`<link rel="stylesheet" href="/plugins/b.css">`+
			`<link rel="stylesheet" href="/plugins/a.css">`,
		out)
}

// TestRender_JS_Attributes tests the independent defer and async flags
func TestRender_JS_Attributes(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected string
	}{
		{
			name:     "NoFlags",
			record:   JS("x.js"),
			expected: `<script src="/plugins/x.js"></script>`,
		},
		{
			name:     "DeferOnly",
			record:   JS("x.js").InFooter().Deferred(),
			expected: `<script src="/plugins/x.js" defer></script>`,
		},
		{
			name:     "AsyncOnly",
			record:   JS("x.js").WithAsync(),
			expected: `<script src="/plugins/x.js" async></script>`,
		},
		{
			name:     "DeferAndAsync",
			record:   JS("x.js").Deferred().WithAsync(),
			expected: `<script src="/plugins/x.js" defer async></script>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustNormalize(t, tt.record)
			assert.Equal(t, tt.expected, Render(TypeJS, []Descriptor{d}))
		})
	}
}

// TestRender_IgnoresScriptFlagsOnOtherTypes tests that defer/async only affect js
func TestRender_IgnoresScriptFlagsOnOtherTypes(t *testing.T) {
	css := mustNormalize(t, CSS("a.css").Deferred().WithAsync())
	inline := mustNormalize(t, Inline("go()").Deferred().WithAsync())

	assert.Equal(t, `<link rel="stylesheet" href="/plugins/a.css">`, Render(TypeCSS, []Descriptor{css}))
	assert.Equal(t, `<script>go()</script>`, Render(TypeInline, []Descriptor{inline}))
}

// TestRender_Escaping tests attribute escaping for urls and raw inline bodies
func TestRender_Escaping(t *testing.T) {
	hostile := `https://cdn.example.com/a.js?x="><script>alert(1)</script>`
	js := mustNormalize(t, JS(hostile))
	css := mustNormalize(t, CSS(hostile))

	jsOut := Render(TypeJS, []Descriptor{js})
	cssOut := Render(TypeCSS, []Descriptor{css})

	for _, out := range []string{jsOut, cssOut} {
		assert.NotContains(t, out, `"><script>alert`)
		assert.Contains(t, out, "&#34;&gt;&lt;script&gt;")
	}

	body := `if (a < b && s === "x") { run('<b>') }`
	inline := mustNormalize(t, Inline(body))
	assert.Equal(t, "<script>"+body+"</script>", Render(TypeInline, []Descriptor{inline}))
}

// TestRender_EmptyAndUnknown tests the degraded cases
func TestRender_EmptyAndUnknown(t *testing.T) {
	store := NewStore()

	assert.Equal(t, "", Render(TypeInline, store.Sorted(TypeInline, GroupFooter)))

	d := mustNormalize(t, CSS("a.css"))
	assert.Equal(t, "", Render(Type("font"), []Descriptor{d}))

	_, err := RenderStrict(Type("font"), []Descriptor{d})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	var unsupported *UnsupportedAssetTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, Type("font"), unsupported.Type)
}
