package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPlain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text", in: "just text", want: "just text"},
		{name: "tags stripped", in: "<p>Hello <b>world</b></p>", want: "Hello world"},
		{name: "entities decoded", in: "<p>A &amp; B&#39;s</p>", want: "A & B's"},
		{name: "escaped markup stripped", in: "a &lt;b&gt;bold&lt;/b&gt; tag", want: "a bold tag"},
		{name: "escaped markup in tags", in: "<p>x &lt;script&gt;alert(1)&lt;/script&gt; y</p>", want: "x y"},
		{name: "lone less-than kept", in: "p &lt; 0.05 and a &gt; b", want: "p < 0.05 and a > b"},
		{name: "whitespace collapsed", in: "  line one\n\n\tline   two  ", want: "line one line two"},
		{name: "script removed", in: "before<script>alert(1)</script>after", want: "beforeafter"},
		{name: "italic species", in: "Effect of <i>E. coli</i> on mice", want: "Effect of E. coli on mice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plain(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "abc", Truncate("abc", 300))
	})

	t.Run("exact limit untouched", func(t *testing.T) {
		text := strings.Repeat("a", 300)
		assert.Equal(t, text, Truncate(text, 300))
	})

	t.Run("long text cut with ellipsis", func(t *testing.T) {
		res := Truncate(strings.Repeat("a", 301), 300)
		assert.Len(t, res, 300)
		assert.True(t, strings.HasSuffix(res, "..."))
		assert.Equal(t, strings.Repeat("a", 297)+"...", res)
	})

	t.Run("multibyte runes not split", func(t *testing.T) {
		res := Truncate(strings.Repeat("é", 400), 300)
		assert.True(t, utf8.ValidString(res))
		assert.Equal(t, 300, utf8.RuneCountInString(res))
	})

	t.Run("tiny limit", func(t *testing.T) {
		assert.Equal(t, "...", Truncate("abcdef", 2))
	})
}

func TestSummary(t *testing.T) {
	long := "<div>" + strings.Repeat("word ", 100) + "</div>"
	res := Summary(long)
	assert.LessOrEqual(t, utf8.RuneCountInString(res), MaxSummaryLen+3)
	assert.NotContains(t, res, "<")
	assert.True(t, strings.HasSuffix(res, "..."))

	assert.Equal(t, "short summary", Summary("<p>short   summary</p>"))
}
