package formatter

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdownRenderer renders untrusted Markdown. goldmark runs without
// html.WithUnsafe, so raw HTML is replaced by an omission comment and
// javascript: style links are dropped; bluemonday then strips anything the
// UGC policy does not allow.
type markdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newMarkdownRenderer(exts []goldmark.Extender) *markdownRenderer {
	extensions := append([]goldmark.Extender{extension.GFM}, exts...)
	return &markdownRenderer{
		md:     goldmark.New(goldmark.WithExtensions(extensions...)),
		policy: bluemonday.UGCPolicy(),
	}
}

func (r *markdownRenderer) render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String())), nil
}

// MarkdownToHTML renders text as HTML safe to embed in a trusted page. A nil
// text yields "". Should goldmark fail on the input, the escaped source is
// returned instead.
func (f *Formatter) MarkdownToHTML(text *string) string {
	if text == nil || strings.TrimSpace(*text) == "" {
		return ""
	}
	out, err := f.markdownRenderer().render(*text)
	if err != nil {
		return f.EscapeHTML(text)
	}
	return out
}
