package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Parser renders article Markdown. It is safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{md: md}
}

// Render converts source to HTML and returns its front matter, which is
// empty (never nil) when the document has none or it does not decode.
func (p *Parser) Render(source string) (string, map[string]any, error) {
	ctx := parser.NewContext()
	var buf bytes.Buffer

	err := p.md.Convert([]byte(source), &buf, parser.WithContext(ctx))
	if err != nil {
		return "", nil, err
	}

	meta := map[string]any{}
	if data := frontmatter.Get(ctx); data != nil {
		err = data.Decode(&meta)
		if err != nil {
			meta = map[string]any{}
		}
	}

	return buf.String(), meta, nil
}
