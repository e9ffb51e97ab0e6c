package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 60rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; }
th { background: #f4f4f4; }
code { background: #f4f4f4; padding: 0 0.2rem; }
</style>
</head>
<body>
`

const htmlFoot = `</body>
</html>
`

// HTMLRenderer writes a Document as a standalone HTML page. The body is
// the Markdown report converted with goldmark.
type HTMLRenderer struct {
	opts     Options
	markdown goldmark.Markdown
}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{
		opts:     opts,
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(_ context.Context, doc *Document) (err error) {
	var body bytes.Buffer
	if err := r.markdown.Convert(markdownDocument(doc, r.opts), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}

	title := r.opts.Title
	if title == "" {
		title = DefaultOptions().Title
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprintf(bw, htmlHead, html.EscapeString(title))
	if _, err := bw.Write(body.Bytes()); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	_, err = bw.WriteString(htmlFoot)
	return err
}
