package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:60rem;margin:2rem auto;padding:0 1rem}
table{border-collapse:collapse}
th,td{border:1px solid #ccc;padding:.25rem .5rem;vertical-align:top}
pre{background:#f6f8fa;padding:1rem;overflow:auto}`

// HTML renders the Markdown report as a standalone, minified HTML page.
func HTML(in ReportInput) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(in)), &body); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&page, "<title>%s</title>", html.EscapeString(title(in)))
	page.WriteString("<style>" + pageStyle + "</style></head><body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body></html>\n")

	m := minify.New()
	m.AddFunc("text/html", mhtml.Minify)
	out, err := m.Bytes("text/html", page.Bytes())
	if err != nil {
		return "", fmt.Errorf("minify html: %w", err)
	}
	return string(out), nil
}

func title(in ReportInput) string {
	if in.OriginalName == "" && in.RevisedName == "" {
		return "Review report"
	}
	return fmt.Sprintf("Review: %s -> %s", orDefault(in.OriginalName, "original"), orDefault(in.RevisedName, "revised"))
}
