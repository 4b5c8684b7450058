package server

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"topictrail/internal/explorer"
	"topictrail/internal/textspan"
)

var exportMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// ExportHTML renders the current view as a standalone HTML page.
func ExportHTML(v explorer.View) ([]byte, error) {
	md := buildMarkdown(v)

	var body bytes.Buffer
	if err := exportMarkdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", htmlEscape(v.Topic))
	page.WriteString("<style>body{max-width:48rem;margin:2rem auto;font-family:sans-serif;line-height:1.5;padding:0 1rem}pre{overflow-x:auto;padding:1rem;border-radius:6px}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// buildMarkdown reassembles the fragment lists into markdown, turning
// embedded link fragments back into markdown links.
func buildMarkdown(v explorer.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", v.Topic)

	if v.Art != "" {
		b.WriteString("```text\n")
		b.WriteString(v.Art)
		b.WriteString("\n```\n\n")
	}

	if v.Error != "" {
		fmt.Fprintf(&b, "> Fetch failed: %s\n", v.Error)
		return b.String()
	}

	b.WriteString(fragmentsToMarkdown(v.Explanation))
	b.WriteString("\n\n## Keep exploring\n\n")
	b.WriteString(fragmentsToMarkdown(v.Suggestion))

	if len(v.Links) > 0 {
		b.WriteString("\n\n## Resources\n\n")
		for _, l := range v.Links {
			fmt.Fprintf(&b, "- [%s](%s)\n", l.Title, l.URL)
		}
	}
	return b.String()
}

func fragmentsToMarkdown(frags []textspan.Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		if f.Kind == textspan.FragmentLink {
			fmt.Fprintf(&b, "[%s](%s)", f.Text, f.URL)
			continue
		}
		b.WriteString(f.Text)
	}
	return b.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
