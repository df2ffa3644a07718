//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"trpc.group/trpc-go/trpc-agent-graph/graph"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; margin: 2rem; }
figure { margin: 0 0 2rem 0; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
</style>
</head>
<body>
<figure>{{.SVG}}</figure>
{{.Body}}
</body>
</html>
`))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// writeHTML renders a report page: the SVG diagram followed by a Markdown
// summary of each agent.
func (r *Renderer) writeHTML(g *graph.Graph, svg []byte, w io.Writer) error {
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		svg = svg[i:]
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(r.reportMarkdown(g)), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}

	return reportTemplate.Execute(w, struct {
		Title string
		SVG   template.HTML
		Body  template.HTML
	}{
		Title: r.opts.title,
		// Graphviz output and goldmark output (raw HTML disabled) are trusted.
		SVG:  template.HTML(svg),
		Body: template.HTML(body.String()),
	})
}

// reportMarkdown describes the graph as Markdown. Agent instructions are
// embedded as written.
func (r *Renderer) reportMarkdown(g *graph.Graph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(r.opts.title))
	b.WriteString("| Agent | Hands off to | Capabilities |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, row := range r.tableRows(g) {
		agent := escapeMarkdown(row.agent)
		if row.root {
			agent = "**" + agent + "** (root)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			agent,
			escapeMarkdown(joinNames(row.targets)),
			escapeMarkdown(joinNames(row.capabilities)),
		)
	}

	for _, e := range g.Entities() {
		fmt.Fprintf(&b, "\n## %s\n\n", escapeMarkdown(e.Name))
		if e.Description != "" {
			b.WriteString(e.Description)
			b.WriteString("\n\n")
		}
		caps := r.capabilities(e)
		if len(caps) == 0 {
			continue
		}
		b.WriteString("Capabilities:\n\n")
		for _, c := range caps {
			d, ok := r.opts.catalog.Lookup(c)
			switch {
			case !ok:
				fmt.Fprintf(&b, "- `%s`\n", c)
			case d.Description == "":
				fmt.Fprintf(&b, "- `%s`\n", d.Signature())
			default:
				fmt.Fprintf(&b, "- `%s`: %s\n", d.Signature(), d.Description)
			}
		}
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "|", `\|`,
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;", "#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
