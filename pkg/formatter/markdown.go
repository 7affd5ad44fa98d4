package formatter

import (
	"regexp"
	"strconv"
	"strings"
)

// The report renderer supports a deliberately small markdown subset.
// Passes run in a fixed order, each on the output of the previous one,
// so later rules never re-match inside earlier-produced markup. Render
// the original source text exactly once; re-rendering produced HTML is
// undefined.

var (
	fencedRe = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*\\n?(.*?)```")
	inlineRe = regexp.MustCompile("`([^`\n]+)`")
	h3Re     = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Re     = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Re     = regexp.MustCompile(`(?m)^# (.+)$`)
	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*\n]+)\*`)
	hruleRe  = regexp.MustCompile(`(?m)^---$`)

	htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// HTML renders report markdown to HTML. Text no rule matches passes
// through as escaped plain text, so malformed input degrades to plain
// text instead of failing.
//
// Code bodies are lifted out into NUL-delimited placeholders before the
// heading/bold/italic/hr passes run, so a PyMOL script block whose
// comment lines start with # (or contain * and ---) comes through
// verbatim instead of growing headings inside the block.
func HTML(text string) string {
	out := htmlEscaper.Replace(text)

	var code []string
	stash := func(rendered string) string {
		code = append(code, rendered)
		return codeToken(len(code) - 1)
	}

	out = fencedRe.ReplaceAllStringFunc(out, func(m string) string {
		body := fencedRe.FindStringSubmatch(m)[1]
		return stash("<pre><code>" + strings.TrimRight(body, " \t\n") + "</code></pre>")
	})
	out = inlineRe.ReplaceAllStringFunc(out, func(m string) string {
		return stash("<code>" + inlineRe.FindStringSubmatch(m)[1] + "</code>")
	})

	out = h3Re.ReplaceAllString(out, "<h3>$1</h3>")
	out = h2Re.ReplaceAllString(out, "<h2>$1</h2>")
	out = h1Re.ReplaceAllString(out, "<h1>$1</h1>")
	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = hruleRe.ReplaceAllString(out, "<hr>")

	for i, c := range code {
		out = strings.Replace(out, codeToken(i), c, 1)
	}
	return out
}

// codeToken is a placeholder no rendering pass can match: the report
// text never contains NUL bytes and every pass needs #, * or - markers.
func codeToken(i int) string {
	return "\x00" + strconv.Itoa(i) + "\x00"
}

// HTMLPage wraps a rendered report in a minimal standalone document.
func HTMLPage(title, reportText string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(htmlEscaper.Replace(title))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(HTML(reportText))
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
