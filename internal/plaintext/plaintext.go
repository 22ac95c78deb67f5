// Package plaintext reduces HTML fragments pasted by clients to readable text
// before it is summarized.
package plaintext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, div, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, table, " +
	"blockquote, pre, section, article, header, footer"

var (
	openTagRe     = regexp.MustCompile(`(?i)<([a-z][a-z0-9]*)(\s[^<>]*)?>`)
	voidTagRe     = regexp.MustCompile(`(?i)<(br|hr)\s*/?>|<img\s[^<>]*\bsrc\s*=`)
	inlineSpaceRe = regexp.MustCompile(`[ \t\f\v\r]+`)
	blankLinesRe  = regexp.MustCompile(`\n{2,}`)
)

var knownElements = map[string]struct{}{
	"html": {}, "head": {}, "body": {}, "title": {}, "script": {}, "style": {},
	"noscript": {}, "template": {}, "main": {}, "nav": {}, "aside": {},
	"section": {}, "article": {}, "header": {}, "footer": {}, "div": {}, "p": {},
	"span": {}, "a": {}, "b": {}, "i": {}, "u": {}, "em": {}, "strong": {},
	"small": {}, "sub": {}, "sup": {}, "code": {}, "pre": {}, "blockquote": {},
	"ul": {}, "ol": {}, "li": {}, "dl": {}, "dt": {}, "dd": {}, "table": {},
	"thead": {}, "tbody": {}, "tr": {}, "td": {}, "th": {}, "figure": {},
	"figcaption": {}, "label": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {},
	"h5": {}, "h6": {},
}

// LooksLikeHTML reports whether s contains real HTML markup: a known element
// together with its closing tag, or a bare line break, rule or image tag.
// Angle brackets in prose or code such as "List<String>" or "a<b and c>d" do
// not count.
func LooksLikeHTML(s string) bool {
	if voidTagRe.MatchString(s) {
		return true
	}

	lower := strings.ToLower(s)
	for _, m := range openTagRe.FindAllStringSubmatch(lower, -1) {
		if _, ok := knownElements[m[1]]; !ok {
			continue
		}

		if strings.Contains(lower, "</"+m[1]+">") {
			return true
		}
	}

	return false
}

// FromHTML extracts visible text from an HTML fragment. Line breaks and block
// boundaries turn into newlines, script and style content is dropped.
func FromHTML(s string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	doc.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithHtml("\n")
	})

	doc.Find(blockSelector).Each(func(_ int, block *goquery.Selection) {
		block.AppendHtml("\n")
	})

	return normalize(doc.Text()), nil
}

// Clean returns s as is unless it looks like HTML, in which case the HTML is
// reduced to text. Input that turns out to have no visible text is kept.
func Clean(s string) (string, error) {
	if !LooksLikeHTML(s) {
		return s, nil
	}

	text, err := FromHTML(s)
	if err != nil {
		return "", err
	}

	if text == "" {
		return s, nil
	}

	return text, nil
}

func normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(inlineSpaceRe.ReplaceAllString(line, " "))
	}

	return strings.TrimSpace(blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n"))
}
