package scraper

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/tv-fixtures/internal/lines"
)

const (
	UserAgent = "tv-fixtures/1.0 (github.com/pfrederiksen/tv-fixtures)"
	Timeout   = 30 * time.Second
)

// ErrUnexpectedStatus marks a non-200 response.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Capture holds both line sequences extracted from one page.
type Capture struct {
	// Leaves is the text of each leaf element in document order.
	Leaves []lines.RawLine
	// Text is the page's innerText split on newlines.
	Text []lines.RawLine
}

// Source captures a page by URL.
type Source interface {
	Capture(ctx context.Context, url string) (*Capture, error)
}

// Fetcher captures pages over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher. Zero values select the package defaults.
func New(userAgent string, timeout time.Duration) *Fetcher {
	if userAgent == "" {
		userAgent = UserAgent
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Capture fetches url and extracts its lines.
func (f *Fetcher) Capture(ctx context.Context, url string) (*Capture, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrUnexpectedStatus, "%s returned %d", url, resp.StatusCode)
	}

	return ExtractLines(resp.Body)
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true, "head": true, "svg": true,
}

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "dd": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tbody": true, "thead": true, "tfoot": true,
	"tr": true, "td": true, "th": true, "ul": true, "br": true,
}

// ExtractLines parses an HTML document into both line captures.
func ExtractLines(r io.Reader) (*Capture, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}

	return &Capture{
		Leaves: leafLines(doc),
		Text:   lines.SplitText(innerText(doc)),
	}, nil
}

// leafLines yields the collapsed text of every element without element
// children, in document order.
func leafLines(doc *goquery.Document) []lines.RawLine {
	var texts []string
	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		if hasSkippedAncestor(sel) || sel.Children().Length() > 0 {
			return
		}
		if text := collapse(sel.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return lines.FromText(texts)
}

func hasSkippedAncestor(sel *goquery.Selection) bool {
	for n := sel.Get(0); n != nil; n = n.Parent {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return true
		}
	}
	return false
}

// innerText approximates the browser's innerText: whitespace inside text
// collapses, block elements and <br> start new lines.
func innerText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() == 0 {
		return ""
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text := collapse(n.Data)
			if text == "" {
				return
			}
			if isSpace(n.Data[0]) {
				b.WriteByte(' ')
			}
			b.WriteString(text)
			if isSpace(n.Data[len(n.Data)-1]) {
				b.WriteByte(' ')
			}
			return
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte('\n')
		}
	}
	walk(body.Get(0))

	rows := strings.Split(b.String(), "\n")
	for i, row := range rows {
		rows[i] = collapse(row)
	}
	return strings.Join(rows, "\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
