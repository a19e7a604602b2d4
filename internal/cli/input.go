package cli

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/tv-fixtures/internal/lines"
	"github.com/pfrederiksen/tv-fixtures/internal/scraper"
)

type inputKind int

const (
	inputURL inputKind = iota
	inputHTML
	inputText
	inputStdin
)

// input is one page to extract fixtures from.
type input struct {
	kind     inputKind
	location string
}

func (in input) String() string {
	switch in.kind {
	case inputHTML:
		return "html:" + in.location
	case inputText:
		return "text:" + in.location
	case inputStdin:
		return "stdin"
	default:
		return in.location
	}
}

// collectInputs orders inputs as URLs, HTML files, text files, then stdin.
func collectInputs(args []string, opts *options) ([]input, error) {
	var inputs []input
	for _, u := range opts.urls {
		inputs = append(inputs, input{kind: inputURL, location: u})
	}
	for _, p := range opts.htmlFiles {
		inputs = append(inputs, input{kind: inputHTML, location: p})
	}
	for _, p := range opts.textFiles {
		inputs = append(inputs, input{kind: inputText, location: p})
	}

	stdin := false
	for _, arg := range args {
		if arg != "-" {
			return nil, errors.Newf("unexpected argument %q (only - for stdin is accepted)", arg)
		}
		if stdin {
			return nil, errors.New("stdin can only be read once")
		}
		stdin = true
		inputs = append(inputs, input{kind: inputStdin})
	}

	if len(inputs) == 0 {
		return nil, errors.New("no input: pass --url, --html, --text or - for stdin")
	}
	return inputs, nil
}

// capture produces the primary and fallback line sequences for in. Plain
// text inputs have no DOM, so their only capture is the primary one.
func (in input) capture(ctx context.Context, src scraper.Source, stdin io.Reader) (*scraper.Capture, error) {
	switch in.kind {
	case inputURL:
		return src.Capture(ctx, in.location)

	case inputHTML:
		f, err := os.Open(in.location)
		if err != nil {
			return nil, errors.Wrap(err, "opening HTML file")
		}
		defer f.Close()
		return scraper.ExtractLines(f)

	case inputText:
		data, err := os.ReadFile(in.location)
		if err != nil {
			return nil, errors.Wrap(err, "reading text file")
		}
		return &scraper.Capture{Leaves: lines.SplitText(string(data))}, nil

	case inputStdin:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "reading stdin")
		}
		return &scraper.Capture{Leaves: lines.SplitText(string(data))}, nil
	}

	return nil, errors.Newf("unknown input kind %d", in.kind)
}
