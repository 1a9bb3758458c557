package offer

import (
	"log/slog"
	"strings"
)

// Renderer turns classified booking results into display trees.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a new Renderer. A nil logger discards log output.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{logger: logger}
}

// RenderRaw classifies raw and renders it.
func (r *Renderer) RenderRaw(raw []byte) DisplayTree {
	return r.Render(Classify(raw))
}

// Render builds the display tree for a classification. It never panics; if
// table extraction fails the whole text is returned as one text block.
func (r *Renderer) Render(c Classification) DisplayTree {
	switch c.Kind {
	case KindStructured:
		if tree := renderStructured(c.Structured); len(tree) > 0 {
			return tree
		}
	case KindMalformed:
		r.logger.Debug("result did not decode as JSON, rendering as text",
			"length", len(c.Text))
	}
	return r.renderText(c.Text)
}

func renderStructured(st Structured) DisplayTree {
	var tree DisplayTree
	if f := st.Flight; f != nil {
		tree = append(tree, TitledList("Flight",
			Item{Key: "From", Value: f.From.Display()},
			Item{Key: "To", Value: f.To.Display()},
			Item{Key: "Date", Value: f.Date.Display()},
			Item{Key: "Price", Value: f.Price.Display()},
		))
	}
	if h := st.Hotel; h != nil {
		tree = append(tree, TitledList("Hotel",
			Item{Key: "Name", Value: h.Name.Display()},
			Item{Key: "Price", Value: h.Price.Display()},
			Item{Key: "Rating", Value: h.Rating.Display()},
		))
	}
	return tree
}

func (r *Renderer) renderText(text string) (tree DisplayTree) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("table extraction failed, rendering as plain text", "panic", rec)
			tree = plainText(text)
		}
	}()

	blocks := Transcode(text)
	if len(blocks) == 0 {
		return plainText(text)
	}

	pos := 0
	for _, b := range blocks {
		if seg := trimTerminator(text[pos:b.Start]); seg != "" {
			tree = append(tree, TextBlock(seg))
		}
		tree = append(tree, Table(b.Table))
		pos = b.End
	}
	if rest := text[pos:]; rest != "" {
		tree = append(tree, TextBlock(rest))
	}
	return tree
}

func plainText(text string) DisplayTree {
	if text == "" {
		return nil
	}
	return DisplayTree{TextBlock(text)}
}

// trimTerminator removes the single line break that separates a text segment
// from the table after it.
func trimTerminator(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
