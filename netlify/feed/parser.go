package feed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var ErrNoDocument = errors.New("feed document has no root element")

type XMLParser struct {
	log *slog.Logger
}

func NewXMLParser(log *slog.Logger) *XMLParser {
	return &XMLParser{
		log: log,
	}
}

// Parse returns every unprefixed <item> element of the document in document
// order, wherever it sits in the tree. Missing child elements decode as
// empty strings; malformed XML aborts the whole parse.
func (p *XMLParser) Parse(ctx context.Context, r io.Reader) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	decoder := xml.NewDecoder(r)
	// Pixelfed declares UTF-8, other encodings are passed through as is
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	items := []Item{}
	sawRoot := false
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.log.Error("Error decoding XML", slog.Any("error", err))
			return nil, fmt.Errorf("failed to decode XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if start.Name.Space != "" || start.Name.Local != "item" {
			continue
		}
		item, err := readItem(decoder)
		if err != nil {
			p.log.Error("Error decoding feed item", slog.Any("error", err))
			return nil, fmt.Errorf("failed to decode XML: %w", err)
		}
		items = append(items, item)
	}
	if !sawRoot {
		return nil, ErrNoDocument
	}
	p.log.Debug("Parsed RSS feed", slog.Int("items_found", len(items)))
	return items, nil
}

// readItem consumes tokens up to the end of the current <item>. Each field
// takes the text of the first unprefixed element with its name at any depth
// below the item; namespaced elements such as media:title or atom:link and
// later duplicates are ignored.
func readItem(decoder *xml.Decoder) (Item, error) {
	var (
		item       Item
		seen       = map[string]bool{}
		field      string
		fieldDepth int
		text       strings.Builder
		depth      int
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return item, io.ErrUnexpectedEOF
		}
		if err != nil {
			return item, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if field == "" && t.Name.Space == "" && isItemField(t.Name.Local) && !seen[t.Name.Local] {
				field = t.Name.Local
				fieldDepth = depth
				seen[field] = true
				text.Reset()
			}
		case xml.CharData:
			if field != "" {
				text.Write(t)
			}
		case xml.EndElement:
			if field != "" && depth == fieldDepth {
				item.set(field, text.String())
				field = ""
			}
			depth--
			if depth < 0 {
				return item, nil
			}
		}
	}
}

func isItemField(name string) bool {
	return name == "title" || name == "description" || name == "link"
}

func (i *Item) set(field, value string) {
	switch field {
	case "title":
		i.Title = value
	case "description":
		i.Description = value
	case "link":
		i.Link = value
	}
}
