package ingestion

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/poiesic/hemeroteca/core"
)

// ChannelType selects the extraction rule for a channel.
type ChannelType int

const (
	ChannelOther ChannelType = iota
	ChannelElPais
	ChannelVeinteMinutos
	ChannelElDiario
	ChannelElMundo
)

func (c ChannelType) String() string {
	switch c {
	case ChannelElPais:
		return "elpais"
	case ChannelVeinteMinutos:
		return "20minutos"
	case ChannelElDiario:
		return "eldiario"
	case ChannelElMundo:
		return "elmundo"
	default:
		return "other"
	}
}

// ChannelTypeOf recognizes a channel by its name, ignoring case.
func ChannelTypeOf(channel string) ChannelType {
	upper := strings.ToUpper(channel)
	switch {
	case strings.Contains(upper, "EL PAÍS"):
		return ChannelElPais
	case strings.Contains(upper, "20MINUTOS"):
		return ChannelVeinteMinutos
	case strings.Contains(upper, "ELDIARIO.ES"):
		return ChannelElDiario
	case strings.Contains(upper, "ELMUNDO"):
		return ChannelElMundo
	default:
		return ChannelOther
	}
}

const (
	blockSelector  = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre"
	ignoreSelector = "script, style, noscript, template"
)

// Cleaner reduces article pages to plain text.
// It is safe for concurrent use.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner. A nil logger uses slog.Default().
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger.With("component", "cleaner")}
}

// Clean extracts the article text of an HTML page published by channel.
// Paragraphs are separated by a blank line. The result may be empty when
// the page has no text where the channel keeps its articles.
func (c *Cleaner) Clean(channel, html string) (string, *core.PipelineError) {
	if html == "" {
		return "", core.NewEmptyInput()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", core.NewParseFailure(err.Error())
	}
	doc.Find(ignoreSelector).Remove()

	kind := ChannelTypeOf(channel)
	c.logger.Debug("cleaning content", "channel", channel, "rule", kind)

	var blocks *goquery.Selection
	switch kind {
	case ChannelElPais:
		blocks = doc.Find("article").First().Find(`div[data-dtm-region="articulo_cuerpo"] p`)
	case ChannelVeinteMinutos:
		blocks = doc.Find("article").First().Find("p")
	case ChannelElDiario:
		if main := doc.Find("main").First(); main.Length() > 0 {
			blocks = main.Find("p.article-text")
		} else {
			blocks = bodyBlocks(doc)
		}
	case ChannelElMundo:
		if article := doc.Find("article").First(); article.Length() > 0 {
			blocks = article.Find("p")
		} else {
			blocks = bodyBlocks(doc)
		}
	default:
		blocks = bodyBlocks(doc)
	}

	return joinBlocks(blocks), nil
}

// bodyBlocks returns the outermost block elements of the body, or the
// body itself when it has none.
func bodyBlocks(doc *goquery.Document) *goquery.Selection {
	body := doc.Find("body").First()
	blocks := body.Find(blockSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered(blockSelector).Length() == 0
	})
	if blocks.Length() == 0 {
		return body
	}
	return blocks
}

func joinBlocks(blocks *goquery.Selection) string {
	paragraphs := make([]string, 0, blocks.Length())
	blocks.Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}
