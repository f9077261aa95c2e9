package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLStripperer removes markup from user supplied text.
type HTMLStripperer interface {
	StripHTML(s string) string
}

type HTMLStripper struct {
	bm *bluemonday.Policy
}

var _ HTMLStripperer = (*HTMLStripper)(nil)

// NewHTMLStripper uses bluemonday's strict policy: every tag is dropped.
func NewHTMLStripper() *HTMLStripper {
	return &HTMLStripper{
		bm: bluemonday.StrictPolicy(),
	}
}

// StripHTML drops tags, trims, and undoes the entity escaping bluemonday applies so
// stored text is plain.
func (hs *HTMLStripper) StripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(hs.bm.Sanitize(s)))
}
