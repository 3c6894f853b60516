// ABOUTME: HTML document adapter exposing feed posts and job cards to the engine
// ABOUTME: Presents item state with the hide, dim and showIcon classes on the DOM

package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"linkoff-engine/core/domain"
)

// Presentation classes and attributes.
const (
	ClassHide     = "hide"
	ClassDim      = "dim"
	ClassShowIcon = "showIcon"
	AttrHidden    = "data-hidden"
)

// Item selectors per surface.
const (
	FeedItemSelector = `[data-id*="urn:li:activity"], [data-id*="urn:li:aggregate"]`
	JobItemSelector  = `[data-job-id], [data-occludable-job-id], .discovery-templates-vertical-list__list-item`
)

// itemSelector locates the items of one surface and names the attributes
// holding their identifier, in order of preference.
type itemSelector struct {
	selector string
	idAttrs  []string
}

func defaultSelectors() map[domain.Surface]itemSelector {
	return map[domain.Surface]itemSelector{
		domain.SurfaceFeed: {selector: FeedItemSelector, idAttrs: []string{"data-id"}},
		domain.SurfaceJobs: {selector: JobItemSelector, idAttrs: []string{"data-occludable-job-id", "data-job-id"}},
	}
}

// Option configures a Document.
type Option func(*Document)

// WithItemSelector changes how the items of a surface are found.
func WithItemSelector(surface domain.Surface, selector string, idAttrs ...string) Option {
	return func(d *Document) {
		d.selectors[surface] = itemSelector{selector: selector, idAttrs: idAttrs}
	}
}

// Document is a parsed page. It implements the engine's page interfaces.
// Items keep their identity across calls for as long as their node stays
// in the document.
type Document struct {
	mu    sync.Mutex
	url   string
	doc   *goquery.Document
	items map[*html.Node]*domain.Item
	nodes map[*domain.Item]*html.Node

	selectors map[domain.Surface]itemSelector

	clicks   map[string]int
	onScroll func() (io.Reader, error)
	dark     bool
	wide     bool
	notes    []string
}

// New parses r as the page at url.
func New(url string, r io.Reader, opts ...Option) (*Document, error) {
	d := &Document{}
	if err := d.Load(url, r, opts...); err != nil {
		return nil, err
	}
	return d, nil
}

// Parse is New for an in-memory page.
func Parse(url, markup string, opts ...Option) (*Document, error) {
	return New(url, strings.NewReader(markup), opts...)
}

// Load replaces the page. Previously returned items are forgotten and the
// item selectors go back to the defaults before opts are applied.
func (d *Document) Load(url string, r io.Reader, opts ...Option) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.selectors = defaultSelectors()
	for _, opt := range opts {
		opt(d)
	}
	d.url = url
	d.doc = doc
	d.items = make(map[*html.Node]*domain.Item)
	d.nodes = make(map[*domain.Item]*html.Node)
	d.clicks = make(map[string]int)
	return nil
}

// Append parses r as a fragment and appends it to the body, the way an
// infinite scroll adds posts.
func (d *Document) Append(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read fragment: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return 0, fmt.Errorf("document has no body")
	}
	before := body.Children().Length()
	body.AppendHtml(string(data))
	return body.Children().Length() - before, nil
}

// SetURL changes the page address without touching the content, as a
// single page application navigation does.
func (d *Document) SetURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
}

// URL returns the page address.
func (d *Document) URL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url
}

// Items returns the items of a surface in document order. Markup and
// text are refreshed from the current DOM on every call.
func (d *Document) Items(surface domain.Surface) []*domain.Item {
	d.mu.Lock()
	defer d.mu.Unlock()

	sel, ok := d.selectors[surface]
	if !ok {
		return nil
	}

	var out []*domain.Item
	d.doc.Find(sel.selector).Each(func(i int, s *goquery.Selection) {
		node := s.Get(0)
		item, ok := d.items[node]
		if !ok {
			item = &domain.Item{ID: itemID(surface, sel.idAttrs, s, i)}
			d.items[node] = item
			d.nodes[item] = node
		}
		item.Markup, _ = s.Html()
		item.Text = InnerText(node)
		out = append(out, item)
	})
	return out
}

// SetState presents an item: hidden items get the mode class plus the
// reveal icon, shown items lose every mark, pristine items also lose the
// data-hidden attribute.
func (d *Document) SetState(item *domain.Item, mode domain.VisualMode) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, ok := d.nodes[item]
	if !ok {
		return
	}
	s := d.doc.FindNodes(node)
	s.RemoveClass(ClassHide, ClassDim, ClassShowIcon)

	switch item.State {
	case domain.Hidden:
		s.AddClass(modeClass(mode), ClassShowIcon)
		s.SetAttr(AttrHidden, "true")
	case domain.Shown:
		if item.Override {
			s.SetAttr(AttrHidden, "shown")
		} else {
			s.SetAttr(AttrHidden, "false")
		}
	default:
		s.RemoveAttr(AttrHidden)
	}
}

// Render writes the current page.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.doc.Get(0))
}

// String renders the current page to a string.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Find returns a detached copy of the elements matching selector, for
// inspection.
func (d *Document) Find(selector string) *goquery.Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Find(selector).Clone()
}

func itemID(surface domain.Surface, idAttrs []string, s *goquery.Selection, index int) string {
	for _, attr := range idAttrs {
		if v, ok := s.Attr(attr); ok && v != "" {
			return v
		}
	}
	return fmt.Sprintf("%s-%d", surface, index)
}

func modeClass(mode domain.VisualMode) string {
	if mode == domain.ModeDim {
		return ClassDim
	}
	return ClassHide
}
