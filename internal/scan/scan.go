// Package scan turns HTML pages into focusable descriptors.
//
// Elements are selected with a CSS selector (by default [data-focusable="true"])
// inside the focus container and described by their data attributes:
//
//	data-focus-index  authored order, ties keep document order
//	data-group        navigation zone, e.g. "menu" or "rail-0"
//	data-row/data-col grid position inside the zone
//	data-rect         "x,y,width,height" geometry for spatial moves
//	data-action       named action run on activation
//	data-primary      preferred initial focus
//
// The container may list its zones in data-group-order="menu,rail-0,rail-1".
package scan

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"tvnav/internal/domain"
)

// Document is a parsed page usable as a navigation scope
type Document struct {
	id                string
	doc               *goquery.Document
	containerSelector string
}

// Parse reads an HTML page
func Parse(id string, r io.Reader, containerSelector string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", id, err)
	}
	return &Document{id: id, doc: doc, containerSelector: containerSelector}, nil
}

// ID returns the scope identifier given at parse time
func (d *Document) ID() string {
	return d.id
}

// Title returns the page title, if any
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Scan collects the focusable elements of the page's container
func (d *Document) Scan(selector string) (domain.Layout, error) {
	if _, err := cascadia.Compile(selector); err != nil {
		return domain.Layout{}, fmt.Errorf("invalid focusable selector %q: %w", selector, err)
	}
	container, err := d.container()
	if err != nil {
		return domain.Layout{}, err
	}

	var layout domain.Layout
	ids := identities{}
	container.Find(selector).Each(func(i int, s *goquery.Selection) {
		layout.Elements = append(layout.Elements, ids.describe(i, s))
	})
	if order, ok := container.Attr("data-group-order"); ok {
		layout.GroupOrder = splitList(order)
	}
	return layout, nil
}

// MarkFocus applies the visual focus state to the element the scan
// identifies as id: the focus class and aria-selected. Other focusables lose
// both. It reports whether the element was found.
func (d *Document) MarkFocus(selector, id, class string) (bool, error) {
	container, err := d.container()
	if err != nil {
		return false, err
	}
	found := false
	ids := identities{}
	container.Find(selector).Each(func(i int, s *goquery.Selection) {
		if ids.describe(i, s).ID == id {
			s.AddClass(class).SetAttr("aria-selected", "true")
			found = true
			return
		}
		s.RemoveClass(class).RemoveAttr("aria-selected")
	})
	return found, nil
}

// HTML serializes the document, including any focus marking
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// container returns the focus container, falling back to the body
func (d *Document) container() (*goquery.Selection, error) {
	if d.containerSelector != "" {
		if _, err := cascadia.Compile(d.containerSelector); err != nil {
			return nil, fmt.Errorf("invalid container selector %q: %w", d.containerSelector, err)
		}
		if c := d.doc.Find(d.containerSelector).First(); c.Length() > 0 {
			return c, nil
		}
	}
	if body := d.doc.Find("body").First(); body.Length() > 0 {
		return body, nil
	}
	return d.doc.Selection, nil
}

func describe(decl int, s *goquery.Selection) domain.Descriptor {
	d := domain.Descriptor{
		ID:       attr(s, "id"),
		Label:    label(s),
		Order:    intAttr(s, "data-focus-index"),
		Decl:     decl,
		Group:    attr(s, "data-group"),
		Row:      optionalInt(s, "data-row"),
		Col:      optionalInt(s, "data-col"),
		Geometry: rect(s),
		Disabled: disabled(s),
		Action:   attr(s, "data-action"),
		Primary:  attr(s, "data-primary") == "true",
		Href:     attr(s, "href"),
	}
	return d
}

// identities names elements that carry no id attribute. The name is built
// from what the element shows and where it links, so it survives content
// being inserted before it; repeats are told apart by occurrence.
type identities map[string]int

func (ids identities) describe(decl int, s *goquery.Selection) domain.Descriptor {
	d := describe(decl, s)
	if d.ID != "" {
		return d
	}
	var parts []string
	if d.Group != "" {
		parts = append(parts, d.Group)
	}
	for _, ref := range []string{d.Href, d.Label, d.Action} {
		if ref != "" {
			parts = append(parts, ref)
			break
		}
	}
	base := "auto"
	if len(parts) > 0 {
		base += ":" + strings.Join(parts, "/")
	}
	ids[base]++
	d.ID = base
	if n := ids[base]; n > 1 {
		d.ID = fmt.Sprintf("%s~%d", base, n)
	}
	return d
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return strings.TrimSpace(v)
}

// intAttr parses an integer attribute; missing or malformed values count as 0
func intAttr(s *goquery.Selection, name string) int {
	v, err := strconv.Atoi(attr(s, name))
	if err != nil {
		return 0
	}
	return v
}

func optionalInt(s *goquery.Selection, name string) *int {
	raw, ok := s.Attr(name)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}

func rect(s *goquery.Selection) *domain.Rect {
	raw, ok := s.Attr("data-rect")
	if !ok {
		return nil
	}
	parts := splitList(raw)
	if len(parts) != 4 {
		return nil
	}
	var vals [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil
		}
		vals[i] = f
	}
	if vals[2] < 0 || vals[3] < 0 {
		return nil
	}
	return &domain.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
}

func disabled(s *goquery.Selection) bool {
	if _, ok := s.Attr("disabled"); ok {
		return true
	}
	return attr(s, "aria-disabled") == "true" || attr(s, "data-disabled") == "true"
}

func label(s *goquery.Selection) string {
	for _, name := range []string{"aria-label", "title", "alt"} {
		if v := attr(s, name); v != "" {
			return v
		}
	}
	if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
		return text
	}
	return attr(s.Find("img").First(), "alt")
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
