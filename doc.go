// Package pitch renders a single Markdown document as terminal pages.
//
// The pipeline splits a parsed document into pages at a configured break
// condition, transforms each page's block nodes into a styled section tree,
// and lays the tree out into a fixed-size character grid. Measurement and
// drawing share one word-wrap routine, so the height reported for a section
// always equals the rows it draws.
//
// Core properties:
//   - Page splitting on thematic breaks or headings of a given level
//   - Document-wide footnote registry with per-page reference tracking
//   - Two-pass flow layout with exact height/render agreement
//   - Styling resolved from configuration and front matter
//
// Example:
//
//	doc, err := pitch.ParseDocument(src, pitch.ParseOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	deck, err := pitch.Collect(pitch.NewContext(cfg, highlighter, logger), doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = pitch.Present(cfg, deck)
//
// The cmd/pitch binary wires the presenter UI; Deck.WriteANSI provides a
// non-interactive ANSI dump of all pages.
package pitch
