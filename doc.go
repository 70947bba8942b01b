// Package mdinterop moves content between markdown text and a structured
// rich-text document tree.
//
// # Paste
//
// A Paster recognizes markdown-shaped clipboard text and turns it into one
// atomic transaction against the host's document:
//
//	p := mdinterop.NewPaster()
//	tr, ok := p.HandlePaste(mdinterop.State{
//	    Doc:       current,
//	    Selection: mdinterop.Caret(pos),
//	}, clipboardText)
//	if !ok {
//	    // fall back to plain-text paste
//	}
//	current = tr.Doc
//
// Recognition follows a fixed priority, table then list then image then
// heading, and only the first match is acted upon. Text that matches
// nothing, or that fails to parse, is reported as not handled and leaves
// the document untouched.
//
// # Export
//
// SerializeToMarkdown renders a tree back to markdown. ExportHTML goes one
// step further through goldmark with syntax highlighting, sanitizes the
// result and can wrap it in a standalone page:
//
//	html, err := mdinterop.ExportHTML(ctx, tree,
//	    mdinterop.WithStandalone(true),
//	    mdinterop.WithTitle("Notes"),
//	)
//
// PlainText returns the text content of a tree with one blank line between
// blocks.
//
// # Documents
//
// Trees are built from Node values. ParseDocument and FormatDocument read
// and write the editor's JSON shape, so documents saved by the editor can
// be processed directly.
package mdinterop
