package pipeline

import (
	"errors"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

// ErrMinify indicates the minifier rejected its input.
var ErrMinify = errors.New("HTML minification failed")

// Minifier shrinks exported HTML, including inline <style> blocks.
type Minifier struct {
	m *minify.M
}

// NewMinifier returns a Minifier for HTML and CSS.
func NewMinifier() *Minifier {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	return &Minifier{m: m}
}

// Minify returns the minified form of htmlContent.
func (m *Minifier) Minify(htmlContent string) (string, error) {
	out, err := m.m.String("text/html", htmlContent)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMinify, err)
	}
	return out, nil
}
