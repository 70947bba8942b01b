package mdinterop

import (
	"errors"

	"github.com/alnah/go-mdinterop/internal/assets"
	"github.com/alnah/go-mdinterop/internal/doc"
	"github.com/alnah/go-mdinterop/internal/parse"
	"github.com/alnah/go-mdinterop/internal/pipeline"
	"github.com/alnah/go-mdinterop/internal/transform"
)

// Sentinel errors for library operations.
var (
	ErrNilDocument   = errors.New("document cannot be nil")
	ErrEmptyDocument = errors.New("document has no content")
	ErrNotDocument   = errors.New("root node is not a doc node")
	ErrUnknownFormat = errors.New("unknown export format")

	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrMinify         = pipeline.ErrMinify
	ErrUnknownStyle   = assets.ErrStyleNotFound
	ErrInvalidStyle   = assets.ErrInvalidAssetName

	// Paste errors. The dispatcher never returns them, it logs them and
	// reports the paste as not handled.
	ErrStructural         = parse.ErrStructural
	ErrSchemaUnavailable  = doc.ErrSchemaUnavailable
	ErrInvalidContent     = doc.ErrInvalidContent
	ErrUnsupportedRange   = transform.ErrUnsupportedRange
	ErrPositionOutOfRange = transform.ErrPositionOutOfRange

	// Document codec errors.
	ErrUnknownNodeType = doc.ErrUnknownNodeType
	ErrUnknownMarkType = doc.ErrUnknownMarkType
)
