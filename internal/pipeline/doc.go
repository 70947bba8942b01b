// Package pipeline holds the text stages around the document model.
//
// On the way in, NormalizePaste cleans clipboard text before it is
// classified. On the way out, serialized markdown goes through
// PrepareMarkdown, goldmark (GoldmarkConverter), the Sanitizer,
// ConvertPlaceholders and optionally WrapDocument, CSSInjection and the
// Minifier. The stages are independent so callers can assemble them.
package pipeline
