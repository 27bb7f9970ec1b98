// Package httpapi is the HTTP transport adapter (ports/adapters "delivery" layer).
//
// It depends on the application services in internal/app and renders their
// results and apperr values as HTTP responses. It decodes request bodies into
// untyped payloads; all field validation lives in the application layer.
//
// It should NOT be imported by internal/app or internal/domain.
package httpapi
