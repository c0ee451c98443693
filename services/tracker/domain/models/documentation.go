package models

import "github.com/ghuser/worktrack/pkg/result"

// Documentation is a titled document whose body lives in object storage.
type Documentation struct {
	id         ID[Documentation]
	title      DocumentationTitle
	format     DocumentationFormat
	contentRef ContentReference
}

func NewDocumentation() *Documentation {
	return &Documentation{id: NewID[Documentation]()}
}

// RestoreDocumentation rebuilds a documentation without validating it.
func RestoreDocumentation(id ID[Documentation], title, format, contentRef string) *Documentation {
	return &Documentation{
		id:         id,
		title:      DocumentationTitle{title},
		format:     DocumentationFormat{format},
		contentRef: ContentReference{contentRef},
	}
}

func (d *Documentation) ID() ID[Documentation]              { return d.id }
func (d *Documentation) Title() DocumentationTitle          { return d.title }
func (d *Documentation) Format() DocumentationFormat        { return d.format }
func (d *Documentation) ContentReference() ContentReference { return d.contentRef }
func (d *Documentation) HasContent() bool                   { return !d.contentRef.IsZero() }

func (d *Documentation) UpdateTitle(s string) result.Result {
	return assign(&d.title, NewDocumentationTitle(s))
}

func (d *Documentation) UpdateFormat(s string) result.Result {
	return assign(&d.format, NewDocumentationFormat(s))
}

func (d *Documentation) UpdateContentReference(s string) result.Result {
	return assign(&d.contentRef, NewContentReference(s))
}

// DocumentationBuilder assembles a Documentation from raw input.
type DocumentationBuilder struct {
	builder
	doc *Documentation
}

func NewDocumentationBuilder() *DocumentationBuilder {
	return &DocumentationBuilder{doc: NewDocumentation()}
}

func (b *DocumentationBuilder) WithTitle(s string) *DocumentationBuilder {
	b.apply("title", b.doc.UpdateTitle(s))
	return b
}

func (b *DocumentationBuilder) WithFormat(s string) *DocumentationBuilder {
	b.apply("format", b.doc.UpdateFormat(s))
	return b
}

func (b *DocumentationBuilder) WithContentReference(s string) *DocumentationBuilder {
	b.apply("content_reference", b.doc.UpdateContentReference(s))
	return b
}

// Build requires a title and a format. Content may be attached later.
func (b *DocumentationBuilder) Build() result.Of[*Documentation] {
	d := b.doc
	return build(&b.builder, d,
		requirement{"title", ErrDocumentationTitleEmpty, func() bool { return !d.title.IsZero() }},
		requirement{"format", ErrFormatEmpty, func() bool { return !d.format.IsZero() }},
	)
}

// MakeDefaultDocumentation builds a markdown document without content.
func MakeDefaultDocumentation() result.Of[*Documentation] {
	return NewDocumentationBuilder().
		WithTitle("Onboarding guide").
		WithFormat(".md").
		Build()
}
