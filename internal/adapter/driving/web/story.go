package web

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Stories arrive as markdown from the trail service. Raw HTML in them is
// dropped by the renderer and the sanitizer runs on the result regardless.
var (
	storyRenderer = goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify, extension.Typographer),
	)
	storyPolicy = newStoryPolicy()
)

func newStoryPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnFullyQualifiedLinks(true)
	return p
}

// RenderStory converts a markdown story to sanitized HTML.
// Returns empty string for empty input.
func RenderStory(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := storyRenderer.Convert([]byte(src), &buf); err != nil {
		return storyPolicy.Sanitize(src)
	}

	return storyPolicy.Sanitize(buf.String())
}
