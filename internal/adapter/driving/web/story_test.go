package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderStory_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderStory(""))
}

func TestRenderStory_CharacterNamesInBold(t *testing.T) {
	result := RenderStory("**Ember** the dragon waved hello.")
	assert.Contains(t, result, "<strong>Ember</strong>")
}

func TestRenderStory_Emphasis(t *testing.T) {
	result := RenderStory("a *friendly* dragon")
	assert.Contains(t, result, "<em>friendly</em>")
}

func TestRenderStory_Paragraphs(t *testing.T) {
	result := RenderStory("The bridge was built in 1887.\n\nSettlers carried goods across it.")
	assert.Equal(t, 2, strings.Count(result, "<p>"))
}

func TestRenderStory_SmartQuotes(t *testing.T) {
	result := RenderStory(`"Follow me," said Wizard Orion.`)
	assert.True(t,
		strings.Contains(result, "“Follow me,”") || strings.Contains(result, "&ldquo;Follow me,&rdquo;"),
		"expected curly quotes in %q", result)
}

func TestRenderStory_ExternalLinksOpenInNewTab(t *testing.T) {
	result := RenderStory("Read more at https://example.com/mill")
	assert.Contains(t, result, `href="https://example.com/mill"`)
	assert.Contains(t, result, `target="_blank"`)
}

func TestRenderStory_DropsRawHTML(t *testing.T) {
	result := RenderStory(`<script>alert("xss")</script>`)
	assert.NotContains(t, result, "<script>")
	assert.NotContains(t, result, "alert")
}

func TestRenderStory_SanitizesEventHandlers(t *testing.T) {
	result := RenderStory(`<img src="x.jpg" onerror="alert(1)">`)
	assert.NotContains(t, result, "onerror")
}

func TestRenderStory_Strikethrough(t *testing.T) {
	result := RenderStory("~~dragons~~ friendly owls")
	assert.Contains(t, result, "<del>dragons</del>")
}
