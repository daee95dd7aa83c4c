// Package markdown, blog içeriğini Markdown'dan güvenli HTML'e çevirir.
//
// goldmark ile render edilir, bluemonday UGC policy ile sanitize edilir.
// İçerik admin tarafından yazılsa da backend'den geldiği için güvenilmez kabul edilir.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer, Markdown → sanitize edilmiş HTML dönüştürücü. Eşzamanlı kullanıma uygundur.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer, GFM eklentileriyle (tablo, strikethrough, linkify) bir Renderer oluşturur.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: policy,
	}
}

// Render, Markdown kaynağını template'e güvenle basılabilecek HTML'e çevirir.
func (r *Renderer) Render(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// Excerpt, listeleme için düz metin özet üretir (HTML etiketleri atılır).
func (r *Renderer) Excerpt(source string, max int) string {
	html, err := r.Render(source)
	if err != nil {
		return ""
	}
	text := []rune(bluemonday.StrictPolicy().Sanitize(string(html)))
	if len(text) <= max {
		return strings.TrimSpace(string(text))
	}
	return strings.TrimSpace(string(text[:max])) + "…"
}
