package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/core"
)

func TestChannelTypeOf(t *testing.T) {
	tests := []struct {
		channel string
		want    ChannelType
	}{
		{"EL PAÍS: el periódico global", ChannelElPais},
		{"El País", ChannelElPais},
		{"20MINUTOS - Lo último", ChannelVeinteMinutos},
		{"ElDiario.es", ChannelElDiario},
		{"elmundo.es - portada", ChannelElMundo},
		{"Other", ChannelOther},
		{"", ChannelOther},
	}

	for _, tt := range tests {
		t.Run(tt.channel, func(t *testing.T) {
			assert.Equal(t, tt.want, ChannelTypeOf(tt.channel))
		})
	}
}

func TestCleaner_Clean(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		html    string
		want    string
	}{
		{
			name:    "generic body",
			channel: "Other",
			html: `<html><head><title>Example Page</title></head><body>
				<h1>Welcome to Example Page</h1>
				<p>This is a paragraph with <strong>bold</strong> text.</p>
				<ul><li>Item 1</li><li>Item 2</li></ul>
				<script>var x = 1;</script>
			</body></html>`,
			want: "Welcome to Example Page\n\nThis is a paragraph with bold text.\n\nItem 1\n\nItem 2",
		},
		{
			name:    "body without blocks",
			channel: "Other",
			html:    `<html><body>  just   text  </body></html>`,
			want:    "just text",
		},
		{
			name:    "el pais article body only",
			channel: "EL PAÍS",
			html: `<html><body><p>menu</p><article>
				<div data-dtm-region="articulo_titulo"><p>not body</p></div>
				<div data-dtm-region="articulo_cuerpo"><p>Uno</p><p>Dos</p></div>
			</article></body></html>`,
			want: "Uno\n\nDos",
		},
		{
			name:    "20minutos first article",
			channel: "20minutos.es",
			html: `<html><body><p>outside</p><article><p>Primero</p></article>
				<article><p>Segundo</p></article></body></html>`,
			want: "Primero",
		},
		{
			name:    "eldiario article text",
			channel: "ElDiario.es",
			html: `<html><body><main><p class="article-text">Texto</p><p>pie</p>
				<p class="article-text">Más</p></main></body></html>`,
			want: "Texto\n\nMás",
		},
		{
			name:    "eldiario without main",
			channel: "ElDiario.es",
			html:    `<html><body><p>Cuerpo</p></body></html>`,
			want:    "Cuerpo",
		},
		{
			name:    "elmundo article",
			channel: "ELMUNDO",
			html:    `<html><body><p>nav</p><article><p>Noticia</p></article></body></html>`,
			want:    "Noticia",
		},
		{
			name:    "elmundo without article",
			channel: "ELMUNDO",
			html:    `<html><body><p>Cuerpo</p></body></html>`,
			want:    "Cuerpo",
		},
		{
			name:    "el pais without article",
			channel: "EL PAÍS",
			html:    `<html><body><p>Cuerpo</p></body></html>`,
			want:    "",
		},
	}

	c := NewCleaner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, perr := c.Clean(tt.channel, tt.html)
			require.Nil(t, perr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleaner_EmptyInput(t *testing.T) {
	_, perr := NewCleaner(nil).Clean("Other", "")
	require.NotNil(t, perr)
	assert.Equal(t, core.EmptyInput, perr.Kind)
}
