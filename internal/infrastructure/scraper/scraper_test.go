package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	html := `<html><head><title>x</title><style>.a{}</style></head>
<body>
  <h1>Café   Acme</h1>
  <script>var x = 1;</script>
  <p>Tostamos
     cada día.</p>
  <noscript>enable js</noscript><svg><text>logo</text></svg>
</body></html>`

	text, err := ExtractText(html)
	require.NoError(t, err)
	assert.Equal(t, "Café Acme Tostamos cada día.", text)
}

func TestExtractTextTruncates(t *testing.T) {
	text, err := ExtractText("<body>" + strings.Repeat("ñ", MaxChars+50) + "</body>")
	require.NoError(t, err)
	assert.Len(t, []rune(text), MaxChars)
}

func TestReadText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "Chrome")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<body><p>Hola</p></body>"))
	}))
	defer ts.Close()

	s := New(5 * time.Second)
	text, err := s.ReadText(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "Hola", text)

	_, err = s.ReadText(context.Background(), ts.URL+"/missing")
	assert.Error(t, err)
}
