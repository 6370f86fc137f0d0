package mailer

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stromvarsel/internal/model"
)

var fakePNG = []byte("\x89PNG\r\n\x1a\nnot-a-real-png")

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(fakePNG)
	}))
}

func exceedance(day, hour int, price string) model.PricePoint {
	return model.PricePoint{
		Time:  time.Date(2024, 1, day, hour, 0, 0, 0, time.FixedZone("CET", 3600)),
		Price: decimal.RequireFromString(price),
	}
}

func TestCompose(t *testing.T) {
	server := imageServer(t)
	defer server.Close()

	c := NewComposer("varsel@example.test")
	n, err := c.Compose("a@x.test", []model.PricePoint{exceedance(2, 19, "1.5")}, server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Strømprisvarsel", n.Subject)
	assert.Equal(t, "varsel@example.test", n.From)
	assert.Equal(t, "a@x.test", n.To)

	// Ordered parts: preamble+lines, HTML fragment, inline image, signature.
	require.Len(t, n.Parts, 4)
	text := string(n.Parts[0].Body)
	assert.Contains(t, text, "Hei,")
	assert.Contains(t, text, "02/01/2024 19:00 vil strømprisen være 1.5 NOK per kWh")
	assert.Contains(t, string(n.Parts[1].Body), `src="cid:strompris-chart"`)
	assert.Equal(t, "image/png", n.Parts[2].ContentType)
	assert.Equal(t, "strompris-chart", n.Parts[2].ContentID)
	assert.Equal(t, fakePNG, n.Parts[2].Body)
	assert.Contains(t, string(n.Parts[3].Body), "Mvh\nStrømprisvarsel")
}

func TestCompose_OneLinePerExceedance(t *testing.T) {
	server := imageServer(t)
	defer server.Close()

	exceedances := []model.PricePoint{
		exceedance(2, 8, "1.2"),
		exceedance(2, 9, "1.35"),
		exceedance(2, 19, "2.0"),
	}
	c := NewComposer("varsel@example.test")
	n, err := c.Compose("a@x.test", exceedances, server.URL)
	require.NoError(t, err)

	text := string(n.Parts[0].Body)
	lines := 0
	for _, e := range exceedances {
		line := PeakLine(e)
		assert.Contains(t, text, strings.TrimSuffix(line, "\n"))
		lines += strings.Count(text, line)
	}
	assert.Equal(t, len(exceedances), lines)
}

func TestCompose_EmptyExceedances(t *testing.T) {
	c := NewComposer("varsel@example.test")
	_, err := c.Compose("a@x.test", nil, "http://unused.invalid")
	var composeErr *ComposeError
	require.ErrorAs(t, err, &composeErr)
}

func TestCompose_NonImageResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer server.Close()

	c := NewComposer("varsel@example.test")
	_, err := c.Compose("a@x.test", []model.PricePoint{exceedance(2, 19, "1.5")}, server.URL)
	var composeErr *ComposeError
	require.ErrorAs(t, err, &composeErr)
}

func TestCompose_ImageFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewComposer("varsel@example.test")
	_, err := c.Compose("a@x.test", []model.PricePoint{exceedance(2, 19, "1.5")}, server.URL)
	var composeErr *ComposeError
	require.ErrorAs(t, err, &composeErr)
}

func TestNotificationBytes(t *testing.T) {
	server := imageServer(t)
	defer server.Close()

	c := NewComposer("varsel@example.test")
	n, err := c.Compose("a@x.test", []model.PricePoint{exceedance(2, 19, "1.5")}, server.URL)
	require.NoError(t, err)

	msg, err := n.Bytes()
	require.NoError(t, err)
	s := string(msg)

	assert.Contains(t, s, "From: varsel@example.test\r\n")
	assert.Contains(t, s, "To: a@x.test\r\n")
	assert.Contains(t, s, "MIME-Version: 1.0\r\n")
	assert.Contains(t, s, "Content-Type: multipart/related; boundary=")
	assert.Contains(t, s, "Content-ID: <strompris-chart>")
	assert.Contains(t, s, "Content-Disposition: inline")
	assert.Contains(t, s, "Content-Transfer-Encoding: base64")
	// Subject carries non-ASCII and must be encoded-word form.
	assert.Contains(t, s, "Subject: =?utf-8?q?Str=C3=B8mprisvarsel?=\r\n")
}
