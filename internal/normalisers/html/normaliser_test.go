package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	in := `<html><head><title>T</title><style>p{}</style></head>
<body><!-- note --><h1>Heading</h1><p>First &amp; <b>bold</b>.</p>
<script>alert(1)</script><ul><li>one</li><li>two</li></ul>line<br/>break</body></html>`

	assert.Equal(t, "Heading\nFirst & bold.\none\ntwo\nline\nbreak", Strip(in))
}

func TestStrip_CollapsesSpaces(t *testing.T) {
	assert.Equal(t, "a b c", Strip("<p>a   b&nbsp;\tc</p>"))
}

func TestNormaliser(t *testing.T) {
	n := New()

	out, err := n.Normalise(context.Background(), "<p>x</p>")

	require.NoError(t, err)
	assert.Equal(t, "x", out)
	assert.Equal(t, 50, n.Priority())
	assert.Contains(t, n.SupportedMIMETypes(), "text/html")
}
