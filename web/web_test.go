package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_ParseEveryView(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"index.html", "product.html", "cart.html", "users.html",
		"login.html", "register.html", "realtimeproducts.html", "chat.html", "error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_LayoutOnlyViews(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"login.html", "register.html", "realtimeproducts.html", "chat.html"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tmpl.ExecuteTemplate(&buf, name, map[string]any{"Title": "T", "Email": "", "Role": ""})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "<title>T · Storefront</title>")
		})
	}
}

func TestFuncs(t *testing.T) {
	f := Funcs()
	assert.Equal(t, "$3.50", f["money"].(func(float64) string)(3.5))

	deref := f["deref"].(func(*int) int)
	n := 4
	assert.Equal(t, 4, deref(&n))
	assert.Equal(t, 0, deref(nil))
}
