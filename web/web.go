// Package web embeds the storefront HTML views.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every view. Each view is addressable by its file name, e.g. "index.html".
func Templates() (*template.Template, error) {
	t, err := template.New("views").Funcs(Funcs()).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	return t, nil
}

// Funcs are the helpers available inside views.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"upper": strings.ToUpper,
		"deref": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
	}
}
