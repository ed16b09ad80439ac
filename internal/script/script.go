// Package script renders the browser glue served alongside the log table.
package script

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"text/template"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// M is a convenience wrapper for map[string]interface{} for supplying values to templates
type M map[string]interface{}

// Set is a parsed group of script templates addressed by file name.
type Set struct {
	tmpl *template.Template
}

func ParseFS(fsys fs.FS, patterns ...string) (*Set, error) {
	t, err := template.ParseFS(fsys, patterns...)
	if err != nil {
		return nil, err
	}
	return &Set{tmpl: t}, nil
}

func (s *Set) Execute(name string, data interface{}) (string, error) {
	var w bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&w, name, data); err != nil {
		return "", err
	}
	return w.String(), nil
}

func (s *Set) MustExecute(name string, data interface{}) string {
	out, err := s.Execute(name, data)
	if err != nil {
		panic(fmt.Sprintf("script execute template (%s)", err))
	}
	return out
}

var scripts *Set

// Parse loads the embedded templates. It may be called only once.
func Parse() error {
	if scripts != nil {
		panic("script.Parse can be called only once")
	}
	s, err := ParseFS(embedded, "templates/*.tmpl")
	if err != nil {
		return err
	}
	scripts = s
	return nil
}

func MustParse() {
	if err := Parse(); err != nil {
		panic(fmt.Sprintf("script parse (%s)", err))
	}
}

func Execute(name string, data interface{}) (string, error) {
	if scripts == nil {
		return "", fmt.Errorf("script: templates not parsed")
	}
	return scripts.Execute(name, data)
}

func MustExecute(name string, data interface{}) string {
	s, err := Execute(name, data)
	if err != nil {
		panic(fmt.Sprintf("script execute template (%s)", err))
	}
	return s
}
