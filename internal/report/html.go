package report

import (
	"embed"
	"html/template"
	"io"
	"path"
)

// content holds our static content.
//
//go:embed templates/*
var content embed.FS

type printPage struct {
	Title string
	Body  string
}

// HTML renders the report text inside a printable page that opens the print
// dialog once loaded.
func HTML(out io.Writer, title string, r Report) error {
	return renderTemplate(out, "print.html.tmpl", printPage{
		Title: title,
		Body:  r.Text(),
	})
}

func renderTemplate(out io.Writer, templateName string, value interface{}) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}
	t := template.Must(template.New(templateName).Parse(string(tmpl)))
	err = t.Execute(out, value)
	if err != nil {
		return err
	}

	return nil
}
