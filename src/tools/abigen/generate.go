package abigen

import (
	"io"
	"strings"
	"text/template"
)

const fileTemplateText = `// Code generated by abigen from {{.Source}}. DO NOT EDIT.

package {{.Contract.Package}}
{{range .Contract.Groups}}
{{range commentLines .Comment}}// {{.}}
{{end}}const (
{{- range .Consts}}
	{{.Name}} = {{.Value}}
{{- end}}
)
{{end}}`

var fileTemplate = template.Must(template.New("file").
	Funcs(template.FuncMap{"commentLines": commentLines}).
	Parse(fileTemplateText))

func commentLines(c string) []string {
	return strings.Split(strings.TrimRight(c, "\n"), "\n")
}

type generateInput struct {
	Source   string
	Contract *Contract
}

// Generate writes the Go source for a contract.  Source is the input
// filename recorded in the generated-file header.
func Generate(w io.Writer, source string, c *Contract) error {
	return fileTemplate.Execute(w, generateInput{Source: source, Contract: c})
}
