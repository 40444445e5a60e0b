package cli

import "text/template"

const identityTemplate = `
[{{.Scope}}]
{{- if .Identity }}
Status:   Authenticated
Username: {{.Identity.Username}}
User ID:  {{.Identity.ID}}
Role:     {{.Identity.Role}}
Expires:  {{.Expires}}
{{- with .Session }}
{{- if .TokenType }}
Token:    {{.TokenType}}
{{- end }}
{{- if and .Username (ne .Username $.Identity.Username) }}
Login:    {{.Username}}
{{- end }}
{{- end }}
{{- else }}
Status:   Not authenticated
{{- end }}
`

const adminTemplate = `
=== Admin Details ===

Username: {{.Username}}
ID:       {{.ID}}
Level:    {{levelName .Level}}
{{- if .ParentID }}
Parent:   {{.ParentID}}
{{- end }}
{{- if .Disabled }}
Status:   disabled
{{- end }}
`

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"levelName": levelName,
}).Parse(`{{define "identity"}}` + identityTemplate + `{{end}}{{define "admin"}}` + adminTemplate + `{{end}}`))
