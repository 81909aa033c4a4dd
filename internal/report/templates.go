package report

const planTemplate = `  [dry-run] The following would be updated:

{{ range . }}    {{ printf "%-6s" .Action }} {{ .Path }}{{ if .IsDir }}/{{ end }}
{{ end }}
  No changes were made (dry-run).
`

const changelogTemplate = `  ---- CHANGELOG ----
{{ .Lines | join "\n" | indent 2 }}
{{ if .Truncated }}  ... (truncated)
{{ end }}  --------------------

`

const ignoredTemplate = `  The following are ignored and will be preserved:
{{ range . }}    - {{ . }}
{{ end }}  Warning: version mismatch may occur for ignored resources.

`

const statusTemplate = `📊 Multi-language configuration status:
   Current language: {{ .Current | default "not set" }}
   Switch method: {{ .Method | default "copy" }}
   Last updated: {{ .LastUpdated | default "Not set" }}

📁 File existence check:
{{ range .Locales }}
  {{ .Locale | upper }} language files:
{{ range .Sources }}    {{ .Path }}: {{ if .Exists }}✅{{ else }}❌{{ end }}{{ if .Excluded }} (git-ignored){{ end }}
{{ end }}{{ end }}
📝 Currently active files:
{{ range .Active }}   {{ .Path }}: {{ if .Exists }}✅{{ else }}❌{{ end }}
{{ end }}{{ if not .HasGitignore }}
⚠️  No .gitignore found: locale variants are not excluded from version control
{{ end }}`
