package api

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/khanhnv2901/headercheck/internal/auditor"
	consts "github.com/khanhnv2901/headercheck/internal/shared/constants"
	"go.uber.org/zap"
)

// Disclaimer is shown above the form and in CLI banners.
const Disclaimer = "Only assess systems you own or have explicit permission to test."

const formTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Web Security Header Checker</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
input[type=text] { width: 100%; padding: .5rem; box-sizing: border-box; }
button { margin-top: .5rem; padding: .5rem 1.5rem; }
pre { background: #f4f4f4; padding: 1rem; overflow-x: auto; }
.error { color: #b00020; }
</style>
</head>
<body>
<h1>Web Security Header Checker</h1>
<p>{{.Disclaimer}}</p>
<form method="post" action="/">
<label for="url">URL (include http/https)</label>
<input type="text" id="url" name="url" placeholder="https://example.com" value="{{.URL}}">
<button type="submit">Check</button>
</form>
{{if .Result}}
<h2>Results</h2>
<pre{{if .Failed}} class="error"{{end}}>{{.Result}}</pre>
{{end}}
</body>
</html>
`

type formPage struct {
	Disclaimer string
	URL        string
	Result     string
	Failed     bool
}

type formRenderer struct {
	tmpl *template.Template
}

func newFormRenderer() *formRenderer {
	return &formRenderer{tmpl: template.Must(template.New("form").Parse(formTemplate))}
}

func (f *formRenderer) render(w http.ResponseWriter, status int, page formPage) error {
	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, page); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// handleForm serves the form on GET and binds the submit action directly to
// the auditor on POST.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := formPage{Disclaimer: Disclaimer}
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, consts.MaxRequestBodyBytes)
		if err := r.ParseForm(); err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		page.URL = r.PostFormValue("url")

		doc := s.runCheck(r, page.URL)
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		page.Result = string(data)
		_, page.Failed = doc.(*auditor.ErrorResult)
	default:
		s.methodNotAllowed(w, r)
		return
	}

	// The form itself always renders with 200; failures are shown inline.
	if err := s.form.render(w, http.StatusOK, page); err != nil {
		s.requestLogger(r).Error("render_form_failed", zap.Error(err))
	}
}
