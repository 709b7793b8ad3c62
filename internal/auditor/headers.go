package auditor

const (
	// MissingMarker is recorded for an applicable header absent from the response.
	MissingMarker = "MISSING"
	// NotApplicableMarker is recorded for HTTPS-only headers when the final URL is plain HTTP.
	NotApplicableMarker = "N/A (only applicable to HTTPS)"

	httpPrefix  = "http://"
	httpsPrefix = "https://"
)

// HeaderSpec describes one header on the watch-list.
type HeaderSpec struct {
	Name        string `json:"name" yaml:"name"`
	HTTPSOnly   bool   `json:"https_only" yaml:"https_only"`
	Description string `json:"description" yaml:"description"`
}

// securityHeaders is ordered; results and rendered documents follow this order.
var securityHeaders = []HeaderSpec{
	{
		Name:        "Content-Security-Policy",
		Description: "Restricts the sources scripts, styles and other content may load from",
	},
	{
		Name:        "X-Content-Type-Options",
		Description: "Stops browsers from MIME-sniffing a response away from its declared type",
	},
	{
		Name:        "X-Frame-Options",
		Description: "Controls whether the page may be framed (clickjacking protection)",
	},
	{
		Name:        "Referrer-Policy",
		Description: "Limits how much referrer information leaves the site",
	},
	{
		Name:        "Strict-Transport-Security",
		HTTPSOnly:   true,
		Description: "Forces future visits over HTTPS; only meaningful on HTTPS responses",
	},
}

// Headers returns a copy of the watch-list in evaluation order.
func Headers() []HeaderSpec {
	out := make([]HeaderSpec, len(securityHeaders))
	copy(out, securityHeaders)
	return out
}

// HeaderNames returns the watch-list names in evaluation order.
func HeaderNames() []string {
	names := make([]string, 0, len(securityHeaders))
	for _, spec := range securityHeaders {
		names = append(names, spec.Name)
	}
	return names
}
