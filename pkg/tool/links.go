package tool

import (
	"fmt"
	"html"
	"strings"
)

// Modules are the third party scripts in lib/modules.
var modules = []string{
	"contextmenu", "cookie", "replacetext", "strophe",
	"strophe/attention", "strophe/disco", "strophe/caps", "strophe/ping",
	"strophe/storage", "strophe/time", "strophe/version", "moment",
	"xbbcode", "buzz", "babel", "filesaver", "isotope",
}

// Core are the client scripts in lib.
var core = []string{"chat", "xmpp", "commands", "ui", "visual", "init", "util"}

type links struct {
	css, modules, core string
}

// GenerateLinks returns the html that loads the stylesheets and scripts.
// Style selects the stylesheet that is active, the others are alternate stylesheets.
func generateLinks(cdnURL string, styles []string, style string) links {
	cdn := html.EscapeString(cdnURL)

	var css []string
	for _, s := range styles {
		alt := "alternate "
		if s == style {
			alt = ""
		}
		name := html.EscapeString(s)
		css = append(css, fmt.Sprintf(`<link class="alternate-style" rel="%sstylesheet" title="%s" type="text/css" href="%sassets/css/alt/%s.css" />`,
			alt, name, cdn, name))
	}

	var mod []string
	for _, m := range modules {
		mod = append(mod, fmt.Sprintf(`<script src="%slib/modules/%s.js"></script>`, cdn, m))
	}

	var cr []string
	for _, c := range core {
		cr = append(cr, fmt.Sprintf(`<script src="%slib/%s.js"></script>`, cdn, c))
	}

	return links{
		css:     strings.Join(css, "\n"),
		modules: strings.Join(mod, "\n"),
		core:    strings.Join(cr, "\n"),
	}
}

// StyleOptions returns a html select option for each style.
func styleOptions(styles []string) string {
	var r []string
	for _, s := range styles {
		n := html.EscapeString(s)
		r = append(r, fmt.Sprintf(`<option value="%s">%s</option>`, n, n))
	}
	return strings.Join(r, "\n")
}
