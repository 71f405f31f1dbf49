package server

import (
	"embed"
	"html/template"
	"strconv"

	"github.com/bobmcallan/vire-dash/internal/common"
)

//go:embed templates/*.html
var templateFS embed.FS

func parsePages() *template.Template {
	funcs := template.FuncMap{
		"money": common.FormatMoney,
		"num":   common.FormatNumber,
		"pct": func(v float64) string {
			return common.FormatPercent(v, 2)
		},
		"qty": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"clean":       common.Sanitize,
		"placeholder": func() string { return common.Placeholder },
		"plClass": func(v float64) string {
			if v >= 0 {
				return "profit"
			}
			return "loss"
		},
	}
	return template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
