// Package dashboard contains the HTTP handler for the admin report page.
// It is the read side of the service: it never writes to the store.
package dashboard

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/coursedesk/registrations-api/internal/report"
	"github.com/coursedesk/registrations-api/internal/storage"
	"github.com/coursedesk/registrations-api/internal/types"
)

// page is the data handed to the template: the summary count, the chart
// as an embeddable data URI (empty when there is nothing to chart), and
// every record in storage order.
type page struct {
	Total int
	// template.URL marks the data: URI as trusted — html/template
	// would otherwise strip it from the src attribute.
	ChartURI template.URL
	Records  []types.Registration
}

// The whole document is one template, parsed once at package init.
// Presentation lives here; counting and charting live in report.
var pageTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Admin Dashboard</title></head>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f4f7f9;">
    <h1 style="color:#003366; text-align:center;">Student Registration Dashboard</h1>
    <div style="max-width:800px;margin:20px auto;padding:15px;background:#fff;border-radius:8px;box-shadow:0 2px 10px rgba(0,0,0,0.05);">
        <h2 style="color:#FF9933;">Statistics Overview</h2>
        <p>Total Registrations: <strong style="font-size:1.2em;">{{.Total}}</strong></p>
    </div>
    {{if .ChartURI}}<img src="{{.ChartURI}}" alt="Course Registration Chart" style="max-width:800px;width:100%;height:auto;margin:30px auto;display:block;border-radius:8px;box-shadow:0 4px 15px rgba(0,0,0,0.1);">
    {{else}}<p style="text-align: center;">Not enough data (minimum 1 registration) for the graph yet.</p>
    {{end}}<h2 style="color:#003366; text-align:center;">All Registrations Data</h2>
    <div style="max-width:1000px;margin:20px auto;overflow-x:auto;">
        <table class="data-table" style="width:100%;border-collapse:collapse;background:#fff;">
            <thead>
                <tr>
                    <th style="padding:8px;border-bottom:2px solid #003366;text-align:left;">name</th>
                    <th style="padding:8px;border-bottom:2px solid #003366;text-align:left;">mobile</th>
                    <th style="padding:8px;border-bottom:2px solid #003366;text-align:left;">course</th>
                    <th style="padding:8px;border-bottom:2px solid #003366;text-align:left;">timestamp</th>
                </tr>
            </thead>
            <tbody>
                {{range .Records}}<tr>
                    <td style="padding:8px;border-bottom:1px solid #ddd;">{{.Name}}</td>
                    <td style="padding:8px;border-bottom:1px solid #ddd;">{{.Mobile}}</td>
                    <td style="padding:8px;border-bottom:1px solid #ddd;">{{.Course}}</td>
                    <td style="padding:8px;border-bottom:1px solid #ddd;">{{.Timestamp}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>
    </div>
</body>
</html>
`))

const noDataHTML = "<h3 style='text-align:center;'>No registrations found yet.</h3>"

// ─────────────────────────────────────────────────────────────────────────────
// New handles GET /dashboard
// Renders the HTML report: total count, per-course bar chart, full table.
//
// Responses:
//
//	200 OK        — the report, or a "no registrations" page when the
//	                store is empty or does not exist yet
//	500 Internal  — the store could not be read or the page could not
//	                be built; the body is a generic error page, never
//	                a stack trace
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("rendering dashboard")

		recs, err := store.GetRegistrations()
		if err != nil {
			slog.Error("error reading registrations",
				slog.String("error", err.Error()))
			writeErrorPage(w)
			return
		}

		// Empty store is a normal state, not an error.
		if len(recs) == 0 {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(noDataHTML))
			return
		}

		// An empty chart URI is legal (no course values at all); the
		// template falls back to a message in that case. A render error
		// is not, and takes the generic-error path.
		chartURI, err := report.BuildChart(recs)
		if err != nil {
			slog.Error("error building chart",
				slog.String("error", err.Error()))
			writeErrorPage(w)
			return
		}

		data := page{
			Total:    len(recs),
			ChartURI: template.URL(chartURI),
			Records:  recs,
		}

		// Render into a buffer first. Executing straight into w would
		// lock in a 200 with the first byte, leaving a truncated page
		// if the template fails halfway; buffering keeps the generic
		// error page available for the whole render.
		var buf bytes.Buffer
		if err := pageTmpl.Execute(&buf, data); err != nil {
			slog.Error("error executing dashboard template",
				slog.String("error", err.Error()))
			writeErrorPage(w)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

// writeErrorPage emits the generic 500 presentation. Internals stay in
// the log, not in the response.
func writeErrorPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("<h3 style='text-align:center;'>An error occurred while building the dashboard.</h3>"))
}
