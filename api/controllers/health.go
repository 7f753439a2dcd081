package controllers

import (
	"fmt"
	"html/template"
	"net/http"
	"runtime"
	"time"

	"github.com/hospinv/hospinv-backend/pkg/config"
	"github.com/hospinv/hospinv-backend/pkg/db"
	"github.com/hospinv/hospinv-backend/pkg/logger"
)

var startedAt = time.Now()

const statusPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Hospital Inventory API</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 40rem; color: #222; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; }
td { padding: .4rem .6rem; border-bottom: 1px solid #ddd; }
td:first-child { font-weight: 600; width: 12rem; }
.ok { color: #1a7f37; } .bad { color: #b91c1c; }
</style>
</head>
<body>
<h1>Hospital Inventory API</h1>
<table>
<tr><td>Status</td><td class="{{if .DBOK}}ok{{else}}bad{{end}}">{{if .DBOK}}operational{{else}}degraded{{end}}</td></tr>
<tr><td>Environment</td><td>{{.Env}}</td></tr>
<tr><td>Port</td><td>{{.Port}}</td></tr>
<tr><td>Uptime</td><td>{{.Uptime}}</td></tr>
<tr><td>Memory in use</td><td>{{.Memory}}</td></tr>
<tr><td>Database</td><td class="{{if .DBOK}}ok{{else}}bad{{end}}">{{if .DBOK}}connected{{else}}unreachable{{end}}</td></tr>
<tr><td>Checked at</td><td>{{.CheckedAt}}</td></tr>
</table>
</body>
</html>`

var statusPageTmpl = template.Must(template.New("status").Parse(statusPageHTML))

type statusPageData struct {
	Env       string
	Port      string
	Uptime    string
	Memory    string
	DBOK      bool
	CheckedAt string
}

// StatusPage renders the operational HTML page served at / and /health.
func StatusPage(cfg *config.Config, dbP db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbOK := false
		if dbP != nil {
			dbOK = dbP.Ping(r.Context()) == nil
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		data := statusPageData{
			Env:       cfg.App.Env,
			Port:      cfg.App.Port,
			Uptime:    time.Since(startedAt).Round(time.Second).String(),
			Memory:    fmt.Sprintf("%.1f MB", float64(mem.Alloc)/(1<<20)),
			DBOK:      dbOK,
			CheckedAt: time.Now().Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := statusPageTmpl.Execute(w, data); err != nil && logg != nil {
			logg.Error(r.Context(), "render status page", err)
		}
	}
}
