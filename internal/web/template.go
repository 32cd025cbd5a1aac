package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/arc-diem/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"hour": func(h int) string {
		return fmt.Sprintf("%02d:00", h)
	},
	"stamp": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return t.Format("2006-01-02 15:04")
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="60">
<title>Arc Diem</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
img.frame { border: 1px solid #888; image-rendering: pixelated; width: 288px; }
.day { color: #b58900; font-weight: bold; }
.night { color: #268bd2; font-weight: bold; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Arc Diem</h1>

{{if .Frames}}<p><img class="frame" src="/frame.png" alt="current face"></p>{{end}}

<h2>Face</h2>
<table>
{{if .Ready}}<tr><th>Mode</th><td class="{{.Mode}}">{{.Mode}}</td></tr>
<tr><th>Hand</th><td>{{printf "%.1f" .Face.Angle}}&deg;</td></tr>
<tr><th>Day</th><td>{{hour .Face.Boundary.StartHour}} to {{hour .Face.Boundary.EndHour}}</td></tr>
<tr><th>Next day start</th><td>{{stamp .Face.Daytime.StartStamp}}</td></tr>
<tr><th>Next night start</th><td>{{stamp .Face.Daytime.EndStamp}}</td></tr>
<tr><th>Clock</th><td>{{if .Face.Clock24}}24h{{else}}12h{{end}} ({{.Face.Locale}})</td></tr>
{{else}}<tr><th>Mode</th><td class="unknown">starting</td></tr>{{end}}
<tr><th>Frames</th><td>{{.Frames}} (last {{stamp .LastFrame}})</td></tr>
</table>

<h2>Phone</h2>
<table>
<tr><th>Connection</th><td class="{{if not .Face.ConnectionKnown}}unknown{{else if .Face.Connected}}connected{{else}}disconnected{{end}}">{{if not .Face.ConnectionKnown}}unknown{{else if .Face.Connected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Battery</th><td>{{.Face.Battery.Percent}}%{{if .Face.Battery.IsCharging}} (charging){{end}}{{if not .Face.BatteryShown}} hidden{{end}}</td></tr>
<tr><th>Bluetooth icon</th><td>{{.Face.Icon}}</td></tr>
<tr><th>Lost / found</th><td>{{.Face.Transitions.Lost}} / {{.Face.Transitions.Found}}</td></tr>
<tr><th>Haptics</th><td>{{.Face.Haptics}}{{if .Face.HapticErrors}} ({{.Face.HapticErrors}} failed){{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Topics</th><td>{{.Config.TopicPrefix}}/#</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Events</th><td>{{.Events.Dispatched}} dispatched, {{.Events.Delivered}} delivered</td></tr>
<tr><th>Display</th><td>{{.Config.Display}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> · <a href="/metrics">metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
