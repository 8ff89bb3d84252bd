package server

import (
	"html/template"
	"regexp"
)

// timestampLinkRe matches the markdown seek links the normalizer
// produces; nothing else in the model's text is allowed through as HTML.
var timestampLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https://youtu\.be/[\w-]+\?t=\d+)\)`)

// renderResultText escapes the model's free text and rewrites the
// timestamp markdown links into anchors so they actually seek the
// video when clicked.
func renderResultText(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	linked := timestampLinkRe.ReplaceAllString(escaped, `<a href="$2" target="_blank">$1</a>`)
	return template.HTML(linked)
}

// dashboardTemplate is the whole single-page UI. Styling mirrors a
// dark dashboard: metric cards, a speaker card, question boxes and a
// talk-ratio bar.
const dashboardTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Smart YouTube Summarizer</title>
<style>
  body { background: #0E1117; color: #FAFAFA; font-family: sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; }
  input, select, button, textarea { font-size: 1em; padding: 8px; border-radius: 5px; border: 1px solid #333; background: #262730; color: #FAFAFA; }
  button { background-color: #FF4B4B; color: white; border: none; cursor: pointer; width: 100%; }
  .row { display: flex; gap: 10px; margin-bottom: 10px; }
  .row > * { flex: 1; }
  .error { background: #3b1212; border-left: 5px solid #FF4B4B; padding: 10px; margin: 10px 0; }
  .notice { background: #12283b; border-left: 5px solid #4DA6FF; padding: 10px; margin: 10px 0; }
  .speaker-card { background-color: #262730; padding: 15px; border-radius: 10px; border-left: 5px solid #FF4B4B; margin-bottom: 10px; }
  .metric-card { background-color: #1E1E1E; padding: 15px; border-radius: 8px; text-align: center; border: 1px solid #333; flex: 1; }
  .metric-value { font-size: 1.5em; font-weight: bold; color: #4DA6FF; }
  .metric-label { font-size: 0.9em; color: #aaa; }
  .question-box { background-color: #1E1E1E; padding: 10px; border-radius: 5px; margin-bottom: 5px; border-left: 3px solid #4DA6FF; }
  .ratio-bar { display: flex; height: 28px; border-radius: 5px; overflow: hidden; margin: 8px 0; }
  .ratio-host { background: #FF4B4B; }
  .ratio-guest { background: #4DA6FF; }
  .result { background: #1E1E1E; padding: 15px; border-radius: 8px; white-space: pre-wrap; }
  img.thumb { max-width: 100%; border-radius: 8px; }
  a { color: #4DA6FF; font-weight: bold; text-decoration: none; }
  textarea { width: 100%; box-sizing: border-box; }
</style>
</head>
<body>
<h1>&#128250; Smart YouTube Summarizer</h1>

<form method="POST" action="/analyze">
  <div class="row">
    <input type="text" name="url" value="{{.URL}}" placeholder="https://www.youtube.com/watch?v=..." required>
  </div>
  <div class="row">
    <select name="mode">
      {{range .Modes}}<option value="{{.}}">{{.DisplayName}}</option>{{end}}
    </select>
    <select name="language">
      {{range .Languages}}<option value="{{.}}" {{if eq . $.DefaultLanguage}}selected{{end}}>{{.}}</option>{{end}}
    </select>
    <input type="password" name="api_key" placeholder="{{if .HasSharedKey}}API key (optional, shared key configured){{else}}API key (required){{end}}">
  </div>
  <div class="row"><button type="submit">Generate Analysis</button></div>
</form>

{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
{{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}

{{if .ThumbnailURL}}<img class="thumb" src="{{.ThumbnailURL}}" alt="thumbnail">{{end}}

{{with .Session.Result}}
  {{if .Podcast}}
    <h2>&#127908; Podcast Analysis <small>(model: {{.ModelUsed}})</small></h2>
    <div class="row">
      <div class="metric-card">
        <div class="metric-value">{{$.Session.Meta.FormatDuration}}</div>
        <div class="metric-label">Total Duration</div>
      </div>
      <div class="metric-card">
        <div class="metric-value">{{if $.Session.WordCount}}{{$.Session.WordCount}}{{else}}N/A (Audio Mode){{end}}</div>
        <div class="metric-label">Word Count</div>
      </div>
      <div class="metric-card">
        <div class="metric-value">{{$.Session.Meta.Title}}</div>
        <div class="metric-label">Video Title</div>
      </div>
    </div>

    <h3>&#128483; Talking Ratio</h3>
    <div class="ratio-bar">
      <div class="ratio-host" style="width: {{$.RatioHostWidth}}%"></div>
      <div class="ratio-guest" style="width: {{$.RatioGuestWidth}}%"></div>
    </div>
    <p>Host: {{.Podcast.HostPercentage}}% &middot; Guest: {{.Podcast.GuestPercentage}}%</p>

    <h3>&#128100; Guest Profile</h3>
    <div class="speaker-card">
      <h3>{{if .Podcast.GuestName}}{{.Podcast.GuestName}}{{else}}Unknown{{end}}</h3>
      <p>{{.Podcast.GuestBio}}</p>
    </div>

    <h3>&#10067; Key Questions</h3>
    {{range .Podcast.Questions}}<div class="question-box">&#128313; {{.}}</div>{{end}}

    {{if .Podcast.Controversies}}
    <h3>&#9888; Controversies</h3>
    {{range .Podcast.Controversies}}<div class="question-box">{{.}}</div>{{end}}
    {{end}}

    <h3>&#128221; Full Summary</h3>
    <div class="result">{{.Podcast.Summary}}</div>
  {{else}}
    <h2>&#128161; Analysis Result <small>(model: {{.ModelUsed}})</small></h2>
    <div class="result">{{renderText .Text}}</div>
  {{end}}
  <p><a href="/download">&#128229; Download Summary</a></p>
{{end}}

{{if .Session.Result}}
  <h3>&#128220; Transcript</h3>
  {{if .Session.TranscriptText}}
    <textarea rows="12" readonly>{{.Session.TranscriptText}}</textarea>
  {{else}}
    <div class="notice">Full text is unavailable in Audio Mode.</div>
    <form method="POST" action="/transcribe">
      <input type="password" name="api_key" placeholder="API key (optional)">
      <button type="submit">&#10024; Generate Transcript from Audio (~30s)</button>
    </form>
  {{end}}
{{end}}

</body>
</html>
`
