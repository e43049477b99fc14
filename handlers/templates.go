package handlers

import "html/template"

// Minimal page shells. Layout and styling live with the front-end assets;
// these templates only carry the data the handlers produce.

var loginTmpl = template.Must(template.New("login").Parse(`<!doctype html>
<title>Sign in</title>
<h1>Plant Portal</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login-submit">
  <input name="username" placeholder="username" autofocus>
  <input name="password" type="password" placeholder="password">
  <button type="submit">Sign in</button>
</form>`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!doctype html>
<title>Dashboard</title>
<h1>Welcome, {{.FullName}}</h1>
{{range .Flash}}<p class="flash {{.Severity}}">{{.Text}}</p>{{end}}
<ul>
{{range .Sections}}  <li><a href="/section/{{.ID}}">{{.Name}}</a></li>
{{end}}</ul>
<p><a href="/activity">Activity</a> | <a href="/logOut">Sign out</a></p>`))

var sectionTmpl = template.Must(template.New("section").Parse(`<!doctype html>
<title>{{.Name}}</title>
<h1>{{.Name}}</h1>
{{range .Flash}}<p class="flash {{.Severity}}">{{.Text}}</p>{{end}}
<p><a href="/">Back to dashboard</a></p>`))

var staffFormTmpl = template.Must(template.New("staff").Parse(`<!doctype html>
<title>New staff account</title>
<h1>New staff account</h1>
{{range .Flash}}<p class="flash {{.Severity}}">{{.Text}}</p>{{end}}
<form method="post" action="/staff/create">
  <input type="hidden" name="csrf_token" value="{{.CSRFtoken}}">
  <input name="username" placeholder="username">
  <input name="full_name" placeholder="full name">
  <input name="email" placeholder="email">
  <input name="phone" placeholder="phone">
  <select name="role">
    <option value="section1_manager">Section 1 Manager</option>
    <option value="section2_manager">Section 2 Manager</option>
    <option value="section3_manager">Section 3 Manager</option>
    <option value="admin">Administrator</option>
  </select>
  <input name="password" type="password" placeholder="password">
  <input name="confirm-password" type="password" placeholder="confirm password">
  <button type="submit">Create</button>
</form>`))

var activityTmpl = template.Must(template.New("activity").Parse(`<!doctype html>
<title>Activity</title>
<h1>Recent activity</h1>
<table>
<tr><th>When</th><th>User</th><th>Action</th><th>Detail</th><th>IP</th></tr>
{{range .Entries}}<tr><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td><td>{{.Username}}</td><td>{{.Action}}</td><td>{{.Detail}}</td><td>{{.IPAddress}}</td></tr>
{{end}}</table>
<p><a href="/">Back to dashboard</a></p>`))
