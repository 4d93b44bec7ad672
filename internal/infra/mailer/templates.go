package mailer

import "html/template"

var layout = `<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#222">
{{template "content" .}}
<p style="color:#888;font-size:12px">This message was sent automatically, please do not reply.</p>
</body></html>`

var contents = map[string]string{
	"welcome": `{{define "content"}}
<h2>Welcome, {{.FirstName}}</h2>
<p>Your account has been created with the address {{.Email}}.</p>
<p>You can sign in at <a href="{{.BaseURL}}/login">{{.BaseURL}}/login</a>.</p>
{{end}}`,

	"purchase": `{{define "content"}}
<h2>Thank you for your purchase, {{.FirstName}}</h2>
<p>Order number: <strong>{{.OrderNumber}}</strong></p>
<table cellpadding="4">
{{range .Items}}<tr><td>{{.Name}}</td><td align="right">{{.Gross}} {{$.Currency}}</td></tr>
{{end}}<tr><td><strong>Total</strong></td><td align="right"><strong>{{.Total}} {{.Currency}}</strong></td></tr>
</table>
{{if .AccessUntil}}<p>Your access is valid until {{.AccessUntil}}.</p>{{end}}
<p><a href="{{.BaseURL}}/courses">Start learning</a></p>
{{end}}`,

	"booking": `{{define "content"}}
<h2>Your seat is booked, {{.FirstName}}</h2>
<p>Order number: <strong>{{.OrderNumber}}</strong></p>
<p>{{.LocationName}}<br>{{.Street}}<br>{{.City}}</p>
<p>Date: {{.StartsAt}}</p>
{{if .WithPlasticCard}}<p>Your plastic certificate card will be handed out on site.</p>{{end}}
<p>Total paid: {{.Total}} {{.Currency}}</p>
{{end}}`,

	"expiry": `{{define "content"}}
<h2>Your access is about to expire</h2>
<p>Hello {{.FirstName}}, your access to <strong>{{.CourseTitle}}</strong> ends on {{.ExpiresAt}}.</p>
<p><a href="{{.BaseURL}}/courses">Renew your access</a></p>
{{end}}`,

	"practical": `{{define "content"}}
<h2>See you tomorrow, {{.FirstName}}</h2>
<p>{{.OfferingTitle}} starts {{.StartsAt}}.</p>
<p>{{.LocationName}}<br>{{.Street}}<br>{{.City}}</p>
<p>Order number: {{.OrderNumber}}</p>
{{end}}`,
}

func parseTemplates() map[string]*template.Template {
	out := make(map[string]*template.Template, len(contents))
	for name, body := range contents {
		t := template.Must(template.New("layout").Parse(layout))
		out[name] = template.Must(t.Parse(body))
	}
	return out
}
