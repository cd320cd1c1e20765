package core_test

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedfoundation/console/core"
	testutil "github.com/umeedfoundation/console/tests"
)

func TestParseEmailTemplates(t *testing.T) {
	conf := testutil.NewConfig()
	core.ParseEmailTemplates(testutil.NewLogger(t))

	msg := &core.EmailMessage{
		To:           []mail.Address{conf.LeadsNotifyEmail},
		Subject:      "lead",
		TemplateName: "lead_received",
		TemplateData: map[string]string{
			"FullName":          "Sara Khan",
			"Email":             "sara@example.com",
			"Phone":             "+91 9000000000",
			"Profession":        "Teacher",
			"PreferredLocation": "Bandra West",
			"Message":           "<b>hi</b>",
		},
	}
	require.NoError(t, msg.Render(conf), "lead_received is parsed with its layout")

	// content and layout are both rendered
	assert.Contains(t, msg.TextContent, "Name: Sara Khan")
	assert.Contains(t, msg.TextContent, "--\nUmeed\nhttp://localhost:5173")
	assert.Contains(t, msg.HTMLContent, "Bandra West")
	assert.Contains(t, msg.HTMLContent, `<a href="http://localhost:5173">Umeed</a>`)
	assert.Contains(t, msg.HTMLContent, "&lt;b&gt;hi&lt;/b&gt;")

	layout := &core.EmailMessage{TemplateName: "_base"}
	assert.EqualError(t, layout.Render(conf), `email template "_base" not found`, "layouts are not templates")

	missing := &core.EmailMessage{TemplateName: "nope"}
	assert.EqualError(t, missing.Render(conf), `email template "nope" not found`)
}
