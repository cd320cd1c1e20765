package emailsvc

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedfoundation/console/core"
	testutil "github.com/umeedfoundation/console/tests"
)

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	ResetSentMessages()
	conf := testutil.NewConfig()
	logger := testutil.NewLogger(t)
	core.ParseEmailTemplates(logger)

	svc := NewConsoleServiceMock(conf, logger)
	to := []mail.Address{{Name: "Team", Address: "team@localhost"}}
	svc.SendMessages(
		&core.EmailMessage{To: to, Subject: "plain", BodyStr: "hello"},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "dropped"},
		&core.EmailMessage{To: to, Subject: "missing template", TemplateName: "nope"},
		&core.EmailMessage{
			To:           to,
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
		},
	)

	sent := Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "hello", sent[0].TextContent)

	lead := sent[1]
	assert.True(t, strings.Contains(lead.TextContent, "Sara Khan"))
	assert.True(t, strings.Contains(lead.TextContent, "Bandra West"))
	assert.True(t, strings.Contains(lead.HTMLContent, "&lt;b&gt;hi&lt;/b&gt;"), "html is escaped")
}
