package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolyo/site/models"
)

func TestRenderContactEmail_Escapes(t *testing.T) {
	body, err := RenderContactEmail(models.MessageInput{
		SenderName:  "Ayşe <script>",
		SenderEmail: "ayse@example.com",
		Subject:     "Merhaba",
		Content:     "<b>iş teklifi</b>",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Merhaba")
	assert.Contains(t, body, "ayse@example.com")
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<b>")
	assert.Contains(t, body, "&lt;b&gt;iş teklifi&lt;/b&gt;")
}

func TestNopNotifier(t *testing.T) {
	assert.NoError(t, NewNopNotifier().NotifyContact(context.Background(), models.MessageInput{}))
}
