package platforms

import (
	"context"
	"strings"
)

// FeishuAdapter posts announcement cards to a Feishu bot webhook. The secret,
// when set, is forwarded as the custom-bot signature header.
type FeishuAdapter struct {
	client *HTTPClient
}

func NewFeishuAdapter(client *HTTPClient) *FeishuAdapter {
	return &FeishuAdapter{client: client}
}

func (a *FeishuAdapter) Name() string {
	return "feishu"
}

func (a *FeishuAdapter) Send(ctx context.Context, endpoint, secret string, msg Message) error {
	cardFields := make([]map[string]string, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		cardFields = append(cardFields, map[string]string{
			"tag":  "markdown",
			"text": "**" + f.Name + "**: " + f.Value,
		})
	}
	body := msg.Description
	if body == "" {
		body = msg.Content
	}
	payload := map[string]any{
		"msg_type": "interactive",
		"card": map[string]any{
			"header": map[string]any{
				"title": map[string]any{
					"tag":     "plain_text",
					"content": msg.Title,
				},
				"template": "blue",
			},
			"elements": append([]map[string]string{{
				"tag":  "markdown",
				"text": body,
			}}, cardFields...),
		},
	}
	headers := map[string]string{}
	if s := strings.TrimSpace(secret); s != "" {
		headers["X-Lark-Signature"] = s
	}
	return a.client.PostJSON(ctx, endpoint, headers, payload)
}
