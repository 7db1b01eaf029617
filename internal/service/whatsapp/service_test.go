package whatsapp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herd/internal/config"
	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/service/commands"
	client "github.com/mamadbah2/herd/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

type fakeDispatcher struct {
	calls []models.Command
	reply string
	err   error
}

func (f *fakeDispatcher) HandleCommand(_ context.Context, cmd models.Command, _ string) (string, error) {
	f.calls = append(f.calls, cmd)
	return f.reply, f.err
}

func (f *fakeDispatcher) Help() string { return "help text" }

func textPayload(id, from, body string) models.WebhookPayload {
	return models.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []models.WebhookEntry{{
			Changes: []models.WebhookChange{{
				Field: "messages",
				Value: models.WebhookValue{
					Messages: []models.InboundMessage{{
						ID:   id,
						From: from,
						Type: "text",
						Text: &models.TextContent{Body: body},
					}},
				},
			}},
		}},
	}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{VerifyToken: "secret"}, &fakeClient{}, &fakeDispatcher{}, nil)

	challenge, err := svc.VerifyWebhookToken("subscribe", "secret", "42")
	require.NoError(t, err)
	assert.Equal(t, "42", challenge)

	_, err = svc.VerifyWebhookToken("subscribe", "wrong", "42")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("unsubscribe", "secret", "42")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("", "", "")
	assert.Error(t, err)
}

func TestHandleWebhookRepliesWithCommandOutput(t *testing.T) {
	api := &fakeClient{}
	dispatcher := &fakeDispatcher{reply: "Herd: 3 total"}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, api, dispatcher, nil)

	require.NoError(t, svc.HandleWebhook(context.Background(), textPayload("wamid.1", "66800000000", "/summary")))

	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, models.CommandSummary, dispatcher.calls[0].Type)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "66800000000", api.sent[0].To)
	assert.Equal(t, "Herd: 3 total", api.sent[0].Body)
}

func TestHandleWebhookSkipsRedelivery(t *testing.T) {
	api := &fakeClient{}
	dispatcher := &fakeDispatcher{reply: "ok"}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, api, dispatcher, nil)

	payload := textPayload("wamid.dup", "668", "/sick")
	require.NoError(t, svc.HandleWebhook(context.Background(), payload))
	require.NoError(t, svc.HandleWebhook(context.Background(), payload))

	assert.Len(t, dispatcher.calls, 1)
	assert.Len(t, api.sent, 1)
}

func TestHandleWebhookFallsBackToHelp(t *testing.T) {
	for _, err := range []error{commands.ErrUnsupportedCommand, commands.ErrInvalidArguments} {
		api := &fakeClient{}
		svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, api, &fakeDispatcher{err: err}, nil)

		require.NoError(t, svc.HandleWebhook(context.Background(), textPayload("", "668", "/milk")))
		require.Len(t, api.sent, 1)
		assert.Equal(t, "help text", api.sent[0].Body)
	}
}

func TestHandleWebhookRetriesAfterFailure(t *testing.T) {
	api := &fakeClient{err: errors.New("boom")}
	dispatcher := &fakeDispatcher{reply: "ok"}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, api, dispatcher, nil)

	payload := textPayload("wamid.retry", "668", "/summary")
	assert.Error(t, svc.HandleWebhook(context.Background(), payload))

	api.err = nil
	require.NoError(t, svc.HandleWebhook(context.Background(), payload))
	assert.Len(t, api.sent, 1)
	assert.Len(t, dispatcher.calls, 2)
}

func TestHandleWebhookNonTextGetsHelp(t *testing.T) {
	api := &fakeClient{}
	dispatcher := &fakeDispatcher{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, api, dispatcher, nil)

	payload := textPayload("wamid.img", "668", "")
	payload.Entry[0].Changes[0].Value.Messages[0].Type = "image"
	payload.Entry[0].Changes[0].Value.Messages[0].Text = nil

	require.NoError(t, svc.HandleWebhook(context.Background(), payload))
	assert.Empty(t, dispatcher.calls)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "help text", api.sent[0].Body)
}

func TestHandleWebhookDispatcherFailure(t *testing.T) {
	api := &fakeClient{}
	dispatcher := &fakeDispatcher{err: errors.New("database is locked")}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, api, dispatcher, nil)

	payload := textPayload("wamid.db", "668", "/summary")
	assert.Error(t, svc.HandleWebhook(context.Background(), payload))
	assert.Empty(t, api.sent)

	dispatcher.err, dispatcher.reply = nil, "ok"
	require.NoError(t, svc.HandleWebhook(context.Background(), payload))
	assert.Len(t, api.sent, 1)
}

func TestSendOutbound(t *testing.T) {
	api := &fakeClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, api, &fakeDispatcher{}, nil)

	require.NoError(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "668", Message: "hi", PreviewURL: true}))
	assert.Equal(t, []client.SendTextMessageRequest{{To: "668", Body: "hi", PreviewURL: true}}, api.sent)
}
