package services

import (
	"context"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Sender delivers a text message and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, channel, to, body string) (string, error)
}

type TwilioSender struct {
	client       *twilio.RestClient
	smsFrom      string
	whatsAppFrom string
}

func NewTwilioSender(accountSID, authToken, smsFrom, whatsAppFrom string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		smsFrom:      smsFrom,
		whatsAppFrom: whatsAppFrom,
	}
}

func (t *TwilioSender) Send(_ context.Context, channel, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if channel == ChannelWhatsApp {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + t.whatsAppFrom)
	} else {
		params.SetTo(to)
		params.SetFrom(t.smsFrom)
	}

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
