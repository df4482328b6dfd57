package controllers

import (
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type twilioNotifier struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioNotifier builds the SMS sender for booking confirmations.
func NewTwilioNotifier(accountSID, authToken, from string) Notifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &twilioNotifier{client: client, from: from}
}

func (n *twilioNotifier) SendSMS(to, message string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(message)

	_, err := n.client.Api.CreateMessage(params)
	return err
}
