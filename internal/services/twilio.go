package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/syaoranea/FlowChat/internal/config"
)

// TwilioService sends WhatsApp messages via the Twilio API.
type TwilioService struct {
	client *twilio.RestClient
	from   string // "whatsapp:+14155238886"
}

// NewTwilioService creates a Twilio service from settings.
func NewTwilioService(settings *config.Settings) (*TwilioService, error) {
	if settings.TwilioAccountSID == "" || settings.TwilioAuthToken == "" || settings.TwilioWhatsAppFrom == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: settings.TwilioAccountSID,
		Password: settings.TwilioAuthToken,
	})

	return &TwilioService{
		client: client,
		from:   settings.TwilioWhatsAppFrom,
	}, nil
}

// SendWhatsAppMessage sends a WhatsApp text message to a phone number
// (bare digits, no "whatsapp:" prefix).
func (t *TwilioService) SendWhatsAppMessage(to, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	if !strings.HasPrefix(to, "whatsapp:") {
		to = fmt.Sprintf("whatsapp:+%s", strings.TrimPrefix(to, "+"))
	}
	params.SetTo(to)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send WhatsApp message: %v", err)
		return err
	}

	log.Printf("✅ WhatsApp message sent! SID: %s", *resp.Sid)
	return nil
}
