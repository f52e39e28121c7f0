package services

import (
	"testing"
	"time"

	"salonhub-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestChannel(t *testing.T) {
	t.Parallel()

	both := models.NewSalon("Studio", "studio")
	both.WhatsAppNotifications = true

	smsOnly := models.NewSalon("Studio", "studio")

	none := models.NewSalon("Studio", "studio")
	none.SMSNotifications = false

	tests := []struct {
		name  string
		salon models.Salon
		phone string
		want  string
	}{
		{"whatsapp for e164", both, "+5511999990000", ChannelWhatsApp},
		{"sms for local number", both, "11 99999-0000", ChannelSMS},
		{"sms when whatsapp disabled", smsOnly, "+5511999990000", ChannelSMS},
		{"no phone", both, "", ""},
		{"notifications off", none, "+5511999990000", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Channel(tt.salon, tt.phone))
		})
	}
}

func TestReminderMessage(t *testing.T) {
	t.Parallel()

	salon := models.NewSalon("Studio Ana", "studio-ana")
	appt := models.Appointment{
		Client:       models.User{FirstName: "Bia"},
		Service:      models.Service{Name: "Manicure"},
		Professional: models.Professional{User: models.User{FirstName: "Carla", LastName: "Souza"}},
		Date:         time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC),
		Time:         models.NewClock(14, 30),
	}

	assert.Equal(t,
		"Hi Bia, this is a reminder of your Manicure appointment at Studio Ana on 2024-06-04 at 14:30 with Carla Souza.",
		ReminderMessage(salon, appt))
}
