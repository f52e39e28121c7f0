package metrics

import (
	"salonhub-backend/scheduling"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking holds the Prometheus metrics for the appointment lifecycle and
// reminders.
type Booking struct {
	BookingsTotal  *prometheus.CounterVec
	CancelledTotal prometheus.Counter
	RemindersTotal *prometheus.CounterVec
}

var _ scheduling.Recorder = (*Booking)(nil)

// NewBooking registers the metrics on reg.
func NewBooking(reg prometheus.Registerer) *Booking {
	factory := promauto.With(reg)
	return &Booking{
		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salonhub",
			Subsystem: "booking",
			Name:      "attempts_total",
			Help:      "Booking attempts by outcome.",
		}, []string{"outcome"}), // outcome: accepted or the rule that rejected it
		CancelledTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "salonhub",
			Subsystem: "booking",
			Name:      "cancelled_total",
			Help:      "Total number of cancelled appointments.",
		}),
		RemindersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salonhub",
			Subsystem: "reminders",
			Name:      "sent_total",
			Help:      "Appointment reminders by channel and status.",
		}, []string{"channel", "status"}),
	}
}

func (b *Booking) BookingAccepted() {
	b.BookingsTotal.WithLabelValues("accepted").Inc()
}

func (b *Booking) BookingRejected(rule scheduling.Rule) {
	b.BookingsTotal.WithLabelValues(string(rule)).Inc()
}

func (b *Booking) AppointmentCancelled() {
	b.CancelledTotal.Inc()
}

func (b *Booking) ReminderSent(channel, status string) {
	b.RemindersTotal.WithLabelValues(channel, status).Inc()
}
