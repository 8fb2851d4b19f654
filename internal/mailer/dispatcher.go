package mailer

import "log"

type Kind int

const (
	KindBookingPending Kind = iota
	KindBookingConfirmed
	KindContact
	KindAccountConfirm
)

type Event struct {
	Kind    Kind
	Booking BookingEmail
	Contact ContactEmail
	Confirm ConfirmEmail
}

// Dispatcher decouples e-mail delivery from request handling: events
// are queued and sent by a background worker, and a full queue drops
// the event rather than ever blocking or failing the API call.
type Dispatcher struct {
	notifier Notifier
	queue    chan Event
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		var err error
		switch ev.Kind {
		case KindBookingPending:
			err = d.notifier.SendBookingPending(ev.Booking)
		case KindBookingConfirmed:
			err = d.notifier.SendBookingConfirmed(ev.Booking)
		case KindContact:
			err = d.notifier.SendContactMessage(ev.Contact)
		case KindAccountConfirm:
			err = d.notifier.SendAccountConfirmation(ev.Confirm)
		}
		if err != nil {
			log.Println("mail error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("mail queue full, dropping event")
	}
}
