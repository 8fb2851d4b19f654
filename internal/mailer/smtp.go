package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/odnowakanapowa/booking-api/internal/config"
)

// SMTPNotifier sends plain-text mail through a single SMTP account.
// Every booking mail goes to both the customer and the operator
// address.
type SMTPNotifier struct {
	addr     string
	host     string
	from     string
	sender   string
	operator string
	auth     smtp.Auth
}

func NewSMTPNotifier(cfg *config.Config) *SMTPNotifier {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &SMTPNotifier{
		addr:     cfg.SMTPAddr(),
		host:     cfg.SMTPHost,
		from:     cfg.SMTPUser,
		sender:   cfg.SenderName,
		operator: cfg.OperatorEmail,
		auth:     auth,
	}
}

func (n *SMTPNotifier) send(to []string, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", n.sender, n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	return smtp.SendMail(n.addr, n.auth, n.from, to, []byte(msg.String()))
}

func (n *SMTPNotifier) SendBookingPending(b BookingEmail) error {
	body := "Dzień dobry " + b.CustomerName + ",\n\n" +
		"Dziękujemy za rezerwację. Wizyta oczekuje na potwierdzenie.\n\n" +
		b.ItemizedBody() +
		"\nSkontaktujemy się przed wizytą, aby potwierdzić szczegóły.\n"

	subject := fmt.Sprintf("Nowa wizyta - %s %s", b.Date, b.Time)
	return n.send([]string{b.CustomerEmail, n.operator}, subject, body)
}

func (n *SMTPNotifier) SendBookingConfirmed(b BookingEmail) error {
	body := "Dzień dobry " + b.CustomerName + ",\n\n" +
		"Twoja wizyta została potwierdzona.\n\n" +
		b.ItemizedBody()

	subject := fmt.Sprintf("Potwierdzenie wizyty - %s %s", b.Date, b.Time)
	return n.send([]string{b.CustomerEmail, n.operator}, subject, body)
}

func (n *SMTPNotifier) SendContactMessage(m ContactEmail) error {
	body := fmt.Sprintf(
		"Imię i nazwisko: %s\nEmail: %s\nTelefon: %s\n\nWiadomość:\n%s\n",
		m.Name, m.Email, m.Phone, m.Message,
	)
	return n.send([]string{n.operator}, "Nowa wiadomość od "+m.Name, body)
}

func (n *SMTPNotifier) SendAccountConfirmation(m ConfirmEmail) error {
	body := "Dziękujemy za rejestrację. Potwierdź swój e-mail klikając:\n" + m.ConfirmURL + "\n"
	return n.send([]string{m.To}, "Potwierdź swój adres e-mail", body)
}

var _ Notifier = (*SMTPNotifier)(nil)
