package mail

import (
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"gopkg.in/mail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

type ReportService struct {
	config *Config
	sender func(messages ...*mail.Message) error
}

func NewReportService(config *Config) *ReportService {
	dialer := mail.NewDialer(
		config.Host,
		config.Port,
		config.Username,
		config.Password,
	)

	return &ReportService{config, dialer.DialAndSend}
}

func (rs *ReportService) SendReport(
	recipient string,
	report *dealing.TransactionReport,
) error {
	if err := rs.sender(rs.message(recipient, report)); err != nil {
		return fmt.Errorf("could not send email: [%v]", err)
	}

	return nil
}

func (rs *ReportService) message(
	recipient string,
	report *dealing.TransactionReport,
) *mail.Message {
	message := mail.NewMessage()
	message.SetHeader("From", rs.config.Username)
	message.SetHeader("To", recipient)
	message.SetHeader(
		"Subject",
		fmt.Sprintf(
			"Transactions report %v - %v",
			report.From.Format("2006-01-02"),
			report.To.Format("2006-01-02"),
		),
	)
	message.SetBody("text/plain", report.Text())

	return message
}
