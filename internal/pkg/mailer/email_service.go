// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSummaryReport(toEmail, sessionID, description string, rows []ReportRow, analytics map[string]interface{}) error
}

// ReportRow is one question/answer pair rendered in the summary email.
type ReportRow struct {
	Question string
	Answer   string
	Skipped  bool
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendSummaryReport(toEmail, sessionID, description string, rows []ReportRow, analytics map[string]interface{}) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Project Intake Summary: %s", sessionID))

	var sb strings.Builder
	sb.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`)
	sb.WriteString(`<h2>Project Intake Summary</h2>`)
	sb.WriteString(fmt.Sprintf(`<p><b>Session:</b> %s</p>`, html.EscapeString(sessionID)))
	sb.WriteString(fmt.Sprintf(`<p><b>Description:</b> %s</p>`, html.EscapeString(description)))

	sb.WriteString(`<table border="1" cellpadding="8" cellspacing="0" style="border-collapse: collapse; width: 100%;">`)
	sb.WriteString(`<tr style="background-color: #f2f2f2;"><th>#</th><th>Question</th><th>Answer</th></tr>`)
	for i, row := range rows {
		answer := html.EscapeString(row.Answer)
		if row.Skipped {
			answer = `<i style="color: #999;">skipped</i>`
		}
		sb.WriteString(fmt.Sprintf(`<tr><td>%d</td><td>%s</td><td>%s</td></tr>`,
			i+1, html.EscapeString(row.Question), answer))
	}
	sb.WriteString(`</table>`)

	if len(analytics) > 0 {
		sb.WriteString(`<h3>Analytics</h3><ul>`)
		for k, v := range analytics {
			sb.WriteString(fmt.Sprintf(`<li><b>%s:</b> %v</li>`, html.EscapeString(k), v))
		}
		sb.WriteString(`</ul>`)
	}
	sb.WriteString(`</div>`)

	m.SetBody("text/html", sb.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send summary report to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Summary report sent to %s\n", toEmail)
	return nil
}
