package utils

import (
	"certhub/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Certhub <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// SendImportReport mails the operator a bulk-import summary. Disabled when
// REPORT_EMAIL is not configured.
func SendImportReport(batch string, imported int, errors []string) error {
	if config.AppConfig.ReportEmail == "" {
		return nil
	}

	body := fmt.Sprintf("<p>Batch <b>%s</b> finished.</p><p>Imported records: <b>%d</b></p>", batch, imported)
	if len(errors) > 0 {
		body += fmt.Sprintf("<p>Problems (%d):</p><ul>", len(errors))
		for _, e := range errors {
			body += "<li>" + e + "</li>"
		}
		body += "</ul>"
	} else {
		body += "<p>No problems reported.</p>"
	}

	subject := fmt.Sprintf("Certificate import report for batch %s", batch)
	return SendEmail([]string{config.AppConfig.ReportEmail}, subject, body)
}
