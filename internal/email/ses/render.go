package ses

import (
	"fmt"
	"html"
	"strings"

	"billbook/internal/port"
)

type message struct {
	Subject string
	Text    string
	HTML    string
}

func renderInvoiceNotice(n port.InvoiceNotice) message {
	amount := n.GrandTotal.StringFixed(2)
	due := "on receipt"
	if n.DueDate != nil {
		due = "by " + n.DueDate.Format("02 Jan 2006")
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n", n.ToName)
	fmt.Fprintf(&text, "%s has issued invoice %s for INR %s, payable %s.\n", n.BusinessName, n.InvoiceNumber, amount, due)
	if n.ViewURL != "" {
		fmt.Fprintf(&text, "\nView it here:\n%s\n", n.ViewURL)
	}
	fmt.Fprintf(&text, "\n%s\n", n.BusinessName)

	link := ""
	if n.ViewURL != "" {
		u := html.EscapeString(n.ViewURL)
		link = fmt.Sprintf(`
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Invoice</a>
  </p>`, u)
	}
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Hi %s,</p>
  <p>%s has issued invoice <strong>%s</strong> for <strong>INR %s</strong>, payable %s.</p>%s
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(n.InvoiceNumber),
		html.EscapeString(n.ToName),
		html.EscapeString(n.BusinessName),
		html.EscapeString(n.InvoiceNumber),
		amount, due, link,
		html.EscapeString(n.BusinessName))

	return message{
		Subject: fmt.Sprintf("Invoice %s from %s", n.InvoiceNumber, n.BusinessName),
		Text:    text.String(),
		HTML:    body,
	}
}
