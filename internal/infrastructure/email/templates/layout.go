// Package templates provides the HTML building blocks for transactional emails.
package templates

import "fmt"

// EmailLayoutProps configures the shared outer email frame.
type EmailLayoutProps struct {
	Content string
}

// GetEmailLayout wraps content in the shared branded frame.
func GetEmailLayout(props EmailLayoutProps) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;font-family:Georgia,serif;">
  <table role="presentation" width="100%%" cellpadding="0" cellspacing="0">
    <tr>
      <td align="center" style="padding:32px 16px;">
        <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
          <tr>
            <td style="background-color:#1c2b33;padding:24px 32px;">
              <span style="color:#ffffff;font-size:20px;letter-spacing:2px;">BARTLETT &amp; PARTNERS</span>
            </td>
          </tr>
          <tr>
            <td style="padding:32px;">
              %s
            </td>
          </tr>
          <tr>
            <td style="padding:24px 32px;border-top:1px solid #e4e4e7;color:#71717a;font-size:12px;">
              Bartlett &amp; Partners, Teddington, London
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, props.Content)
}
