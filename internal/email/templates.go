package email

import "fmt"

// BuildApplicationReceiptBody builds the HTML body for the applicant receipt
// email.
func BuildApplicationReceiptBody(name, vacancyTitle, applicationCode string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #1a1a2e; padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: #d4af37; margin: 0; font-size: 24px;">Happy Time</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">Dear %s,</p>
		<p>Thank you for applying for the <strong>%s</strong> position. We have received your application and will review it shortly.</p>

		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Your application code</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>

		<p>Use this code together with your email address to check the status of your application on our careers page.</p>

		<p style="color: #999; font-size: 12px; margin-top: 30px;">This is an automated message; please do not reply.</p>
	</div>
</body>
</html>`, name, vacancyTitle, applicationCode)
}

// BuildApplicationAlertBody builds the HTML body for the careers-inbox alert.
func BuildApplicationAlertBody(applicantName, applicantEmail, vacancyTitle, applicationCode string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2 style="margin-top: 0;">New job application</h2>
	<table style="border-collapse: collapse;">
		<tr><td style="padding: 4px 12px 4px 0; color: #666;">Position</td><td style="padding: 4px 0;"><strong>%s</strong></td></tr>
		<tr><td style="padding: 4px 12px 4px 0; color: #666;">Applicant</td><td style="padding: 4px 0;">%s</td></tr>
		<tr><td style="padding: 4px 12px 4px 0; color: #666;">Email</td><td style="padding: 4px 0;">%s</td></tr>
		<tr><td style="padding: 4px 12px 4px 0; color: #666;">Code</td><td style="padding: 4px 0; font-family: monospace;">%s</td></tr>
	</table>
	<p>Review it in the admin console.</p>
</body>
</html>`, vacancyTitle, applicantName, applicantEmail, applicationCode)
}

// BuildStatusUpdateBody builds the HTML body for an application status
// change notice.
func BuildStatusUpdateBody(name, applicationCode, status string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<p style="margin-top: 0;">Dear %s,</p>
	<p>The status of your application <strong style="font-family: monospace;">%s</strong> has changed to:</p>
	<p style="font-size: 18px; font-weight: bold; text-transform: capitalize;">%s</p>
	<p>You can verify this any time on our careers page using your application code and email address.</p>
	<p style="color: #999; font-size: 12px; margin-top: 30px;">This is an automated message; please do not reply.</p>
</body>
</html>`, name, applicationCode, status)
}
