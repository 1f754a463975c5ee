package mailer

import (
	"fmt"
	"html/template"
)

const (
	virtualInstructions = `For this virtual interview:
- Please join the Zoom meeting using the link below
- Join 5 minutes before the scheduled time
- Ensure you have a stable internet connection
- Test your camera and microphone beforehand
- Find a quiet place for the interview`

	inPersonInstructions = `For this in-person interview:
- Please arrive 10 minutes before the scheduled time
- Bring a copy of your resume
- Please report to the reception upon arrival
- Dress code: Business professional`

	phoneInstructions = `For this phone interview:
- We will call you at the provided number
- Please ensure you are in an area with good network coverage
- Keep your phone charged and readily available
- Have a pen and paper ready for notes`
)

func textBody(p *Preview, instructions string) string {
	return fmt.Sprintf(`%s

Dear %s,

We are pleased to invite you for an interview for the %s position.

Interview Details:
- Date: %s
- Time: %s
- Mode: %s
- Location: %s

Important Instructions:
%s

Please confirm your attendance by replying to this email.

Best regards,
Hiring Team`, p.Subject, p.Name, p.Position, p.Date, p.Time, p.Mode, p.Location, instructions)
}

type htmlData struct {
	*Preview
	Instructions string
}

var htmlTemplate = template.Must(template.New("invitation").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background-color: #2c3e50; color: white; padding: 20px;">
    <h2 style="margin: 0;">Interview Invitation</h2>
  </div>
  <div style="padding: 20px;">
    <p>Dear {{.Name}},</p>
    <p>We are pleased to invite you for an interview for the <strong>{{.Position}}</strong> position.</p>
    <div style="background-color: #f8f9fa; border-left: 4px solid #28a745; padding: 15px; margin: 20px 0;">
      <h3 style="margin-top: 0; color: #28a745;">Interview Details</h3>
      <p><strong>Date:</strong> {{.Date}}</p>
      <p><strong>Time:</strong> {{.Time}}</p>
      <p><strong>Mode:</strong> {{.Mode}}</p>
      <p><strong>Location:</strong> {{.Location}}</p>
    </div>
    <div style="background-color: #f8f9fa; padding: 15px; margin: 20px 0;">
      <h3 style="margin-top: 0; color: #2c3e50;">Important Instructions</h3>
      <div style="white-space: pre-line;">{{.Instructions}}</div>
    </div>
    <p>Please confirm your attendance by replying to this email.</p>
    <p>Best regards,<br>Hiring Team</p>
  </div>
</body>
</html>
`))
