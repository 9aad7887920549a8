package utils

import "fmt"

// DecisionMailBody renders the HTML body for a review decision notice.
func DecisionMailBody(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>%s</h2>
    <p>%s</p>
    <p style="color: #888; font-size: 12px;">
      This is an automated message from the article submission portal. Please do not reply.
    </p>
  </body>
</html>`, title, content)
}
