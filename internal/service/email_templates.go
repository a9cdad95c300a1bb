package service

import "fmt"

func welcomeEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Start by creating your first objective and check in every day to keep your streak.

Every day you leave unmarked is recorded as not done the next morning, so a quick check-in goes a long way.

Best,
The %s Team`, name, appName)

	return subject, body
}
