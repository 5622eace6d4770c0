package notifications

import (
	"strings"
	"testing"
)

func TestWelcomeEmail(t *testing.T) {
	subject, body := WelcomeEmail("Asha")
	if subject == "" {
		t.Error("subject is empty")
	}
	if !strings.Contains(body, "Asha") {
		t.Errorf("body %q does not greet the new user by name", body)
	}
	if !strings.Contains(body, "roadmap") {
		t.Errorf("body %q does not point at the first roadmap", body)
	}
}
