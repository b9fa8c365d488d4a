package notify

import "testing"

func TestBestRouteMessage(t *testing.T) {
	msg := BestRouteMessage("WALK & TRANSIT")

	if msg.Subject != "Update on today's route" {
		t.Errorf("unexpected subject: %s", msg.Subject)
	}
	if msg.Body != "The best way to go today is WALK & TRANSIT" {
		t.Errorf("unexpected body: %s", msg.Body)
	}
}
