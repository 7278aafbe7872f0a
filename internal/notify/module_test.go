package notify

import (
	"testing"
	"time"

	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/backoffice/internal/config"
)

func TestNewHubUsesConfiguredOrigins(t *testing.T) {
	hub := newHub(hubParams{Config: &config.Config{CORSOrigins: []string{"https://a"}}, Logger: testLogger()})
	if len(hub.origins) != 1 || hub.origins[0] != "https://a" {
		t.Fatalf("unexpected origins: %v", hub.origins)
	}
}

func TestRegisterLifecycleRunsHub(t *testing.T) {
	hub := NewHub(testLogger())
	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, hub)

	lc.RequireStart()
	select {
	case <-hub.Done():
		t.Fatal("hub stopped before lifecycle stop")
	case <-time.After(20 * time.Millisecond):
	}

	lc.RequireStop()
	select {
	case <-hub.Done():
	default:
		t.Fatal("expected hub to be stopped")
	}
}
