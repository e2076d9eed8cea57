package sessionmanagement

import (
	"errors"
	"testing"
	"time"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
	"crop-asr-qa/backend/internal/coreengine/vendoradapters"
)

func startRunner(t *testing.T) *sessionengine.SessionRunner {
	t.Helper()
	items := []sessionengine.TestItem{
		{SerialNumber: 1, Code: "RICE001", Label: "Basmati Rice", Language: "en"},
		{SerialNumber: 2, Code: "WHEAT001", Label: "Wheat", Language: "en"},
	}
	runner, err := sessionengine.Start(items, "en", "Asha", "asha@example.com")
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	return runner
}

func TestRegistryAddGetRemove(t *testing.T) {
	reg := NewSessionRegistry()
	runner := startRunner(t)

	reg.add(runner, vendoradapters.ProviderMock)
	if reg.Count() != 1 {
		t.Fatalf("Count = %d, want 1", reg.Count())
	}

	ls, err := reg.get(runner.Session().ID)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if ls.provider != vendoradapters.ProviderMock {
		t.Errorf("provider = %q, want %q", ls.provider, vendoradapters.ProviderMock)
	}

	reg.remove(runner.Session().ID)
	if _, err := reg.get(runner.Session().ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("get after remove: err = %v, want ErrSessionNotFound", err)
	}
}

func TestRegistryGetUnknownSession(t *testing.T) {
	reg := NewSessionRegistry()
	if _, err := reg.get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestExpireIdle(t *testing.T) {
	reg := NewSessionRegistry()

	stale := startRunner(t)
	fresh := startRunner(t)
	reg.add(stale, vendoradapters.ProviderMock)
	reg.add(fresh, vendoradapters.ProviderMock)

	staleLS, _ := reg.get(stale.Session().ID)
	staleLS.lastActivity = time.Now().Add(-3 * time.Hour)

	removed := reg.ExpireIdle(2 * time.Hour)
	if removed != 1 {
		t.Fatalf("ExpireIdle removed %d sessions, want 1", removed)
	}
	if _, err := reg.get(stale.Session().ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("stale session still present after expiry")
	}
	if _, err := reg.get(fresh.Session().ID); err != nil {
		t.Errorf("fresh session was expired: %v", err)
	}
}
