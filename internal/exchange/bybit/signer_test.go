package bybit

import "testing"

func TestSigner_SignDeterministic(t *testing.T) {
	s := NewSigner("key", "secret")

	payload := `{"category":"linear","symbol":"BTCUSDT"}`
	sig1 := s.Sign(1700000000000, payload)
	sig2 := s.Sign(1700000000000, payload)

	if sig1 != sig2 {
		t.Errorf("same inputs should produce same signature: %s != %s", sig1, sig2)
	}
	// hex编码的sha256应为64字符
	if len(sig1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(sig1))
	}
}

func TestSigner_SignChangesWithInput(t *testing.T) {
	s := NewSigner("key", "secret")
	payload := `{"category":"linear"}`
	base := s.Sign(1700000000000, payload)

	if got := s.Sign(1700000000001, payload); got == base {
		t.Error("changing timestamp should change signature")
	}
	if got := s.Sign(1700000000000, payload+" "); got == base {
		t.Error("changing payload should change signature")
	}
	if got := NewSigner("key2", "secret").Sign(1700000000000, payload); got == base {
		t.Error("changing api key should change signature")
	}
	if got := NewSigner("key", "secret2").Sign(1700000000000, payload); got == base {
		t.Error("changing secret should change signature")
	}
}

func TestSigner_Headers(t *testing.T) {
	s := NewSigner("test-key", "test-secret")
	headers := s.Headers(1700000000000, "")

	if headers["X-BAPI-API-KEY"] != "test-key" {
		t.Errorf("unexpected api key header: %s", headers["X-BAPI-API-KEY"])
	}
	if headers["X-BAPI-TIMESTAMP"] != "1700000000000" {
		t.Errorf("unexpected timestamp header: %s", headers["X-BAPI-TIMESTAMP"])
	}
	if headers["X-BAPI-RECV-WINDOW"] != "5000" {
		t.Errorf("unexpected recv window: %s", headers["X-BAPI-RECV-WINDOW"])
	}
	if headers["X-BAPI-SIGN"] == "" {
		t.Error("signature should not be empty")
	}
}
