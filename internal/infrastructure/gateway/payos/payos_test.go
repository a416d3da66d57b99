package payos

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

const testChecksumKey = "payos-checksum-key"

func signedBody(t *testing.T, data string) []byte {
	t.Helper()
	signature, err := signData(json.RawMessage(data), testChecksumKey)
	if err != nil {
		t.Fatalf("signing test data: %v", err)
	}
	return []byte(fmt.Sprintf(`{"code":"00","desc":"success","success":true,"data":%s,"signature":"%s"}`, data, signature))
}

func TestVerifyAndParseValidSignature(t *testing.T) {
	v := NewVerifier(testChecksumKey)
	body := signedBody(t, `{"orderCode":123456789012,"amount":750000,"description":"hoc phi","accountNumber":"9704229281","transactionDateTime":"2024-03-15 10:30:00"}`)

	payload, err := v.VerifyAndParse(body, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.OrderReference != "123456789012" {
		t.Errorf("order reference = %q, want 123456789012", payload.OrderReference)
	}
	if payload.TransferAmount != 750000 {
		t.Errorf("amount = %v, want 750000", payload.TransferAmount)
	}
	if payload.Provider != domain.ProviderPayOS {
		t.Errorf("provider = %q", payload.Provider)
	}
}

func TestVerifyAndParseTamperedData(t *testing.T) {
	v := NewVerifier(testChecksumKey)
	body := signedBody(t, `{"orderCode":123456789012,"amount":750000}`)

	// bump the amount without re-signing
	tampered := []byte(replaceOnce(string(body), "750000", "950000"))

	if _, err := v.VerifyAndParse(tampered, nil); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestVerifyAndParseWrongKey(t *testing.T) {
	v := NewVerifier("different-key")
	body := signedBody(t, `{"orderCode":123456789012,"amount":750000}`)

	if _, err := v.VerifyAndParse(body, nil); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestVerifyAndParseMissingSignature(t *testing.T) {
	v := NewVerifier(testChecksumKey)
	body := []byte(`{"code":"00","data":{"orderCode":1},"signature":""}`)

	if _, err := v.VerifyAndParse(body, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSignDataCanonicalOrder(t *testing.T) {
	// identical content, different key order, must produce the same signature
	a, err := signData(json.RawMessage(`{"b":"2","a":"1","c":3}`), testChecksumKey)
	if err != nil {
		t.Fatal(err)
	}
	b, err := signData(json.RawMessage(`{"c":3,"a":"1","b":"2"}`), testChecksumKey)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("signatures differ: %s vs %s", a, b)
	}
}

func TestSignDataNullAndBool(t *testing.T) {
	// null renders empty, bools render true/false, numbers keep their literal form
	a, err := signData(json.RawMessage(`{"x":null,"y":true,"z":10.50}`), testChecksumKey)
	if err != nil {
		t.Fatal(err)
	}
	b, err := signData(json.RawMessage(`{"x":null,"y":true,"z":10.5}`), testChecksumKey)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected distinct literal forms 10.50 and 10.5 to sign differently")
	}
}

func replaceOnce(s, old, new string) string {
	for i := 0; i+len(old) <= len(s); i++ {
		if s[i:i+len(old)] == old {
			return s[:i] + new + s[i+len(old):]
		}
	}
	return s
}
