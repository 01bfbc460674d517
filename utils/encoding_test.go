package utils

import (
	"encoding/base64"
	"testing"
)

func TestDecodeBase64Payload(t *testing.T) {
	raw := []byte("hello document bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name  string
		input string
	}{
		{"bare base64", encoded},
		{"data uri", "data:application/pdf;base64," + encoded},
		{"jpeg data uri", "data:image/jpeg;base64," + encoded},
		{"trailing whitespace", encoded + "\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeBase64Payload(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != string(raw) {
				t.Fatalf("got %q, want %q", got, raw)
			}
		})
	}
}

func TestDecodeBase64PayloadInvalid(t *testing.T) {
	if _, err := DecodeBase64Payload("!!not-base64!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}
