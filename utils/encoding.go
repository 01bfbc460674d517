package utils

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64Payload decodes a base64 payload as delivered by browsers,
// stripping a data-URI prefix ("data:application/pdf;base64,....") when one
// is present.
func DecodeBase64Payload(data string) ([]byte, error) {
	if idx := strings.Index(data, ","); idx != -1 {
		data = data[idx+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(data))
}
