package event

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Digest domains. The version suffix allows the algorithm to change later.
const (
	DomainEvent = "disintegrate/event/v1"
	DomainState = "disintegrate/state/v1"
)

// Digest computes SHA256(domain + 0x00 + data) as lowercase hex.
// The null separator prevents domain/data boundary ambiguity.
func Digest(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DigestOf computes the digest of v's canonical JSON.
func DigestOf(domain string, v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return Digest(domain, canonical), nil
}

// EnvelopeDigest content-addresses an envelope: its type and canonical payload.
func EnvelopeDigest(env Envelope) (string, error) {
	var payload any
	if len(env.Data) > 0 {
		payload = env.Data
	}
	return DigestOf(DomainEvent, map[string]any{
		"type": env.Type,
		"data": payload,
	})
}
