// Package service implements the cryptographic pieces of the audit trail:
// canonical entry hashing, the installation signing keypair, detail
// sanitization, and chain verification.
package service

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	auditDomain "github.com/jdai-ca/atticus-privacy/internal/audit/domain"
)

// ComputeContentHash produces the deterministic digest over an entry,
// excluding ContentHash and Signature. The canonical byte form uses
// length-prefixed encoding for variable-length fields so no two distinct
// entries share an encoding.
func ComputeContentHash(entry *auditDomain.AuditEntry) (string, error) {
	canonical, err := canonicalizeEntry(entry)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalizeEntry converts an entry to its canonical byte representation.
// Field order is fixed; Details is serialized as JSON, which encodes map keys
// in sorted order and therefore deterministically.
func canonicalizeEntry(entry *auditDomain.AuditEntry) ([]byte, error) {
	buf := make([]byte, 0, 1024)

	buf = append(buf, entry.ID[:]...)

	timeBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(timeBytes, uint64(entry.Timestamp.UnixNano()))
	buf = append(buf, timeBytes...)

	buf = appendLengthPrefixed(buf, []byte(entry.EventType))
	buf = appendLengthPrefixed(buf, []byte(entry.Severity))
	buf = appendLengthPrefixed(buf, []byte(entry.ConversationID))
	buf = appendLengthPrefixed(buf, []byte(entry.MessageID))
	buf = appendLengthPrefixed(buf, []byte(entry.Actor))
	buf = appendLengthPrefixed(buf, []byte(entry.Action))

	if entry.Details != nil {
		detailBytes, err := canonicalDetails(entry.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal details: %w", err)
		}
		buf = appendLengthPrefixed(buf, detailBytes)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, uint64(entry.SequenceNumber))
	buf = append(buf, seqBytes...)

	buf = appendLengthPrefixed(buf, []byte(entry.PreviousEntryID))
	buf = appendLengthPrefixed(buf, []byte(entry.PreviousHash))

	tagCount := make([]byte, 4)
	binary.BigEndian.PutUint32(tagCount, uint32(len(entry.Tags)))
	buf = append(buf, tagCount...)
	for _, tag := range entry.Tags {
		buf = appendLengthPrefixed(buf, []byte(tag))
	}

	return buf, nil
}

// canonicalDetails serializes the details map through a JSON round trip so
// the digest is computed over the same value shapes the entry has after a
// load from storage. Without the round trip an int64 detail above 2^53 would
// hash differently before and after persistence (it reloads as float64) and
// report a false tamper positive.
func canonicalDetails(details map[string]any) ([]byte, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	var normalized map[string]any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
// Panics if data length exceeds uint32 max to prevent integer overflow.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	dataLen := len(data)
	if dataLen > 0xFFFFFFFF {
		panic("data length exceeds uint32 max")
	}
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(dataLen))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}
