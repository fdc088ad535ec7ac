package trace

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainRun separates run digests from any other hash of the same bytes.
const DomainRun = "ybtfc/run/v1"

// Version is the record format version stored with every run.
const Version = "1"

// hashWithDomain computes SHA256(domain || 0x00 || data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DigestLines hashes canonical record lines in order.
func DigestLines(lines [][]byte) string {
	var data []byte
	for _, l := range lines {
		data = append(data, l...)
		data = append(data, '\n')
	}
	return hashWithDomain(DomainRun, data)
}

// Digest is the content digest of records.
func Digest(records []Record) (string, error) {
	lines, err := MarshalLines(records)
	if err != nil {
		return "", err
	}
	return DigestLines(lines), nil
}
