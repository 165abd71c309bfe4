package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/gotslint/pkg/lint"
)

type ruleFingerprint struct {
	Name     string
	Severity string
	Options  map[string]any
}

// Fingerprint hashes everything besides the file that influences lint
// results: the tool version and each active rule with its severity and
// options. Map keys are sorted so equal rule sets hash equally.
func Fingerprint(version string, rules []lint.ActiveRule) (string, error) {
	records := make([]ruleFingerprint, len(rules))
	for i, ar := range rules {
		records[i] = ruleFingerprint{
			Name:     ar.Rule.Name(),
			Severity: string(ar.Severity),
			Options:  ar.Options,
		}
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(version); err != nil {
		return "", fmt.Errorf("encode version: %w", err)
	}
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encode rules: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
