package market

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// KeyRing is the ordered list of API keys tried for one provider.
type KeyRing struct {
	keys []string
}

// NewKeyRing keeps the first occurrence of every non-blank key, in order.
func NewKeyRing(keys ...string) *KeyRing {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return &KeyRing{keys: out}
}

// Len is the number of configured keys.
func (r *KeyRing) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// attempts lists the keys to try. With no keys configured a single keyless
// attempt is made.
func (r *KeyRing) attempts() []string {
	if r.Len() == 0 {
		return []string{""}
	}
	return r.keys
}

// ReadKeyFile reads one key per line, skipping blank lines. A missing file
// yields no keys and no error.
func ReadKeyFile(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open key file: %w", err)
	}
	defer f.Close()

	var keys []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			keys = append(keys, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return keys, nil
}

// LoadKeyRing combines keys from the environment with the ones in path;
// environment keys come first.
func LoadKeyRing(envKeys []string, path string) (*KeyRing, error) {
	fileKeys, err := ReadKeyFile(path)
	if err != nil {
		return nil, err
	}
	return NewKeyRing(append(append([]string{}, envKeys...), fileKeys...)...), nil
}
