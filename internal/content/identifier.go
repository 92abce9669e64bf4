package content

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"strings"
	"time"
)

const (
	hashLength = 8
	maxTagLen  = 10
)

// BuildID derives the artifact identifier {tag}_{hash8}_{YYYYMMDD}.
// The date component is intentional: a reference processed on a new day gets
// a fresh cache entry.
func BuildID(ref Reference, kind Kind, now time.Time) string {
	sum := md5.Sum([]byte(Canonical(ref)))
	hash := hex.EncodeToString(sum[:])[:hashLength]

	return platformTag(ref, kind) + "_" + hash + "_" + now.Local().Format("20060102")
}

// Canonical normalises a reference before hashing. URLs lose utm_* tracking
// parameters, fragments, and trailing slashes; paths become absolute.
func Canonical(ref Reference) string {
	if ref.IsLocal() {
		abs, err := filepath.Abs(ref.Path)
		if err != nil {
			return filepath.Clean(ref.Path)
		}
		return abs
	}

	u := *ref.URL
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	if u.RawQuery != "" {
		// Encode sorts keys, so parameter order never changes the hash
		query := u.Query()
		for key := range query {
			if strings.HasPrefix(strings.ToLower(key), "utm_") {
				query.Del(key)
			}
		}
		u.RawQuery = query.Encode()
	}

	return strings.TrimRight(u.String(), "/")
}

func platformTag(ref Reference, kind Kind) string {
	if ref.IsLocal() {
		return kind.Tag()
	}

	host := ref.Host()
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	label, _, _ := strings.Cut(host, ".")

	var b strings.Builder
	for _, r := range label {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == maxTagLen {
			break
		}
	}
	if b.Len() == 0 {
		return kind.Tag()
	}
	return b.String()
}

// ParseID splits an identifier into its tag, hash, and date parts
func ParseID(id string) (tag, hash string, date time.Time, ok bool) {
	parts := strings.Split(id, "_")
	if len(parts) != 3 || len(parts[1]) != hashLength {
		return "", "", time.Time{}, false
	}
	date, err := time.ParseInLocation("20060102", parts[2], time.Local)
	if err != nil {
		return "", "", time.Time{}, false
	}
	return parts[0], parts[1], date, true
}
