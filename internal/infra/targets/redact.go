package targets

import (
	"net/url"
	"strings"

	"github.com/mmrzaf/novagen/internal/domain"
)

const mask = "****"

var secretKeys = map[string]bool{"password": true, "pass": true, "pwd": true}

// RedactDSN masks credentials so a DSN can be logged. Plain file paths
// (sqlite targets) carry none and are returned unchanged.
func RedactDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return ""
	}

	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.Host != "" {
		return redactURL(u)
	}

	if !strings.Contains(dsn, "=") {
		return dsn
	}
	return redactKeywords(dsn)
}

func redactURL(u *url.URL) string {
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), mask)
		}
	}
	q := u.Query()
	for k := range q {
		if secretKeys[strings.ToLower(k)] {
			q.Set(k, mask)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// redactKeywords handles the libpq "key=value key=value" form.
func redactKeywords(dsn string) string {
	fields := strings.Fields(dsn)
	for i, f := range fields {
		key, _, found := strings.Cut(f, "=")
		if found && secretKeys[strings.ToLower(key)] {
			fields[i] = key + "=" + mask
		}
	}
	return strings.Join(fields, " ")
}

// RedactTarget returns a copy of t with its DSN redacted.
func RedactTarget(t *domain.TargetConfig) *domain.TargetConfig {
	if t == nil {
		return nil
	}
	cp := *t
	cp.DSN = RedactDSN(cp.DSN)
	return &cp
}
