package armata

import (
	"fmt"
	"net/http"
	"os"

	"github.com/titanous/json5"
)

// Cookie is an entry of a cookie export made with browser extensions like
// EditThisCookie, only the name and value are used.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LoadCookies reads a cookie export, a json list of objects with at least
// a "name" and a "value".
func LoadCookies(path string) ([]Cookie, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cookies []Cookie
	err = json5.Unmarshal(contents, &cookies)
	if err != nil {
		return nil, fmt.Errorf("parse cookies %s: %w", path, err)
	}
	for i, c := range cookies {
		if c.Name == "" {
			return nil, fmt.Errorf("parse cookies %s: cookie %d has no name", path, i)
		}
	}
	return cookies, nil
}

// CookieMap maps cookie names to values, later entries win.
func CookieMap(cookies []Cookie) map[string]string {
	out := make(map[string]string, len(cookies))
	for _, c := range cookies {
		out[c.Name] = c.Value
	}
	return out
}

func httpCookies(cookies []Cookie) []*http.Cookie {
	m := CookieMap(cookies)
	out := make([]*http.Cookie, 0, len(m))
	// keep the order of the export
	seen := map[string]bool{}
	for _, c := range cookies {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, &http.Cookie{Name: c.Name, Value: m[c.Name]})
	}
	return out
}
