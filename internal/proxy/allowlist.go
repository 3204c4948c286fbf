package proxy

import "strings"

// allowList matches target hosts. An empty list permits every host.
type allowList struct {
	exact     map[string]bool
	wildcards []string
}

func newAllowList(hosts []string) *allowList {
	a := &allowList{exact: make(map[string]bool)}
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case h == "":
		case strings.HasPrefix(h, "*."):
			a.wildcards = append(a.wildcards, h[1:])
		default:
			a.exact[h] = true
		}
	}
	return a
}

func (a *allowList) open() bool {
	return len(a.exact) == 0 && len(a.wildcards) == 0
}

func (a *allowList) permits(host string) bool {
	if a.open() {
		return true
	}
	host = strings.ToLower(host)
	if a.exact[host] {
		return true
	}
	for _, suffix := range a.wildcards {
		// "*.cdn.test" matches "a.cdn.test" but not "cdn.test".
		if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			return true
		}
	}
	return false
}
