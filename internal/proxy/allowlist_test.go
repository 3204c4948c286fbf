package proxy

import "testing"

func TestAllowList(t *testing.T) {
	tests := []struct {
		name  string
		hosts []string
		host  string
		want  bool
	}{
		{"EmptyListIsOpen", nil, "anything.test", true},
		{"BlankEntriesIgnored", []string{" ", ""}, "anything.test", true},
		{"ExactMatch", []string{"cdn.test"}, "cdn.test", true},
		{"ExactMatchCaseInsensitive", []string{"CDN.test"}, "cdn.TEST", true},
		{"ExactMiss", []string{"cdn.test"}, "evil.test", false},
		{"WildcardSubdomain", []string{"*.cdn.test"}, "eu.cdn.test", true},
		{"WildcardDeepSubdomain", []string{"*.cdn.test"}, "a.b.cdn.test", true},
		{"WildcardSkipsApex", []string{"*.cdn.test"}, "cdn.test", false},
		{"WildcardSuffixTrick", []string{"*.cdn.test"}, "evilcdn.test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newAllowList(tt.hosts).permits(tt.host); got != tt.want {
				t.Errorf("permits(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}
