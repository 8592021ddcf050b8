package api

import (
	"net/http"
	"testing"
)

func TestClientIPRemoteAddr(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.168.1.1:12345", "192.168.1.1"},
		{"[::1]:12345", "::1"},
		{"192.168.1.1", "192.168.1.1"},
	}
	for _, tt := range tests {
		r := &http.Request{RemoteAddr: tt.remoteAddr, Header: http.Header{}}
		r.Header.Set("X-Forwarded-For", "203.0.113.9")
		if got := clientIP(r, false); got != tt.want {
			t.Errorf("clientIP(%q, false) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}

func TestClientIPTrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"XFF single", "1.2.3.4", "", "10.0.0.1:1234", "1.2.3.4"},
		{"XFF chain takes first", " 1.2.3.4 , 5.6.7.8", "", "10.0.0.1:1234", "1.2.3.4"},
		{"X-Real-IP fallback", "", "9.9.9.9", "10.0.0.1:1234", "9.9.9.9"},
		{"empty XFF entry", ",5.6.7.8", "9.9.9.9", "10.0.0.1:1234", "9.9.9.9"},
		{"no headers", "", "", "10.0.0.1:1234", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &http.Request{RemoteAddr: tt.remoteAddr, Header: http.Header{}}
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(r, true); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
