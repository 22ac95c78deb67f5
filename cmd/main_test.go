package main

import "testing"

func TestHealthURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":5000", "http://127.0.0.1:5000/health"},
		{"0.0.0.0:8080", "http://127.0.0.1:8080/health"},
		{"[::]:8080", "http://[::1]:8080/health"},
		{"127.0.0.1:5000", "http://127.0.0.1:5000/health"},
		{"localhost:9000", "http://localhost:9000/health"},
		{"[::1]:5000", "http://[::1]:5000/health"},
	}

	for _, tt := range tests {
		got, err := healthURL(tt.addr)
		if err != nil {
			t.Fatalf("healthURL(%q): %v", tt.addr, err)
		}

		if got != tt.want {
			t.Fatalf("healthURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestHealthURLRejectsAddressWithoutPort(t *testing.T) {
	for _, addr := range []string{"5000", "localhost", ""} {
		if _, err := healthURL(addr); err == nil {
			t.Fatalf("healthURL(%q): expected error", addr)
		}
	}
}
