package redis

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
)

func TestKey(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	tests := []struct {
		prefix string
		want   string
	}{
		{"", DefaultPrefix + "alice"},
		{"app:", "app:alice"},
	}
	for _, tt := range tests {
		b := NewFromClient(client, tt.prefix)
		if got := b.Key("alice"); got != tt.want {
			t.Errorf("Key(alice) with prefix %q = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestNewRejectsEmptyAddr(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Error("New(empty addr) succeeded")
	}
}
