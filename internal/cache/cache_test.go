// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newBackends(t *testing.T) map[string]Cacher {
	t.Helper()
	b, err := NewBadger(time.Minute)
	if err != nil {
		t.Fatalf("NewBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return map[string]Cacher{
		"memory": NewLRU(100, time.Minute),
		"badger": b,
	}
}

func TestCacher_GetSetDelete(t *testing.T) {
	for name, c := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok := c.Get("missing"); ok {
				t.Error("Get(missing) = true")
			}
			c.Set("rec:abc:5:Dark", []byte(`[{"rank":1}]`))
			got, ok := c.Get("rec:abc:5:Dark")
			if !ok || !bytes.Equal(got, []byte(`[{"rank":1}]`)) {
				t.Errorf("Get() = %q, %v", got, ok)
			}

			c.Delete("rec:abc:5:Dark")
			if _, ok := c.Get("rec:abc:5:Dark"); ok {
				t.Error("Get() after Delete = true")
			}

			st := c.GetStats()
			if st.Hits != 1 || st.Misses != 2 {
				t.Errorf("stats = %+v, want 1 hit 2 misses", st)
			}
		})
	}
}

func TestCacher_Clear(t *testing.T) {
	for name, c := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 10; i++ {
				c.Set(fmt.Sprintf("k%d", i), []byte("v"))
			}
			if got := c.GetStats().TotalKeys; got != 10 {
				t.Errorf("TotalKeys = %d, want 10", got)
			}
			c.Clear()
			if got := c.GetStats().TotalKeys; got != 0 {
				t.Errorf("TotalKeys after Clear = %d, want 0", got)
			}
			if _, ok := c.Get("k3"); ok {
				t.Error("entry survived Clear")
			}
		})
	}
}

func TestLRU_Expiry(t *testing.T) {
	c := NewLRU(10, time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("a", []byte("1"))
	c.SetWithTTL("b", []byte("2"), 2*time.Minute)

	now = now.Add(90 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("b should still be valid")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU(2, time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Get("a")
	c.Set("c", []byte("3"))

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should be present", k)
		}
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	c := NewLRU(2, time.Minute)
	c.Set("a", []byte("1"))
	c.Set("a", []byte("2"))
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if v, _ := c.Get("a"); string(v) != "2" {
		t.Errorf("Get(a) = %q, want 2", v)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU(50, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%80)
				c.Set(key, []byte(key))
				if v, ok := c.Get(key); ok && string(v) != key {
					t.Errorf("Get(%s) = %s", key, v)
				}
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}

func TestNewCacher(t *testing.T) {
	tests := []struct {
		backend Backend
		wantErr bool
	}{
		{"", false},
		{BackendMemory, false},
		{BackendBadger, false},
		{"redis", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			c, err := NewCacher(Config{Backend: tt.backend, TTL: time.Minute})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCacher() error = %v, wantErr %v", err, tt.wantErr)
			}
			if c != nil {
				_ = c.Close()
			}
		})
	}
}

func TestStatsHitRate(t *testing.T) {
	if got := (Stats{}).HitRate(); got != 0 {
		t.Errorf("HitRate() = %v, want 0", got)
	}
	if got := (Stats{Hits: 3, Misses: 1}).HitRate(); got != 75 {
		t.Errorf("HitRate() = %v, want 75", got)
	}
}
