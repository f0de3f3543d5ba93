package kvstore

import (
	"context"
	"testing"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestMemoryRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if err := s.Put(ctx, "k", []byte(`[1,2]`)); err != nil {
		t.Fatal(err)
	}
	raw, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(raw) != `[1,2]` {
		t.Fatalf("unexpected value %q", raw)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("key still present after delete")
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	if err := s.Put(ctx, "k", []byte("abc")); err != nil {
		t.Fatal(err)
	}
	raw, _, _ := s.Get(ctx, "k")
	raw[0] = 'x'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}

func TestLoadListMissingKeyIsEmpty(t *testing.T) {
	s := NewMemory()
	list, err := LoadList[record](context.Background(), s, KeyUsers)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d records", len(list))
	}
}

func TestSaveLoadList(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	in := []record{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}
	if err := SaveList(ctx, s, "recs", in); err != nil {
		t.Fatal(err)
	}
	out, err := LoadList[record](ctx, s, "recs")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %#v", out)
	}
}

func TestLoadListCorruptValue(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	if err := s.Put(ctx, "recs", []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadList[record](ctx, s, "recs"); err == nil {
		t.Fatal("expected decode error for corrupt value")
	}
}
