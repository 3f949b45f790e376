package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{10, 10},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tc := range cases {
		if got := NormalizeLimit(tc.in); got != tc.want {
			t.Errorf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeOffset(t *testing.T) {
	if got := NormalizeOffset(-1); got != 0 {
		t.Errorf("NormalizeOffset(-1) = %d, want 0", got)
	}
	if got := NormalizeOffset(7); got != 7 {
		t.Errorf("NormalizeOffset(7) = %d, want 7", got)
	}
}

func TestPage(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}

	if got := Page(rows, Params{Limit: 2, Offset: 1}); len(got) != 2 || got[0] != 2 {
		t.Fatalf("unexpected page %v", got)
	}
	if got := Page(rows, Params{Limit: 10, Offset: 4}); len(got) != 1 || got[0] != 5 {
		t.Fatalf("unexpected tail page %v", got)
	}
	if got := Page(rows, Params{Limit: 2, Offset: 99}); len(got) != 0 {
		t.Fatalf("offset past the end must yield an empty page, got %v", got)
	}
	if got := Page(rows, Params{}); len(got) != 5 {
		t.Fatalf("zero limit must not cap the set, got %v", got)
	}

	long := make([]int, DefaultLimit+10)
	if got := Page(long, Params{}); len(got) != len(long) {
		t.Fatalf("zero limit must return the whole set, got %d of %d", len(got), len(long))
	}
	if got := Page(long, Params{Offset: 5}); len(got) != len(long)-5 {
		t.Fatalf("offset without limit must return the tail, got %d", len(got))
	}
}
