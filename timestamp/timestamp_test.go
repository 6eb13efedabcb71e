package timestamp

import "testing"

func TestNewNormalizes(t *testing.T) {
	cases := []struct {
		name           string
		seconds, nanos int64
		wantSec        int64
		wantNanos      int64
	}{
		{"already normal", 1, 500, 1, 500},
		{"overflow carries", 0, 1_500_000_000, 1, 500_000_000},
		{"negative nanos borrows", 2, -1, 1, 999_999_999},
		{"large negative nanos", 0, -2_000_000_001, -3, 999_999_999},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := New(tc.seconds, tc.nanos)
			if got.Seconds != tc.wantSec || got.Nanoseconds != tc.wantNanos {
				t.Fatalf("New(%d, %d) = %+v, want {%d %d}", tc.seconds, tc.nanos, got, tc.wantSec, tc.wantNanos)
			}
			if got.Nanoseconds < 0 || got.Nanoseconds >= nanosPerSecond {
				t.Fatalf("nanoseconds %d not normalized into [0, 1e9)", got.Nanoseconds)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	a := New(1, 900_000_000)
	b := New(0, 200_000_000)
	got := a.Add(b)
	want := New(2, 100_000_000)
	if got != want {
		t.Fatalf("Add = %+v, want %+v", got, want)
	}
}

func TestSubBorrowsIntoNegativeSeconds(t *testing.T) {
	a := New(0, 0)
	b := New(0, 50)
	got := a.Sub(b)
	if got.Seconds != -1 || got.Nanoseconds != 999_999_950 {
		t.Fatalf("Sub = %+v, want {-1 999999950}", got)
	}
	if got.Nanoseconds < 0 || got.Nanoseconds >= nanosPerSecond {
		t.Fatalf("nanoseconds not normalized: %+v", got)
	}
}

func TestCompareOrdering(t *testing.T) {
	early := New(1, 0)
	late := New(1, 1)
	later := New(2, 0)

	if !early.Before(late) {
		t.Fatal("expected early < late")
	}
	if !late.Before(later) {
		t.Fatal("expected late < later")
	}
	if !later.After(early) {
		t.Fatal("expected later > early")
	}
	if !early.Equal(New(1, 0)) {
		t.Fatal("expected equal timestamps to compare equal")
	}
	if !early.BeforeOrEqual(early) || !early.AfterOrEqual(early) {
		t.Fatal("expected reflexive <= and >=")
	}
}

func TestString(t *testing.T) {
	got := New(3, 7).String()
	want := "3.000000007s"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
