package bytesize

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"1", 1, true},
		{"1B", 1, true},
		{"1KiB", 1024, true},
		{"8MiB", 8 * 1024 * 1024, true},
		{"1GiB", 1024 * 1024 * 1024, true},
		{"1TiB", 1024 * 1024 * 1024 * 1024, true},
		{"", 0, false},
		{"B", 0, false},
		{"KiB", 0, false},
		{"1KB", 0, false},
		{"1Ki", 0, false},
		{"1XiB", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"999999999999999999999999", 0, false},
		{"9999999TiB", 0, false},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if (err == nil) != tc.wantOK || got != tc.want {
			t.Fatalf("Parse(%q) = (%d, %v), want (%d, ok=%v)", tc.in, got, err, tc.want, tc.wantOK)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := map[int64]string{
		0:                "0B",
		1:                "1B",
		1536:             "1536B",
		8 << 20:          "8MiB",
		3 << 30:          "3GiB",
		(1 << 40) + 1024: "1073741825KiB",
	}

	for in, want := range cases {
		if got := Format(in); got != want {
			t.Fatalf("Format(%d) = %q, want %q", in, got, want)
		}
	}

	for _, n := range []int64{1, 1024, 8 << 20, 12345} {
		got, err := Parse(Format(n))
		if err != nil || got != n {
			t.Fatalf("Parse(Format(%d)) = (%d, %v)", n, got, err)
		}
	}
}
