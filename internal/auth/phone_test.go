package auth

import "testing"

func TestCleanContactNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"+91 98765 43210", "9876543210"},
		{"919876543210", "9876543210"},
		{"98-76-54-32-10", "9876543210"},
		{"91234", "91234"},      // too short for prefix stripping
		{"9198765432", "9198765432"}, // ten digits starting 91 stay intact
		{"", ""},
		{"abc", ""},
	}
	for _, tc := range cases {
		if got := CleanContactNumber(tc.in); got != tc.want {
			t.Fatalf("CleanContactNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
