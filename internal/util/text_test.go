package util

import "testing"

func TestNormalizeDistrict(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"baxter", "Baxter"},
		{"BAXTER", "Baxter"},
		{" metro ", "Metro"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeDistrict(tc.input); got != tc.want {
			t.Fatalf("NormalizeDistrict(%q)=%q want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeCounty(t *testing.T) {
	if got := NormalizeCounty("morrison"); got != "MORRISON" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeCounty(" Hennepin "); got != "HENNEPIN" {
		t.Fatalf("got %q", got)
	}
}
