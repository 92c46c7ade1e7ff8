package wahlkreis

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFederalListID(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{1, "001"},
		{"1", "001"},
		{"001", "001"},
		{75, "075"},
		{75.0, "075"},
		{"75", "075"},
		{json.Number("75"), "075"},
		{299, "299"},
		{"", ""},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := FederalListID(c.in); got != c.want {
			t.Errorf("FederalListID(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStateListID(t *testing.T) {
	if got := StateListID("be", 4); got != "BE-0004" {
		t.Errorf("StateListID = %q, want BE-0004", got)
	}
	if got := StateListID("BY", "104"); got != "BY-0104" {
		t.Errorf("StateListID = %q, want BY-0104", got)
	}
	if got := StateListID("", 4); got != "" {
		t.Errorf("StateListID without code = %q, want empty", got)
	}
}

func TestListIDCandidates(t *testing.T) {
	cases := []struct {
		in   any
		want []string
	}{
		{1, []string{"1", "001"}},
		{"001", []string{"001", "1"}},
		{75.0, []string{"75", "075"}},
		{"kein-wahlkreis", []string{"kein-wahlkreis"}},
	}
	for _, c := range cases {
		if got := ListIDCandidates(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("ListIDCandidates(%v) = %v, want %v", c.in, got, c.want)
		}
	}

	if got := ListIDCandidates(""); got != nil {
		t.Errorf("ListIDCandidates(\"\") = %v, want nil", got)
	}
}
