package zeeklog

import "testing"

func TestPolicyKeep(t *testing.T) {
	path := writeTempFile(t, "data\n")
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	s := NewSchema([]string{"uid", "ja4", "ja4s"})
	p := Policy{Fingerprints: []string{"ja4", "ja4s"}}

	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{"both set", []string{"C1", "t13d_x", "t13s_y"}, true},
		{"only first", []string{"C1", "t13d_x", "-"}, true},
		{"only second", []string{"C1", "-", "t13s_y"}, true},
		{"both unset marker", []string{"C1", "-", "-"}, false},
		{"both empty marker", []string{"C1", "(empty)", "(empty)"}, false},
		{"row too short to reach them", []string{"C1"}, false},
	}

	for _, tt := range tests {
		if got := p.Keep(r, s, tt.row); got != tt.want {
			t.Errorf("%s: Keep = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPolicyNoFingerprintsKeepsAll(t *testing.T) {
	path := writeTempFile(t, "data\n")
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	p := Policy{}
	s := NewSchema([]string{"uid"})
	if !p.Keep(r, s, []string{"-"}) {
		t.Error("a policy without fingerprint fields keeps every record")
	}
}
