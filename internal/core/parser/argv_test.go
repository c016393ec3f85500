package parser

import (
	"reflect"
	"strings"
	"testing"

	"go-cmdgui/internal/core/utils"
)

func TestArgv(t *testing.T) {
	p := mustCompile(t, tarSchema)

	tests := []struct {
		name   string
		form   Values
		active map[string]string
		want   []string
	}{
		{
			name: "untouched form emits only required values",
			form: Values{
				"create": false, "extract": false, "verbose": true, "output": "a.tar",
				"level": "6", "compression": "gzip", "label": "",
			},
			want: []string{"--output=a.tar"},
		},
		{
			name: "changed values and active group member",
			form: Values{
				"create": true, "extract": true, "verbose": false, "output": "a.tar",
				"level": "9", "compression": "xz",
			},
			active: map[string]string{"mode": "extract"},
			want:   []string{"--extract=true", "--verbose=false", "--output=a.tar", "--level=9", "--compress=xz"},
		},
		{
			name:   "inactive group member is dropped",
			form:   Values{"create": true, "output": "a.tar"},
			active: map[string]string{"mode": "extract"},
			want:   []string{"--output=a.tar"},
		},
		{
			name: "positionals after terminator",
			form: Values{"output": "a.tar", "inputs": []string{"-odd name", "b"}},
			want: []string{"--output=a.tar", "--", "-odd name", "b"},
		},
		{
			name: "cleared integer falls back to default",
			form: Values{"output": "a.tar", "level": ""},
			want: []string{"--output=a.tar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Argv(tt.form, tt.active)
			if err != nil {
				t.Fatalf("Argv() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Argv() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArgv_RoundTrip(t *testing.T) {
	p := mustCompile(t, tarSchema)

	form := Values{
		"create": true, "verbose": true, "output": "backup.tar",
		"level": "3", "compression": "bzip2", "label": "nightly",
		"inputs": []string{"a.txt", "b.txt"},
	}
	active := map[string]string{"mode": "create"}

	argv, err := p.Argv(form, active)
	if err != nil {
		t.Fatalf("Argv() error = %v", err)
	}
	got, err := p.Parse(argv)
	if err != nil {
		t.Fatalf("Parse(Argv()) error = %v", err)
	}

	want := Values{
		"create": true, "verbose": true, "output": "backup.tar", "level": 3,
		"compression": "bzip2", "label": "nightly", "inputs": []string{"a.txt", "b.txt"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %#v, want %#v", got, want)
	}
}

func TestArgv_PositionalDefaultFillsGap(t *testing.T) {
	p := mustCompile(t, "[program]\ncommand = cp\n[src]\ndefault = a\n[dst]\n")

	got, err := p.Argv(Values{"src": "", "dst": "b"}, nil)
	if err != nil {
		t.Fatalf("Argv() error = %v", err)
	}
	want := []string{"--", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Argv() = %q, want %q", got, want)
	}
}

func TestArgv_PositionalGap(t *testing.T) {
	p := mustCompile(t, "[program]\ncommand = cp\n[src]\n[dst]\n[rest]\ntype = file\nmultiple = true\n")

	tests := []struct {
		name    string
		form    Values
		want    []string
		wantErr string
	}{
		{
			name:    "later single positional without earlier",
			form:    Values{"src": "", "dst": "b"},
			wantErr: "src must be set when dst is given",
		},
		{
			name:    "trailing list without earlier",
			form:    Values{"src": "a", "rest": []string{"c"}},
			wantErr: "dst must be set when rest is given",
		},
		{
			name: "trailing empties are dropped",
			form: Values{"src": "a", "dst": "", "rest": []string{}},
			want: []string{"--", "a"},
		},
		{
			name: "all filled",
			form: Values{"src": "a", "dst": "b", "rest": []string{"c", "d"}},
			want: []string{"--", "a", "b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Argv(tt.form, nil)
			if tt.wantErr != "" {
				if !utils.IsValidationError(err) || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Argv() error = %v, want validation error %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Argv() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Argv() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValues_DecodedJSON(t *testing.T) {
	form := Values{
		"files": []interface{}{"a.txt", "b.txt"},
		"count": float64(12),
		"empty": []interface{}{},
	}

	if got := form.Strings("files"); len(got) != 2 || got[1] != "b.txt" {
		t.Errorf("Strings() = %v", got)
	}
	if got := form.String("count"); got != "12" {
		t.Errorf("String() = %q, want 12", got)
	}
	if isSet(form["empty"]) {
		t.Error("an empty decoded list should not count as set")
	}
}
