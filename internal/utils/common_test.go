package utils

import "testing"

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/", ""},
		{"/log_level", "log_level"},
		{"#/data_file", "data_file"},
		{"/foo/bar/0/baz", "foo.bar[0].baz"},
		{"/items/2", "items[2]"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
