package serveflags

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "no flags", args: nil, want: "tcp://:9090"},
		{name: "listen", args: []string{"--listen", "unix:///tmp/h.sock"}, want: "unix:///tmp/h.sock"},
		{name: "listen equals", args: []string{"--listen=mem://x"}, want: "mem://x"},
		{name: "port", args: []string{"--port", "7070"}, want: "tcp://:7070"},
		{name: "port equals", args: []string{"--port=0"}, want: "tcp://:0"},
		{name: "both flags", args: []string{"--listen", "mem://x", "--port", "1"}, wantErr: true},
		{name: "listen missing value", args: []string{"--listen"}, wantErr: true},
		{name: "port missing value", args: []string{"--port"}, wantErr: true},
		{name: "port not a number", args: []string{"--port", "ninety"}, wantErr: true},
		{name: "port out of range", args: []string{"--port", "70000"}, wantErr: true},
		{name: "unrelated args ignored", args: []string{"serve", "-v"}, want: "tcp://:9090"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%v) = %q, want error", tt.args, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%v) error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
