package config

import "testing"

func TestParseDaemonArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    DaemonConfig
		wantErr bool
	}{
		{
			name: "numeric device",
			args: []string{"0", "640", "480"},
			want: DaemonConfig{Device: "0", Width: 640, Height: 480},
		},
		{
			name: "test device",
			args: []string{"test", "128", "64"},
			want: DaemonConfig{Device: "test", Width: 128, Height: 64},
		},
		{name: "too few arguments", args: []string{"0", "640"}, wantErr: true},
		{name: "too many arguments", args: []string{"0", "640", "480", "x"}, wantErr: true},
		{name: "bad width", args: []string{"0", "wide", "480"}, wantErr: true},
		{name: "bad height", args: []string{"0", "640", "-1"}, wantErr: true},
		{name: "zero width", args: []string{"0", "0", "480"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDaemonArgs(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDaemonArgs(%v) = %+v, want error", tc.args, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDaemonArgs(%v): %v", tc.args, err)
			}
			if *got != tc.want {
				t.Errorf("ParseDaemonArgs(%v) = %+v, want %+v", tc.args, got, tc.want)
			}
		})
	}
}
