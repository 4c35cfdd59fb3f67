package config

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cube2222/octomap/codec"
)

func TestReadConfig(t *testing.T) {
	type args struct {
		path string
	}
	tests := []struct {
		name    string
		args    args
		want    *Config
		wantErr bool
	}{
		{
			name: "simple parse",
			args: args{
				path: "fixtures/example.yaml",
			},
			want: &Config{
				DuplicateKeys: "reject",
				Output:        "json",
				TypeCacheSize: 64,
				Logging: LoggingConfig{
					Enabled: true,
					Path:    "/tmp/octomap/logs.txt",
				},
			},
			wantErr: false,
		},
		{
			name: "defaults for missing fields",
			args: args{
				path: "fixtures/partial.yaml",
			},
			want: &Config{
				DuplicateKeys: "allow",
				Output:        "csv",
				TypeCacheSize: 1024,
			},
			wantErr: false,
		},
		{
			name: "invalid duplicate keys policy",
			args: args{
				path: "fixtures/invalid.yaml",
			},
			want:    nil,
			wantErr: true,
		},
		{
			name: "missing file",
			args: args{
				path: "fixtures/missing.yaml",
			},
			want:    nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadConfig(tt.args.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDuplicateKeysPolicy(t *testing.T) {
	tests := []struct {
		value   string
		want    codec.DuplicateKeys
		wantErr bool
	}{
		{value: "", want: codec.DuplicateKeysAllow},
		{value: "allow", want: codec.DuplicateKeysAllow},
		{value: "reject", want: codec.DuplicateKeysReject},
		{value: "REJECT", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := (&Config{DuplicateKeys: tt.value}).DuplicateKeysPolicy()
			if (err != nil) != tt.wantErr {
				t.Errorf("DuplicateKeysPolicy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("DuplicateKeysPolicy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogPath(t *testing.T) {
	tests := []struct {
		name    string
		logging LoggingConfig
		want    string
	}{
		{
			name:    "default",
			logging: LoggingConfig{Enabled: true},
			want:    filepath.Join(OctomapHomeDir, "logs.txt"),
		},
		{
			name:    "absolute",
			logging: LoggingConfig{Path: "/var/log/octomap.txt"},
			want:    "/var/log/octomap.txt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.logging.LogPath(); got != tt.want {
				t.Errorf("LogPath() = %v, want %v", got, tt.want)
			}
		})
	}
}
