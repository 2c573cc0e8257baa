package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", "http://localhost"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=alt.json", "-a", "x"},
			allowed: []string{"--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next token is a flag",
			args:    []string{"-c", "-t", "5"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-a", "http://h", "-d", "blog.db", "-l", "debug"},
			allowed: []string{"-a", "-l"},
			want:    []string{"-a", "http://h", "-l", "debug"},
		},
		{
			name:    "empty",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	t.Run("short flag", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "")
		assert.Equal(t, "/tmp/a.json", ConfigFile([]string{"-c", "/tmp/a.json", "-a", "x"}))
	})

	t.Run("long flag wins when last", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "")
		assert.Equal(t, "/tmp/b.json", ConfigFile([]string{"-c", "/tmp/a.json", "-config", "/tmp/b.json"}))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "/etc/blog.json")
		assert.Equal(t, "/etc/blog.json", ConfigFile([]string{"-a", "x"}))
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "/etc/blog.json")
		assert.Equal(t, "/tmp/a.json", ConfigFile([]string{"-c", "/tmp/a.json"}))
	})

	t.Run("nothing", func(t *testing.T) {
		t.Setenv(EnvConfigFile, "")
		assert.Empty(t, ConfigFile(nil))
	})
}
