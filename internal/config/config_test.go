package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("SERVER_PORT")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	LoadConfig()

	assert.Equal(t, "defaultsecret", JwtSecret)
	assert.Equal(t, "8080", ServerPort)
	assert.Equal(t, "https://exp.host/--/api/v2/push/send", ExpoPushURL)
	assert.Equal(t, []string{"admin", "commissioner"}, ApproverRoles)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	LoadConfig()

	assert.Equal(t, "from-env", JwtSecret)
	assert.Equal(t, "9000", ServerPort)
	assert.True(t, MinioUseSSL)
}

func TestFileOverridesWinOverEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "server_port: \"7000\"\njwt_secret: from-file\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CONFIG_FILE", path)

	LoadConfig()

	assert.Equal(t, "7000", ServerPort)
	assert.Equal(t, "from-file", JwtSecret)
	// Values absent from the file keep their env/default values.
	assert.Equal(t, "dms", Issuer)
}
