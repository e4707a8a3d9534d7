package serverconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConf(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write conf: %v", err)
	}
	return path
}

func TestLoadInto_缺省值与枚举规范化(t *testing.T) {
	path := writeConf(t, `
worldgen:
  picker: " NOISE "
  seed: 42
storage:
  battle: SQLite
sqlite:
  path: /tmp/dotwars.db
`)
	var c Config
	if err := LoadInto(path, &c); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.WorldGen.Picker != PickerNoise {
		t.Fatalf("picker=%q", c.WorldGen.Picker)
	}
	if c.Storage.Battle != StoreSQLite || c.Storage.World != StoreMemory {
		t.Fatalf("storage=%+v", c.Storage)
	}
	if c.Simulation.StartingMorale != 100 {
		t.Fatalf("期望缺省士气 100, got=%v", c.Simulation.StartingMorale)
	}
	if c.Simulation.AskTimeout != 3*time.Second {
		t.Fatalf("期望 ask_timeout 解码为 3s, got=%v", c.Simulation.AskTimeout)
	}
	if c.Auth.TokenTTL != 24*time.Hour || c.Auth.Secret != "" {
		t.Fatalf("auth=%+v", c.Auth)
	}
	if c.WorldGen.Seed != 42 || c.WorldGen.Width != 8 {
		t.Fatalf("worldgen=%+v", c.WorldGen)
	}
}

func TestLoadInto_未知地形选择器应报错(t *testing.T) {
	path := writeConf(t, "worldgen:\n  picker: perlin\n")
	var c Config
	if err := LoadInto(path, &c); err == nil {
		t.Fatalf("期望未知 picker 返回错误")
	}
}

func TestLoadInto_文件不存在(t *testing.T) {
	var c Config
	if err := LoadInto(filepath.Join(t.TempDir(), "missing.yml"), &c); err == nil {
		t.Fatalf("期望返回错误")
	}
}
