package serverconfig

import (
	"DotWars/internal/shared/config"
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

// StoreDriver 标识持久化实现。
type StoreDriver string

const (
	StoreMemory  StoreDriver = "memory"
	StoreMongoDB StoreDriver = "mongodb"
	StoreMySQL   StoreDriver = "mysql"
	StoreSQLite  StoreDriver = "sqlite"
)

// TerrainPickerKind 标识世界生成使用的地形选择器。
type TerrainPickerKind string

const (
	PickerModulo TerrainPickerKind = "modulo" // seed % 6，存档兼容
	PickerNoise  TerrainPickerKind = "noise"
)

// Defaults 是配置文件缺省时使用的值。
func Defaults() map[string]any {
	return map[string]any{
		"log.level":                    "info",
		"httpserver.host":              "0.0.0.0",
		"httpserver.port":              8080,
		"auth.token_ttl":               "24h",
		"storage.world":                string(StoreMemory),
		"storage.battle":               string(StoreMemory),
		"simulation.world_id":          1,
		"simulation.starting_morale":   100.0,
		"simulation.construction_rate": 0.25,
		"simulation.battle_stop_rule":  "Turn >= 100",
		"simulation.ask_timeout":       "3s",
		"simulation.flush_every":       "3s",
		"worldgen.width":               8,
		"worldgen.height":              8,
		"worldgen.provinces":           64,
		"worldgen.picker":              string(PickerModulo),
		"worldgen.seed":                1,
	}
}

// Load 查找并加载 configs/conf.yml；cfgPath 非空时优先使用。
func Load(cfgPath string) {
	if err := LoadInto(cfgPath, &Conf); err != nil {
		panic(err)
	}
}

func LoadInto(cfgPath string, out *Config) error {
	path := cfgPath
	if path == "" {
		curDir, err := os.Getwd()
		if err != nil {
			return err
		}
		found, ok := config.FindUpward(curDir, defaultConfigRelPath)
		if !ok {
			return fmt.Errorf("config file not exist, searched %s from: %s", defaultConfigRelPath, curDir)
		}
		path = found
	}
	return config.Load(path, out,
		config.WithDefaults(Defaults()),
		config.WithDecodeHooks(stringToEnumHook()),
		config.WithWatch(func(err error) {
			if err != nil {
				log.Printf("reload config failed: %v", err)
				return
			}
			log.Println("配置文件变更")
		}),
	)
}

// stringToEnumHook 规范化枚举字符串（大小写、空白），并拒绝未知取值。
func stringToEnumHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		raw := strings.ToLower(strings.TrimSpace(data.(string)))
		switch to {
		case reflect.TypeOf(StoreDriver("")):
			switch d := StoreDriver(raw); d {
			case StoreMemory, StoreMongoDB, StoreMySQL, StoreSQLite:
				return d, nil
			}
			return nil, fmt.Errorf("unknown store driver %q", raw)
		case reflect.TypeOf(TerrainPickerKind("")):
			switch k := TerrainPickerKind(raw); k {
			case PickerModulo, PickerNoise:
				return k, nil
			}
			return nil, fmt.Errorf("unknown terrain picker %q", raw)
		}
		return data, nil
	}
}
