package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

type options struct {
	defaults map[string]any
	hooks    []mapstructure.DecodeHookFunc
	watch    bool
	onChange func(err error)
}

type Option func(*options)

// WithDefaults 设置缺省值，配置文件中缺失的 key 使用这些值。
func WithDefaults(defaults map[string]any) Option {
	return func(o *options) {
		o.defaults = defaults
	}
}

// WithDecodeHooks 追加 mapstructure 解码钩子（在 duration/slice 默认钩子之后执行）。
func WithDecodeHooks(hooks ...mapstructure.DecodeHookFunc) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hooks...)
	}
}

// WithWatch 开启文件变更监听；onChange 在每次重新解码之后回调。
func WithWatch(onChange func(err error)) Option {
	return func(o *options) {
		o.watch = true
		o.onChange = onChange
	}
}

var reloadMu sync.Mutex

// Load 读取配置文件并解码到 out（out 必须是指针）。
// 开启 watch 时热更新会在 reloadMu 保护下重新解码到同一个 out。
func Load(configPath string, out any, opts ...Option) error {
	if !fileExist(configPath) {
		return fmt.Errorf("config file not exist, configPath=%v", configPath)
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	for k, val := range o.defaults {
		v.SetDefault(k, val)
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %q: %w", configPath, err)
	}

	decode := func() error {
		hooks := append([]mapstructure.DecodeHookFunc{
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		}, o.hooks...)
		return v.Unmarshal(out, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(hooks...)))
	}
	if err := decode(); err != nil {
		return fmt.Errorf("unmarshal config %q: %w", configPath, err)
	}

	if o.watch {
		v.OnConfigChange(func(e fsnotify.Event) {
			reloadMu.Lock()
			err := decode()
			reloadMu.Unlock()
			if o.onChange != nil {
				o.onChange(err)
			}
		})
		v.WatchConfig()
	}
	return nil
}
