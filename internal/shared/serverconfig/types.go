package serverconfig

import "time"

type Config struct {
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	SQLite     SQLiteConfig     `yaml:"sqlite" mapstructure:"sqlite"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Auth       AuthConfig       `yaml:"auth" mapstructure:"auth"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	WorldGen   WorldGenConfig   `yaml:"worldgen" mapstructure:"worldgen"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// AuthConfig Secret 为空且没有 JWT_SECRET 环境变量时不开启鉴权。
type AuthConfig struct {
	Secret   string        `yaml:"secret" mapstructure:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// StorageConfig 选择各聚合的持久化实现。
type StorageConfig struct {
	World  StoreDriver `yaml:"world" mapstructure:"world"`   // memory/mongodb
	Battle StoreDriver `yaml:"battle" mapstructure:"battle"` // memory/mysql/sqlite
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type SimulationConfig struct {
	WorldID          int           `yaml:"world_id" mapstructure:"world_id"`
	StartingMorale   float32       `yaml:"starting_morale" mapstructure:"starting_morale"`
	ConstructionRate float32       `yaml:"construction_rate" mapstructure:"construction_rate"` // 每回合建造进度
	BattleStopRule   string        `yaml:"battle_stop_rule" mapstructure:"battle_stop_rule"`   // expr 表达式
	AskTimeout       time.Duration `yaml:"ask_timeout" mapstructure:"ask_timeout"`
	FlushEvery       time.Duration `yaml:"flush_every" mapstructure:"flush_every"`
}

type WorldGenConfig struct {
	Width     uint32            `yaml:"width" mapstructure:"width"`
	Height    uint32            `yaml:"height" mapstructure:"height"`
	Provinces uint32            `yaml:"provinces" mapstructure:"provinces"`
	Picker    TerrainPickerKind `yaml:"picker" mapstructure:"picker"`
	Seed      int64             `yaml:"seed" mapstructure:"seed"`
	Factions  []string          `yaml:"factions" mapstructure:"factions"`
}
