package store

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Options selects and configures a backend.
type Options struct {
	Backend  Backend         `mapstructure:"backend" json:"backend"`
	Path     string          `mapstructure:"path" json:"path"`
	SQLite   SQLiteOptions   `mapstructure:"sqlite" json:"sqlite"`
	Redis    RedisOptions    `mapstructure:"redis" json:"redis"`
	Postgres PostgresOptions `mapstructure:"postgres" json:"postgres"`
	Mongo    MongoOptions    `mapstructure:"mongo" json:"mongo"`
}

type SQLiteOptions struct {
	Path string `mapstructure:"path" json:"path"`
}

type RedisOptions struct {
	URL    string `mapstructure:"url" json:"url"`
	Prefix string `mapstructure:"prefix" json:"prefix"`
}

type PostgresOptions struct {
	URL   string `mapstructure:"url" json:"url"`
	Table string `mapstructure:"table" json:"table"`
}

type MongoOptions struct {
	URL        string `mapstructure:"url" json:"url"`
	Database   string `mapstructure:"database" json:"database"`
	Collection string `mapstructure:"collection" json:"collection"`
}

func backendValues() []interface{} {
	all := Backends()
	out := make([]interface{}, 0, len(all))
	for _, b := range all {
		out = append(out, b)
	}
	return out
}

// Validate checks that the selected backend has what it needs to open.
func (o *Options) Validate() error {
	if err := validation.ValidateStruct(o,
		validation.Field(&o.Backend, validation.Required, validation.In(backendValues()...)),
		validation.Field(&o.Path, validation.When(o.Backend == BackendDiskv, validation.Required)),
	); err != nil {
		return err
	}
	switch o.Backend {
	case BackendSQLite:
		return o.SQLite.Validate()
	case BackendRedis:
		return o.Redis.Validate()
	case BackendPostgres:
		return o.Postgres.Validate()
	case BackendMongo:
		return o.Mongo.Validate()
	}
	return nil
}

func (o *SQLiteOptions) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.Path, validation.Required),
	)
}

func (o *RedisOptions) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.URL, validation.Required),
	)
}

func (o *PostgresOptions) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.URL, validation.Required),
	)
}

func (o *MongoOptions) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.URL, validation.Required),
		validation.Field(&o.Database, validation.Required),
	)
}
