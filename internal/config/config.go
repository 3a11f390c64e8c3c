package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Listen        string        `koanf:"listen"`
	Frontend      Frontend      `koanf:"frontend"`
	Storage       Storage       `koanf:"storage"`
	Database      Database      `koanf:"db"`
	Notifications Notifications `koanf:"notifications"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Storage selects the key-value medium backing the entity collections.
// Driver is either "file" or "postgres".
type Storage struct {
	Driver string `koanf:"driver"`
	Dir    string `koanf:"dir"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Notifications struct {
	Enabled bool `koanf:"enabled"`
	// ResweepCron re-arms all reminders on a cron schedule so that timers
	// lost across host suspend are recovered.
	ResweepCron string `koanf:"resweepcron"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8181",
		Frontend: Frontend{
			Enabled: true,
		},
		Storage: Storage{
			Driver: "file",
			Dir:    "./data",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "daybook",
			Pass:   "",
			Name:   "daybook",
			Schema: "daybook",
		},
		Notifications: Notifications{
			Enabled:     true,
			ResweepCron: "0 3 * * *",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "DAYBOOK_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "DAYBOOK_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
