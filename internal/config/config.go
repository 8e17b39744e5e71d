package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env     string `yaml:"env" env-default:"local"`
	Storage struct {
		Path string `yaml:"path" env-default:"./data/chats"`
	} `yaml:"storage"`
	Reply struct {
		MinDelayMs int `yaml:"min_delay_ms" env-default:"1000"`
		MaxDelayMs int `yaml:"max_delay_ms" env-default:"3000"`
	} `yaml:"reply"`
	Seed struct {
		Enabled bool `yaml:"enabled" env-default:"true"`
	} `yaml:"seed"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9200"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
