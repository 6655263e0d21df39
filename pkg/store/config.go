package store

import (
	"log"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config supplies everything the persistence layer and outbound reminder
// scheduling need at startup. Vendor identifiers are injected here instead
// of living as package constants.
type Config interface {
	BasePath() string
	ReminderURL() string
	ReminderUserID() string
}

// LoadConfig reads the .wayfare config file and WAYFARE_* environment
// variables.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.wayfare.db")
	viper.SetDefault("reminder.url", "")
	viper.SetDefault("reminder.user_id", "")
	viper.SetConfigName(".wayfare") // .yaml is implicit
	viper.SetEnvPrefix("WAYFARE")
	viper.AutomaticEnv()

	if override := os.Getenv("WAYFARE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		path = viper.GetString("path")
	}

	return &fileConfig{
		Path:   path,
		URL:    viper.GetString("reminder.url"),
		UserID: viper.GetString("reminder.user_id"),
	}, nil
}

type fileConfig struct {
	Path   string `json:"path"`
	URL    string `json:"reminderUrl"`
	UserID string `json:"reminderUserId"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) ReminderURL() string {
	return f.URL
}

func (f *fileConfig) ReminderUserID() string {
	return f.UserID
}
