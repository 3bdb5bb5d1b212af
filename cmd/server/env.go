package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Fardin5046/salat-tracker/internal/prayer"
)

type Environment struct {
	Environment   string
	ServerAddress string

	// Auth is optional; both must be set to enable it.
	SecretKey         string
	OwnerPasswordHash string

	// file (default), redis, postgres or memory
	StorageBackend string
	DataDir        string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	DatabaseURL   string

	RemindersEnabled bool
	MQTTBroker       string

	PrayerTimes prayer.Schedule
}

// LoadEnvironment reads settings from the environment, with a .env file
// honored when present.
func LoadEnvironment() Environment {
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("loaded .env file")
	}

	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),

		SecretKey:         os.Getenv("JWT_SECRET"),
		OwnerPasswordHash: os.Getenv("OWNER_PASSWORD_HASH"),

		StorageBackend: os.Getenv("STORAGE_BACKEND"),
		DataDir:        os.Getenv("DATA_DIR"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		RemindersEnabled: os.Getenv("REMINDERS_ENABLED") != "false",
		MQTTBroker:       os.Getenv("MQTT_BROKER"),

		PrayerTimes: loadPrayerTimes(),
	}

	if env.ServerAddress == "" {
		env.ServerAddress = ":8080"
	}
	if env.StorageBackend == "" {
		env.StorageBackend = "file"
	}
	if env.DataDir == "" {
		env.DataDir = "./data"
	}

	return env
}

// AuthEnabled reports whether the API should require a session token.
func (e Environment) AuthEnabled() bool {
	return e.SecretKey != "" && e.OwnerPasswordHash != ""
}

// loadPrayerTimes applies PRAYER_TIMES overrides ("fajr=05:10,asr=16:45")
// on top of the default table. Bad entries are logged and skipped.
func loadPrayerTimes() prayer.Schedule {
	schedule := prayer.DefaultSchedule.Clone()
	raw := os.Getenv("PRAYER_TIMES")
	if raw == "" {
		return schedule
	}

	for _, entry := range strings.Split(raw, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(entry), "=")
		if !found {
			log.Warn().Str("entry", entry).Msg("ignoring malformed PRAYER_TIMES entry")
			continue
		}
		key, ok := prayer.ParseKey(name)
		if !ok {
			log.Warn().Str("entry", entry).Msg("ignoring unknown prayer in PRAYER_TIMES")
			continue
		}
		schedule[key] = value
	}
	return schedule
}
