package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Fardin5046/salat-tracker/internal/blob"
	"github.com/Fardin5046/salat-tracker/internal/notify"
	"github.com/Fardin5046/salat-tracker/internal/reminder"
	"github.com/Fardin5046/salat-tracker/internal/store"
)

func main() {
	env := LoadEnvironment()

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	backend, err := newBlobBackend(env)
	if err != nil {
		log.Fatal().Err(err).Str("backend", env.StorageBackend).Msg("storage init failed")
	}

	hub := notify.NewHub()
	trackerStore := store.New(backend, hub)

	if env.RemindersEnabled {
		notifiers := []reminder.Notifier{reminder.LogNotifier{}}
		if env.MQTTBroker != "" {
			mqttNotifier, err := reminder.NewMQTTNotifier(env.MQTTBroker, "salat-tracker-server")
			if err != nil {
				log.Error().Err(err).Msg("MQTT unavailable, continuing with log reminders only")
			} else {
				notifiers = append(notifiers, mqttNotifier)
			}
		}

		scheduler := reminder.NewScheduler(trackerStore, env.PrayerTimes, notifiers...)
		scheduler.Bind(hub)
		scheduler.Reschedule(context.Background())
	}

	r := gin.Default()
	RegisterRoutes(r, env, trackerStore, env.PrayerTimes)

	log.Info().Str("address", env.ServerAddress).Str("backend", env.StorageBackend).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// newBlobBackend picks the persistence medium. "memory" keeps nothing
// across restarts and exists for demos and tests.
func newBlobBackend(env Environment) (blob.Blob, error) {
	switch env.StorageBackend {
	case "file":
		return blob.NewFile(env.DataDir)
	case "redis":
		return blob.NewRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	case "postgres":
		return blob.NewPostgres(env.DatabaseURL)
	case "memory":
		return blob.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", env.StorageBackend)
}
