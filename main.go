package main

import (
	"context"
	"net/http"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	appConfig "eraline/config"
	"eraline/database"
	"eraline/gemini"
	"eraline/handlers"
	"eraline/sentry"
	"eraline/spotify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}
	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	appConfig.NewConfig()
	sentry.Init()

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	if !appConfig.Config.Spotify.IsConfigured() {
		log.Fatal("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set")
	}

	db, err := database.New()
	if err != nil {
		return err
	}
	defer db.Close()

	manager := handlers.NewManager(spotify.NewAuthenticator(), db, gemini.NewNamer(ctx))

	router := gin.Default()
	router.Use(sentry.GetSentryGin())

	router.GET("/", manager.Index)
	router.GET("/login", manager.Login)
	router.GET("/callback", manager.Callback)
	router.GET("/logout", manager.Logout)
	router.GET("/timeline", manager.Timeline)
	router.GET("/api/phases", manager.Phases)
	router.POST("/api/phases/name", manager.NamePhase)

	port := appConfig.Config.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Infof("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}
