package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/joho/godotenv"

	"github.com/studyhive-dev/studyhive/db"
	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/backup"
	"github.com/studyhive-dev/studyhive/internal/chat"
	"github.com/studyhive-dev/studyhive/internal/config"
	"github.com/studyhive-dev/studyhive/internal/handlers"
	"github.com/studyhive-dev/studyhive/internal/router"
	"github.com/studyhive-dev/studyhive/internal/scheduler"
	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Warn("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	gormDB, err := db.Connect(cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	uploader := utils.NewUploader(cfg.UploadDir)
	hub := chat.NewHub()
	runner := backup.NewRunner(cfg)
	notifier := services.NewWebhookNotifier(cfg.OpsWebhookURL)

	notifications := services.NewNotificationService(gormDB)
	storage := services.NewStorageService(gormDB)
	experience := services.NewExperienceService(gormDB)
	groups := services.NewGroupService(gormDB)

	users := services.NewUserService(gormDB, tokens)
	profiles := services.NewProfileService(gormDB)
	settings := services.NewSettingService(gormDB)
	goals := services.NewGoalService(gormDB)
	sessions := services.NewSessionService(gormDB)
	materials := services.NewMaterialService(gormDB, uploader, storage)
	friends := services.NewFriendService(gormDB, notifications)
	invitations := services.NewInvitationService(gormDB, groups, notifications)
	achievements := services.NewAchievementService(gormDB, experience)
	mentorships := services.NewMentorshipService(gormDB, notifications)
	chatService := services.NewChatService(gormDB, hub)
	backups := services.NewBackupService(gormDB, runner, notifier)

	if cfg.BackupInterval > 0 {
		backupScheduler := scheduler.NewScheduler(backups, cfg.BackupInterval)
		backupScheduler.Start()
		defer backupScheduler.Stop()
	}

	r := router.NewRouter(router.Deps{
		DB:     gormDB,
		Tokens: tokens,

		Auth:          handlers.NewAuthHandler(users),
		Profiles:      handlers.NewProfileHandler(profiles, uploader),
		Settings:      handlers.NewSettingHandler(settings),
		Storage:       handlers.NewStorageHandler(storage),
		Goals:         handlers.NewGoalHandler(goals),
		Sessions:      handlers.NewSessionHandler(sessions),
		Materials:     handlers.NewMaterialHandler(materials, storage, uploader),
		Friends:       handlers.NewFriendHandler(friends),
		Groups:        handlers.NewGroupHandler(groups),
		Invitations:   handlers.NewInvitationHandler(invitations),
		Notifications: handlers.NewNotificationHandler(notifications),
		Achievements:  handlers.NewAchievementHandler(achievements),
		Experience:    handlers.NewExperienceHandler(experience),
		Mentorships:   handlers.NewMentorshipHandler(mentorships),
		Chat:          handlers.NewChatHandler(chatService),
		ChatSocket:    handlers.NewChatSocketHandler(hub, chatService),
		Backups:       handlers.NewBackupHandler(backups),
	})

	log.WithField("port", cfg.Port).Info("starting server")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
