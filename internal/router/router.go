package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/auth"
	"github.com/studyhive-dev/studyhive/internal/handlers"
	"github.com/studyhive-dev/studyhive/internal/middleware"
	"github.com/studyhive-dev/studyhive/internal/types"
)

// Deps carries everything the route table needs. Handlers are constructed by
// the caller so the router stays a pure wiring concern.
type Deps struct {
	DB     *gorm.DB
	Tokens *auth.Manager

	Auth          *handlers.AuthHandler
	Profiles      *handlers.ProfileHandler
	Settings      *handlers.SettingHandler
	Storage       *handlers.StorageHandler
	Goals         *handlers.GoalHandler
	Sessions      *handlers.SessionHandler
	Materials     *handlers.MaterialHandler
	Friends       *handlers.FriendHandler
	Groups        *handlers.GroupHandler
	Invitations   *handlers.InvitationHandler
	Notifications *handlers.NotificationHandler
	Achievements  *handlers.AchievementHandler
	Experience    *handlers.ExperienceHandler
	Mentorships   *handlers.MentorshipHandler
	Chat          *handlers.ChatHandler
	ChatSocket    *handlers.ChatSocketHandler
	Backups       *handlers.BackupHandler
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware(deps.Tokens, deps.DB)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/rooms/:id", authRequired, deps.ChatSocket.Connect)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", deps.Auth.Register)
			authGroup.POST("/login", deps.Auth.Login)
			authGroup.POST("/refresh", deps.Auth.Refresh)
			authGroup.POST("/logout", authRequired, deps.Auth.Logout)
			authGroup.GET("/me", authRequired, deps.Auth.Me)
		}

		users := api.Group("/users", authRequired)
		{
			users.PATCH("/me", deps.Auth.UpdateAccount)
			users.DELETE("/me", deps.Auth.DeleteAccount)
			users.GET("/me/profile", deps.Profiles.Get)
			users.PATCH("/me/profile", deps.Profiles.Update)
			users.POST("/me/profile/avatar", deps.Profiles.UploadAvatar)
			users.GET("/me/settings", deps.Settings.Get)
			users.PATCH("/me/settings", deps.Settings.Update)
			users.GET("/me/storage", deps.Storage.Get)
			users.PATCH("/me/storage", deps.Storage.Update)
			users.GET("/me/storage/usage", deps.Storage.Usage)
			users.GET("/me/experience", deps.Experience.List)
			users.POST("/me/experience", deps.Experience.Grant)
		}

		goals := api.Group("/goals", authRequired)
		{
			goals.POST("", deps.Goals.Create)
			goals.GET("", deps.Goals.List)
			goals.GET("/:id", deps.Goals.Get)
			goals.PATCH("/:id", deps.Goals.Update)
			goals.DELETE("/:id", deps.Goals.Delete)
		}

		sessions := api.Group("/sessions", authRequired)
		{
			sessions.POST("", deps.Sessions.Create)
			sessions.GET("", deps.Sessions.List)
			sessions.GET("/:id", deps.Sessions.Get)
			sessions.PATCH("/:id", deps.Sessions.Update)
			sessions.DELETE("/:id", deps.Sessions.Delete)
		}

		materials := api.Group("/materials", authRequired)
		{
			materials.POST("", deps.Materials.Create)
			materials.GET("", deps.Materials.List)
			materials.GET("/:id", deps.Materials.Get)
			materials.PATCH("/:id", deps.Materials.Update)
			materials.DELETE("/:id", deps.Materials.Delete)
		}

		friends := api.Group("/friends", authRequired)
		{
			friends.POST("/requests", deps.Friends.SendRequest)
			friends.GET("/requests", deps.Friends.ListPending)
			friends.POST("/requests/:id/accept", deps.Friends.Accept)
			friends.POST("/requests/:id/reject", deps.Friends.Reject)
			friends.GET("", deps.Friends.List)
			friends.DELETE("/:user_id", deps.Friends.Unfriend)
		}

		groups := api.Group("/groups", authRequired)
		{
			groups.POST("", deps.Groups.Create)
			groups.GET("", deps.Groups.List)
			groups.GET("/:id", deps.Groups.Get)
			groups.PATCH("/:id", deps.Groups.Update)
			groups.DELETE("/:id", deps.Groups.Delete)
			groups.POST("/:id/join", deps.Groups.Join)
			groups.POST("/:id/leave", deps.Groups.Leave)
			groups.GET("/:id/members", deps.Groups.Members)
			groups.PATCH("/:id/members/:user_id/role", deps.Groups.SetRole)
			groups.POST("/:id/invitations", deps.Invitations.SendBulk)
			groups.POST("/:id/chat", deps.Chat.CreateGroupRoom)
		}

		invitations := api.Group("/invitations", authRequired)
		{
			invitations.GET("", deps.Invitations.ListMine)
			invitations.POST("/:id/accept", deps.Invitations.Accept)
			invitations.POST("/:id/decline", deps.Invitations.Decline)
		}

		notifications := api.Group("/notifications", authRequired)
		{
			notifications.GET("", deps.Notifications.List)
			notifications.GET("/unread-count", deps.Notifications.UnreadCount)
			notifications.POST("/:id/read", deps.Notifications.MarkRead)
			notifications.POST("/read-all", deps.Notifications.MarkAllRead)
			notifications.DELETE("/:id", deps.Notifications.Delete)
		}

		achievements := api.Group("/achievements", authRequired)
		{
			achievements.GET("", deps.Achievements.ListCatalog)
			achievements.GET("/mine", deps.Achievements.ListMine)
			achievements.GET("/history", deps.Achievements.History)
			achievements.POST("/:id/progress", deps.Achievements.AddProgress)
			achievements.POST("/:id/acquire", deps.Achievements.Acquire)
		}

		mentorships := api.Group("/mentorships", authRequired)
		{
			mentorships.POST("", deps.Mentorships.Request)
			mentorships.GET("", deps.Mentorships.List)
			mentorships.POST("/:id/accept", deps.Mentorships.Accept)
			mentorships.POST("/:id/decline", deps.Mentorships.Decline)
			mentorships.POST("/:id/end", deps.Mentorships.End)
		}

		rooms := api.Group("/rooms", authRequired)
		{
			rooms.POST("/direct", deps.Chat.CreateDirectRoom)
			rooms.GET("", deps.Chat.ListRooms)
			rooms.GET("/:id/messages", deps.Chat.ListMessages)
			rooms.POST("/:id/messages", deps.Chat.PostMessage)
			rooms.POST("/:id/read", deps.Chat.MarkRead)
		}

		backups := api.Group("/backups", authRequired)
		{
			backups.POST("", deps.Backups.Create)
			backups.GET("", deps.Backups.List)
			backups.POST("/restore", deps.Backups.Restore)
			backups.DELETE("/:id", deps.Backups.Delete)
		}
	}

	return r
}
