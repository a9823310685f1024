package connection

import (
	"os"
	"time"

	"taskboard/config"
	authctl "taskboard/controller/auth"
	columnctl "taskboard/controller/column"
	projectctl "taskboard/controller/project"
	taskctl "taskboard/controller/task"
	userctl "taskboard/controller/user"
	"taskboard/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewRouter wires every controller onto a gin engine. Tests call it with a
// MemStore; StartServer with the Firestore store.
func NewRouter(db store.Store, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Not found"})
	})

	authctl.SignUpController(router, db, cfg)
	authctl.ConfirmationController(router, db, cfg)
	authctl.SignInController(router, db, cfg)
	authctl.RefreshController(router, db, cfg)
	authctl.SignOutController(router, db, cfg)

	userctl.UserController(router, db, cfg)
	projectctl.ProjectController(router, db, cfg)
	projectctl.MemberController(router, db, cfg)
	projectctl.OwnerController(router, db, cfg)
	columnctl.ColumnController(router, db, cfg)
	taskctl.TaskController(router, db, cfg)
	taskctl.SubscriptionController(router, db, cfg)

	return router
}

func StartServer() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	client, err := FBConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Firestore client")
	}
	db := store.NewFirestoreStore(client)

	router := NewRouter(db, cfg)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
