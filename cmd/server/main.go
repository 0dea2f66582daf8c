package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-blog/internal/config"
	"github.com/iliyamo/social-blog/internal/database"
	"github.com/iliyamo/social-blog/internal/handler"
	"github.com/iliyamo/social-blog/internal/middleware"
	"github.com/iliyamo/social-blog/internal/queue"
	"github.com/iliyamo/social-blog/internal/repository"
	"github.com/iliyamo/social-blog/internal/router"
	queue_publisher "github.com/iliyamo/social-blog/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	posts := repository.NewPostRepo(db)
	comments := repository.NewCommentRepo(db)
	likes := repository.NewLikeRepo(db)

	// Events are optional; without a broker the handlers simply skip
	// publishing.
	var events handler.EventPublisher
	if cfg.EventsEnabled {
		events = queue_publisher.New()
		go func() {
			if err := queue.StartActivityConsumer(); err != nil {
				log.Printf("activity consumer stopped: %v", err)
			}
		}()
	}

	// Redis is optional too; a nil client turns the cache middleware
	// into a pass-through.
	cache := middleware.ResponseCache(config.LoadCacheConfig(), config.NewRedisClient())

	a := handler.NewAuthHandler(cfg, users)
	p := handler.NewPostHandler(posts, likes, events)
	cm := handler.NewCommentHandler(comments)
	l := handler.NewLikeHandler(likes, events)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, a, cfg.JWTSecret, cache)
	router.RegisterPosts(e, p, cfg.JWTSecret, cache)
	router.RegisterComments(e, cm, cfg.JWTSecret, cache)
	router.RegisterLikes(e, l, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
