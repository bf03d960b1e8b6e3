package main

import (
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"blogpost/internal/config"
	"blogpost/internal/db"
	"blogpost/internal/handlers"
	"blogpost/internal/middleware"
	"blogpost/internal/router"
	"blogpost/internal/services"
	"blogpost/internal/store"
	"blogpost/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}
	cfg := config.Load()

	// Database
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Stores and services, built once and passed down explicitly
	userStore := store.NewUserStore(conn)
	postStore := store.NewPostStore(conn)
	tokenService := services.NewResetTokenService(cfg.SessionSecret, services.DefaultResetTokenTTL)
	mailService := services.NewMailService(cfg)
	avatarService := services.NewAvatarService(cfg.AvatarDir)

	feedCache, err := utils.NewCache(500)
	if err != nil {
		log.Fatalf("Failed to create feed cache: %v", err)
	}

	// Gin
	r := gin.Default()

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("blogpost_session", sessionStore))

	r.HTMLRender = loadTemplates("./web/templates")
	r.Static("/static", "./web/static")

	r.Use(middleware.LoadUser(userStore))

	// Handlers
	pageHandler := handlers.NewPageHandler(postStore, feedCache)
	authHandler := handlers.NewAuthHandler(userStore, tokenService, mailService, cfg.SiteURL)
	postHandler := handlers.NewPostHandler(postStore, feedCache)
	userHandler := handlers.NewUserHandler(userStore, postStore, avatarService)

	router.Register(r, pageHandler, authHandler, postHandler, userHandler)

	log.Printf("Blogpost server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			timeVal, ok := t.(time.Time)
			if !ok {
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"dateFmt": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
	}

	// Manual registration to keep keys matching handler expectations
	r.AddFromFilesFuncs("home.html", funcMap, assemble(templatesDir+"/views/home.html")...)
	r.AddFromFilesFuncs("about.html", funcMap, assemble(templatesDir+"/views/about.html")...)

	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/reset_request.html", funcMap, assemble(templatesDir+"/views/auth/reset_request.html")...)
	r.AddFromFilesFuncs("auth/reset_token.html", funcMap, assemble(templatesDir+"/views/auth/reset_token.html")...)

	r.AddFromFilesFuncs("post/detail.html", funcMap, assemble(templatesDir+"/views/post/detail.html")...)
	r.AddFromFilesFuncs("post/create.html", funcMap, assemble(templatesDir+"/views/post/create.html")...)
	r.AddFromFilesFuncs("post/edit.html", funcMap, assemble(templatesDir+"/views/post/edit.html")...)

	r.AddFromFilesFuncs("account.html", funcMap, assemble(templatesDir+"/views/account.html")...)
	r.AddFromFilesFuncs("user/posts.html", funcMap, assemble(templatesDir+"/views/user/posts.html")...)

	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
