package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/config"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/logging"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/media"
	miniorepo "github.com/psmahesh/Pinvent_APP_BackEnd/internal/repository/minio"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/repository/postgres"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/service"
	transporthttp "github.com/psmahesh/Pinvent_APP_BackEnd/internal/transport/http"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/transport/mail"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash writer disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	minioClient, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}
	storage := miniorepo.NewStorage(minioClient, cfg.MinIOPublicURL, cfg.MinIOUseSSL)

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	resetTTL, err := time.ParseDuration(cfg.PasswordResetTTL)
	if err != nil || resetTTL <= 0 {
		resetTTL = 30 * time.Minute
	}

	users := postgres.NewUserRepo(db)
	resets := postgres.NewPasswordResetRepo(db)
	products := postgres.NewProductRepo(db)

	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.SupportEmail)
	jwtManager := util.NewJWTManager(cfg.JWTSecret, sessionTTL)
	imageProcessor := media.NewFFMPEGProcessor(cfg.FFmpegPath, media.DefaultMaxDimension)

	authService := service.NewAuthService(users, resets, mailer, jwtManager, cfg.FrontendBaseURL, resetTTL)
	productService := service.NewProductService(products, storage, imageProcessor, cfg.MinIOBucketProducts, cfg.ProductImageMaxBytes)
	contactService := service.NewContactService(users, mailer)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterPages(e, cfg.HomeURL)
	transporthttp.RegisterSwagger(e)
	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterProducts(e, authService, productService)
	transporthttp.RegisterContact(e, authService, contactService)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
