package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"sweetshop-service/internal/admin"
	"sweetshop-service/internal/api"
	"sweetshop-service/internal/availability"
	"sweetshop-service/internal/catalog"
	"sweetshop-service/internal/checkout"
	"sweetshop-service/internal/config"
	"sweetshop-service/internal/promo"
	"sweetshop-service/internal/session"
	"sweetshop-service/internal/shopstatus"
	"sweetshop-service/migrations"
)

func connectDBEnv(host, port, user, pass, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("✅ Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("❌ Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	db, err := connectDBEnv(os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"))
	if err != nil {
		panic(err)
	}

	for name, migrate := range map[string]func(int, *sql.DB) error{
		"product_availability": migrations.AutoMigrateAvailability,
		"promo_codes":          migrations.AutoMigratePromoCodes,
		"shop_settings":        migrations.AutoMigrateShopSettings,
		"working_hours":        migrations.AutoMigrateWorkingHours,
		"orders":               migrations.AutoMigrateOrders,
		"order_lines":          migrations.AutoMigrateOrderLines,
	} {
		if err := migrate(3, db); err != nil {
			log.Fatalf("Failed to migrate %s table: %v", name, err)
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})

	cat, err := catalog.Load(os.Getenv("CATALOG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	orderWriter := config.NewKafkaWriter("order-topic")
	availabilityWriter := config.NewKafkaWriter("availability-topic")
	availabilityReader := config.NewKafkaReader("availability-topic", "sweetshop-storefront-group")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	availRepo := availability.NewRepository(db)
	availSvc := availability.NewService(availRepo)
	if err := availSvc.Refresh(ctx); err != nil {
		log.Printf("❌ Failed to seed availability map: %v", err)
	}
	go availability.NewConsumer(availSvc, availabilityReader).Run(ctx)

	promoSvc := promo.NewService(promo.NewRepository(db))
	shopRepo := shopstatus.NewRepository(db)
	shopSvc := shopstatus.NewService(shopRepo)
	checkoutSvc := checkout.NewService(
		checkout.NewRepository(db),
		shopSvc,
		rdb,
		orderWriter,
		envOr("SHOP_PHONE", "962781506347"),
	)

	sessions := session.NewManager(2 * time.Hour)
	go sessions.Run(ctx, 10*time.Minute)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	storefront := api.NewStorefrontHandler(sessions, cat, availSvc, promoSvc, shopSvc, checkoutSvc)
	storefront.Register(e)

	jwtSecret := []byte(envOr("JWT_SECRET", "secret"))
	auth := admin.NewAuth(rdb, jwtSecret, envOr("ADMIN_EMAIL", "admin@sweetshop.local"), os.Getenv("ADMIN_PASSWORD"))
	e.POST("/admin/login", auth.Login)

	adminGroup := e.Group("/admin")
	adminGroup.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: jwtSecret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(admin.JwtCustomClaims)
		},
	}))
	admin.NewHandler(availRepo, availSvc, promoSvc, shopRepo, availabilityWriter).Register(adminGroup)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "sweetshop-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":8080"))
}
