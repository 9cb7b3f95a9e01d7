package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"learnhub/internal/auth"
	"learnhub/internal/catalog"
	"learnhub/internal/chat"
	"learnhub/internal/enroll"
	"learnhub/internal/events"
	"learnhub/internal/journal"
	"learnhub/internal/notify"
	"learnhub/internal/progress"
	"learnhub/internal/recommend"
	"learnhub/internal/reviews"
	"learnhub/internal/sources"
	"learnhub/pkg/database"
	"learnhub/pkg/utils"
)

func main() {
	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	router := gin.Default()

	// Optional: avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Start TCP events first (so you notice binding errors early)
	hub := events.NewHub()
	router.GET("/ws", events.WSHandler(hub))
	tcpSrv := events.NewServer(":7070", hub)

	// UDP notify server for course announcements
	registry := notify.NewRegistry()
	udpSrv := notify.NewServer(":9091", registry, log.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db":          cfg.Path,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	// Catalog (public reads)
	catalogRepo := catalog.NewRepo(db)
	catalogHandler := catalog.NewHandler(catalogRepo, udpSrv)
	catalogHandler.RegisterRoutes(router.Group("/courses"))

	// Recommendations
	recCfg := utils.LoadRecommendConfig()
	agg := sources.NewAggregator(
		sources.NewYouTube(),
		sources.NewCoursera(),
		sources.NewUdemy(),
		sources.NewMITOCW(),
		sources.NewFreePlatforms(recCfg.MirrorURL),
		sources.NewClassCentral(),
	)
	recService := recommend.NewService(catalogRepo, agg, recCfg.LocalThreshold, recCfg.ExternalCap)
	recHandler := recommend.NewHandler(recService)
	recHandler.RegisterRoutes(router.Group("/api"))

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Protected routes
	protected := router.Group("/users")
	protected.Use(auth.AuthMiddleware(tokenSvc, authRepo))

	// Admin course creation (behind auth)
	adminCourses := router.Group("/courses")
	adminCourses.Use(auth.AuthMiddleware(tokenSvc, authRepo))
	catalogHandler.RegisterAdminRoutes(adminCourses)

	// Enrollments (protected)
	enrollRepo := enroll.NewRepo(db)
	enrollHandler := enroll.NewHandler(enrollRepo, hub)
	enrollHandler.RegisterRoutes(protected)

	// Progress history (protected)
	progressRepo := progress.NewRepo(db)
	progressHandler := progress.NewHandler(progressRepo, hub)
	progressHandler.RegisterRoutes(protected)

	// Reviews
	reviewRepo := reviews.NewRepo(db)
	reviewHandler := reviews.NewHandler(reviewRepo, catalogRepo)
	reviewHandler.RegisterPublicRoutes(router.Group(""))
	reviewHandler.RegisterProtectedRoutes(protected)

	// Journal (protected)
	journalRepo := journal.NewRepo(db)
	journalHandler := journal.NewHandler(journalRepo, journal.DefaultScorer())
	journalHandler.RegisterRoutes(protected)

	// Study room chat
	chatHub := chat.NewHub(0)
	router.GET("/chat/:course_id", chat.WSHandler(chatHub))
	router.GET("/chat/:course_id/history", chat.HistoryHandler(chatHub))

	httpSrv := &http.Server{
		Addr:    ":8080",
		Handler: router,
	}

	errCh := make(chan error, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := udpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("HTTP API server listening on :8080")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}

	// the UDP listener has no graceful close; exiting drops it
	log.Println("servers stopped")
}
