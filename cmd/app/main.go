package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/configs"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/changefeed"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/chat"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/follow"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/kafka"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/media"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/migrate"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/post"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/profile"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/ratelimit"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/db"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/redisx"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("cuet-connect"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	store := db.Open(cfg)
	if cfg.AutoMigrate {
		if err := migrate.AutoMigrateAll(store); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	rdb := redisx.Open(cfg)
	feed := changefeed.NewRedis(rdb, logger)

	blobs, err := media.New(cfg)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		log.Fatalf("blob store ensure bucket: %v", err)
	}

	notify := kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer notify.Close()

	authSvc := auth.NewService(auth.NewRepository(store), cfg.JWTSecret)
	chatSvc := chat.NewService(chat.NewRepository(store, feed), feed, notify, logger)
	postSvc := post.NewService(post.NewRepository(store), blobs, rdb)
	followSvc := follow.NewService(follow.NewRepository(store))
	profileSvc := profile.NewService(profile.NewRepository(store), blobs)

	ah := auth.NewHandler(authSvc)
	ch := chat.NewHandler(chatSvc)
	cws := chat.NewSocketHandler(chatSvc, logger)
	ph := post.NewHandler(postSvc)
	fh := follow.NewHandler(followSvc)
	prh := profile.NewHandler(profileSvc)

	limiter := ratelimit.New(rdb)
	byUser := func(r *http.Request) (string, error) {
		sess, err := auth.SessionFromCtx(r)
		if err != nil {
			return "", err
		}
		return sess.UserID, nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("POST /auth/register", httpx.Wrap(ah.Register))
	mux.Handle("POST /auth/login", httpx.Wrap(ah.Login))

	protect := func(pattern string, h http.Handler) {
		mux.Handle(pattern, auth.Middleware(cfg.JWTSecret, h))
	}

	// Profiles & search
	mux.Handle("GET /profiles/{user_id}", httpx.Wrap(prh.Get))
	protect("GET /profiles/me", httpx.Wrap(prh.Me))
	protect("PUT /profiles/me", httpx.Wrap(prh.Update))
	protect("POST /profiles/me/avatar", httpx.Wrap(prh.UploadAvatar))
	protect("GET /users/search", httpx.Wrap(prh.Search))

	// Follow graph
	protect("POST /follows/{user_id}", httpx.Wrap(fh.Follow))
	protect("DELETE /follows/{user_id}", httpx.Wrap(fh.Unfollow))
	protect("GET /follows/{user_id}/status", httpx.Wrap(fh.Status))
	protect("GET /follows", httpx.Wrap(fh.Following))

	// Newsfeed
	mux.Handle("GET /posts", httpx.Wrap(ph.Feed))
	protect("POST /posts", httpx.Wrap(ph.Create))
	protect("POST /posts/{post_id}/like",
		limiter.LimitHTTP(60, time.Minute, byUser, httpx.Wrap(ph.ToggleLike)))
	mux.Handle("GET /posts/{post_id}/comments", httpx.Wrap(ph.Comments))
	protect("POST /posts/{post_id}/comments", httpx.Wrap(ph.AddComment))
	protect("PUT /comments/{comment_id}", httpx.Wrap(ph.UpdateComment))
	protect("DELETE /comments/{comment_id}", httpx.Wrap(ph.DeleteComment))

	// Messaging
	protect("GET /chat/conversations", httpx.Wrap(ch.Conversations))
	protect("GET /chat/{partner_id}/messages", httpx.Wrap(ch.History))
	protect("POST /chat/{partner_id}/messages",
		limiter.LimitHTTP(30, time.Minute, byUser, httpx.Wrap(ch.Send)))
	protect("GET /chat/{partner_id}/ws", cws)

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("cuet-connect listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
