package router

import (
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/adapters/auth/jwtsession"
	mem "pet-adoption/internal/adapters/storage/memory"
	mdb "pet-adoption/internal/adapters/storage/mongodb"
	"pet-adoption/internal/domain/accounts"
	"pet-adoption/internal/domain/comments"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/posts"
	"pet-adoption/internal/domain/ratings"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/credentials"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/uploads"
	"pet-adoption/internal/ports/session"

	_ "pet-adoption/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
)

type Options struct {
	// Opcional: si viene, usa Mongo. Si no, in-memory.
	Mongo *mongo.Database

	// Opcional: redis o postgres. Si no, in-memory.
	Sessions session.Store

	// Vacío => se genera uno aleatorio (las sesiones mueren con el proceso).
	SessionSecret []byte
	SessionTTL    time.Duration

	// Vacío => no se aceptan archivos; solo refs de imagen en JSON.
	UploadDir string

	LoginRatePerMinute int

	Logger logger.Logger
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = mem.NewSessionRepo()
	}

	secret := opts.SessionSecret
	if len(secret) == 0 {
		tok, err := credentials.GenerateToken()
		if err != nil {
			return nil, err
		}
		secret = []byte(tok)
		log.Warn("session secret not configured; generated a random one", nil)
	}

	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	manager, err := jwtsession.NewManager(sessions, secret, ttl)
	if err != nil {
		return nil, err
	}

	var images *uploads.Store
	if dir := strings.TrimSpace(opts.UploadDir); dir != "" {
		images, err = uploads.NewStore(dir)
		if err != nil {
			return nil, err
		}
	}

	var (
		accountRepo accounts.Repository
		petRepo     pets.Repository
		postRepo    posts.Repository
		commentRepo comments.Repository
		ratingRepo  ratings.Repository
	)

	if opts.Mongo != nil {
		accountRepo = mdb.NewAccountsRepo(opts.Mongo)
		petRepo = mdb.NewPetsRepo(opts.Mongo)
		postRepo = mdb.NewPostsRepo(opts.Mongo)
		commentRepo = mdb.NewCommentsRepo(opts.Mongo)
		ratingRepo = mdb.NewRatingsRepo(opts.Mongo)
	} else {
		accountRepo = mem.NewAccountRepo()
		petRepo = mem.NewPetRepo()
		postRepo = mem.NewPostRepo()
		commentRepo = mem.NewCommentRepo()
		ratingRepo = mem.NewRatingRepo()
	}

	// Services por módulo
	accountsSvc := accounts.NewService(accountRepo)
	ratingsSvc := ratings.NewService(ratingRepo)
	petsSvc := pets.NewService(petRepo, accountsSvc)
	postsSvc := posts.NewService(postRepo, ratingsSvc)
	commentsSvc := comments.NewService(commentRepo, postsSvc, ratingsSvc)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Use(middleware.AuthContext(manager))
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if images != nil {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(images.Dir()))))
	}

	rate := opts.LoginRatePerMinute
	if rate <= 0 {
		rate = 10
	}
	loginLimiter := middleware.NewRateLimiter(rate, log)

	// Rutas por módulo
	accounts.RegisterRoutes(r, accountsSvc, manager, loginLimiter.Handler, log)
	pets.RegisterRoutes(r, petsSvc, images, log)
	posts.RegisterRoutes(r, postsSvc, commentsSvc, images, log)
	comments.RegisterRoutes(r, commentsSvc, log)

	return r, nil
}
