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

	"github.com/gorilla/mux"
	"github.com/siknue/gpg-back/internal/auth"
	"github.com/siknue/gpg-back/internal/calc/autodesign"
	"github.com/siknue/gpg-back/internal/calc/batch"
	"github.com/siknue/gpg-back/internal/calc/check"
	"github.com/siknue/gpg-back/internal/calc/importer"
	"github.com/siknue/gpg-back/internal/calc/report"
	"github.com/siknue/gpg-back/internal/calc/stress"
	"github.com/siknue/gpg-back/internal/config"
	"github.com/siknue/gpg-back/internal/history"
	"github.com/siknue/gpg-back/internal/repo"
)

var wg sync.WaitGroup

func CORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "X-Calculation-Id, X-Report-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func HandleList(router *mux.Router, cfg config.Config, store repo.Repository) {
	authEnv := &auth.Env{JWTKey: cfg.TokenKey, Repo: store, SecureCookie: cfg.TLS()}
	limiter := auth.NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)

	calc := stress.Calculator{PartialIndexing: cfg.Partial}
	checker := check.Checker{Calc: calc}

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		stress.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	stressH := &stress.Handler{Calc: calc, Store: &history.Recorder{Repo: store}}
	checkH := &check.Handler{Checker: checker}
	designH := &autodesign.Handler{Checker: checker}
	batchH := &batch.Handler{Calc: calc}
	importH := &importer.Handler{Calc: calc}
	reportH := &report.Handler{Checker: checker}
	historyH := &history.Handler{Repo: store}

	glass := secureApi.PathPrefix("/glass").Subrouter()
	glass.HandleFunc("/"+string(stress.CaseCircular), stressH.Circular).Methods("POST")
	glass.HandleFunc("/"+string(stress.CaseTwoSide), stressH.TwoSide).Methods("POST")
	glass.HandleFunc("/"+string(stress.CaseThreeSide), stressH.ThreeSide).Methods("POST")
	glass.HandleFunc("/"+string(stress.CaseFourSide), stressH.FourSide).Methods("POST")
	glass.HandleFunc("/"+string(stress.CaseFourPartial), stressH.FourSidePartial).Methods("POST")
	glass.HandleFunc("/check", checkH.Check).Methods("POST")
	glass.HandleFunc("/allowable", checkH.Allowable).Methods("GET")
	glass.HandleFunc("/autodesign", designH.Design).Methods("POST")
	glass.HandleFunc("/batch", batchH.Evaluate).Methods("POST")
	glass.HandleFunc("/import", importH.Import).Methods("POST")
	glass.HandleFunc("/report", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/calculations", historyH.List).Methods("GET")
	secureApi.HandleFunc("/calculations/{id}", historyH.Get).Methods("GET")
}

// openRepository uses Postgres when DATABASE_URL is set and in-memory
// storage otherwise.
func openRepository(ctx context.Context, cfg config.Config) (repo.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, keeping users and history in memory")
		return repo.NewMemory(), func() {}, nil
	}
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo.NewPostgres(db), func() { db.Close() }, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	store, closeStore, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer closeStore()

	router := mux.NewRouter()
	HandleList(router, cfg, store)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(cfg.CORSOrigin, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting server on %s (tls=%t, partial indexing=%s)", cfg.Addr, cfg.TLS(), cfg.Partial)
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
