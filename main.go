package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "travelportal/internal/config"
	router "travelportal/internal/http"
	h "travelportal/internal/http/handlers"
	"travelportal/internal/repositories"
	"travelportal/internal/services"
	"travelportal/internal/storage"
	"travelportal/internal/utils"
	"travelportal/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	root := &cobra.Command{
		Use:   "travelportal",
		Short: "Backend portal umrah: katalog, wizard booking, upload",
	}
	root.AddCommand(serveCmd(), migrateCmd())
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func setup() intconfig.Env {
	env := intconfig.LoadEnv()
	utils.InitLogger(env.IsProduction(), env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	return env
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Buat tabel dan isi data awal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := setup()
			db := intconfig.ConnectDB(env.DatabaseDSN)
			defer intconfig.CloseDB()
			if err := repositories.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			utils.LogEvent("", "main", "migrate", "migrasi selesai")
			return nil
		},
	}
}

func newUploader(env intconfig.Env) (storage.Uploader, error) {
	if env.CloudinaryURL != "" {
		return storage.NewCloudinary(env.CloudinaryURL)
	}
	if env.UploadEndpoint != "" {
		return storage.HTTPUploader{Endpoint: env.UploadEndpoint, Client: &http.Client{Timeout: 30 * time.Second}}, nil
	}
	return nil, errors.New("CLOUDINARY_URL atau UPLOAD_ENDPOINT wajib diisi")
}

func buildHandler(ctx context.Context, env intconfig.Env) (*h.Handler, error) {
	db := intconfig.ConnectDB(env.DatabaseDSN)
	rdb := intconfig.ConnectRedis(env)

	up, err := newUploader(env)
	if err != nil {
		return nil, err
	}

	users := repositories.UserRepository{DB: db}
	catalogRepo := repositories.CatalogRepository{DB: db}
	bookings := repositories.BookingRepository{DB: db}
	catalog := services.CatalogService{Store: catalogRepo, Writer: catalogRepo}

	opts, err := catalog.WizardOptions(ctx)
	if err != nil {
		utils.LogError("", "main", "wizard_options", err)
		opts = wizard.DefaultOptions()
	}

	return &h.Handler{
		DB: db,
		Auth: services.AuthService{
			Users:  users,
			Tokens: repositories.TokenRepository{Client: rdb},
			Secret: []byte(env.JWTSecret),
			TTL:    env.TokenTTL,
		},
		Catalog: catalog,
		Drafts: services.DraftService{
			Store:    repositories.DraftRepository{Client: rdb, TTL: env.DraftTTL},
			Registry: wizard.NewRegistry(opts),
			Submitter: services.Submitter{
				Actions: services.RepositoryActions{Bookings: bookings, Catalog: catalogRepo},
			},
		},
		Avatars:  services.AvatarService{Uploader: up, Profiles: users, Folder: env.AvatarFolder},
		Docs:     services.DocsService{Bookings: bookings},
		Payments: services.PaymentService{Payments: repositories.PaymentRepository{DB: db}, Bookings: bookings},
		Uploader: up,
		Folders:  storage.DefaultFolders(env.AvatarFolder),
	}, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Jalankan HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := setup()
			defer utils.Logger().Sync()
			if env.JWTSecret == "change-me" && env.IsProduction() {
				return fmt.Errorf("JWT_SECRET belum diganti")
			}

			hd, err := buildHandler(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer intconfig.CloseDB()
			defer intconfig.CloseRedis()

			srv := &http.Server{
				Addr:              env.AppAddr,
				Handler:           router.NewRouter(env, hd),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       20 * time.Second,
				WriteTimeout:      20 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				utils.Logger().Info("Server berjalan", zap.String("addr", env.AppAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			select {
			case <-quit:
			case err := <-errCh:
				return fmt.Errorf("gagal menjalankan server: %w", err)
			}

			utils.Logger().Info("Mematikan server...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server gagal: %w", err)
			}
			utils.Logger().Info("Server berhenti dengan aman.")
			return nil
		},
	}
}
