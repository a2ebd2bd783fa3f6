package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudflex/assistant/internal/config"
	"github.com/cloudflex/assistant/internal/db"
	"github.com/cloudflex/assistant/internal/server"
	"github.com/cloudflex/assistant/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	serveHost       string
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the chat, resume, interview, knowledge and lead endpoints.

Flags override values from --config. DATABASE_URL enables lead storage; ADMIN_EMAIL,
ADMIN_PASSWORD_HASH and JWT_SECRET enable the admin endpoints.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to bind (default: all)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, fmt.Sprintf("Port to listen on (default %d)", config.DefaultPort))
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serveConfig()
	if err != nil {
		return err
	}

	tables, err := loadTables(cfg.KnowledgeFile)
	if err != nil {
		return err
	}

	chatCfg, err := config.NewChatConfig()
	if err != nil {
		return fmt.Errorf("invalid chat config: %w", err)
	}

	srvCfg := server.Config{
		Addr:            cfg.Addr(),
		AllowedOrigins:  cfg.AllowedOrigins,
		ShutdownTimeout: time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second,
		Tables:          tables,
		Chat:            *chatCfg,
		RateLimit:       ratelimit.LoadConfig(),
	}

	if cfg.DatabaseURL != "" {
		store, err := db.Open(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open lead store: %w", err)
		}
		if err := store.EnsureSchema(cmd.Context()); err != nil {
			store.Close()
			return fmt.Errorf("failed to prepare lead store: %w", err)
		}
		srvCfg.Store = store
	} else {
		log.Printf("[leads] DATABASE_URL not set; lead endpoints disabled")
	}

	if os.Getenv("ADMIN_EMAIL") != "" {
		if srvCfg.Admin, err = config.NewAdminConfig(); err != nil {
			return fmt.Errorf("invalid admin config: %w", err)
		}
		if srvCfg.Passwords, err = config.NewPasswordConfig(); err != nil {
			return fmt.Errorf("invalid password config: %w", err)
		}
	} else {
		log.Printf("[admin] ADMIN_EMAIL not set; admin endpoints disabled")
	}

	if cfg.Verbose {
		log.Printf("[serve] addr=%s origins=%v knowledge=%q store=%v admin=%v",
			srvCfg.Addr, cfg.AllowedOrigins, cfg.KnowledgeFile, srvCfg.Store != nil, srvCfg.Admin != nil)
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		if srvCfg.Store != nil {
			srvCfg.Store.Close()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run(cmd.Context())
}

// serveConfig merges flags and environment over the optional config file.
func serveConfig() (config.Config, error) {
	flags := config.Config{
		Host:           serveHost,
		Port:           servePort,
		KnowledgeFile:  knowledgeFile,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		Verbose:        verbose,
	}

	var defaults config.Config
	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		defaults = *fileCfg
		flags.Verbose = flags.Verbose || fileCfg.Verbose
	}

	cfg := flags.MergeWithDefaults(defaults)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
