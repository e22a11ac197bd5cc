package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadlist-cli/internal/campaign"
	"github.com/sells-group/leadlist-cli/internal/fetcher"
	"github.com/sells-group/leadlist-cli/internal/model"
	"github.com/sells-group/leadlist-cli/internal/pipeline"
	"github.com/sells-group/leadlist-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the normalization HTTP server",
	Long:  "Serves normalization over HTTP so list uploads from the campaign dashboard can be processed without a local install.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(st, fetchOptions()),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(st store.Store, opts fetcher.Options) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/v1/campaigns", func(w http.ResponseWriter, req *http.Request) {
		camps, err := st.ListCampaigns(req.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, camps)
	})

	r.Get("/v1/campaigns/{key}", func(w http.ResponseWriter, req *http.Request) {
		key, err := url.PathUnescape(chi.URLParam(req, "key"))
		if err != nil {
			writeError(w, http.StatusBadRequest, eris.Wrap(err, "bad campaign key"))
			return
		}
		camp, err := st.GetCampaign(req.Context(), campaign.DeriveKey(key))
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, camp)
	})

	r.Post("/v1/normalize", func(w http.ResponseWriter, req *http.Request) {
		handleNormalize(w, req, st, opts)
	})

	return r
}

// handleNormalize accepts a multipart upload ("file") plus "source" and
// "campaign_key" form fields, runs the pipeline, and returns the
// projected sheet as JSON. The upload is staged to disk so the fetcher
// can sniff the format from the filename.
func handleNormalize(w http.ResponseWriter, req *http.Request, st store.Store, opts fetcher.Options) {
	ctx := req.Context()

	src := model.SourceType(req.FormValue("source"))
	if !src.Valid() {
		writeError(w, http.StatusBadRequest, eris.Errorf("unknown source %q", req.FormValue("source")))
		return
	}

	key := req.FormValue("campaign_key")
	if key == "" {
		writeError(w, http.StatusBadRequest, eris.New("campaign_key is required"))
		return
	}
	camp, err := st.GetCampaign(ctx, campaign.DeriveKey(key))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, eris.Wrap(err, "file is required"))
		return
	}
	defer file.Close() //nolint:errcheck

	dir, err := os.MkdirTemp("", "leadlist-upload-*")
	if err != nil {
		writeError(w, http.StatusInternalServerError, eris.Wrap(err, "stage upload"))
		return
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	staged := filepath.Join(dir, filepath.Base(header.Filename))
	out, err := os.Create(staged)
	if err != nil {
		writeError(w, http.StatusInternalServerError, eris.Wrap(err, "stage upload"))
		return
	}
	if _, err := out.ReadFrom(file); err != nil {
		_ = out.Close()
		writeError(w, http.StatusInternalServerError, eris.Wrap(err, "stage upload"))
		return
	}
	if err := out.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, eris.Wrap(err, "stage upload"))
		return
	}

	sheet, err := fetcher.LoadRows(ctx, staged, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := pipeline.Normalize(sheet, src, *camp)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	run, err := st.RecordImportRun(ctx, store.ImportRun{
		StreetAddressKey: camp.StreetAddressKey,
		Source:           string(src),
		InputFile:        header.Filename,
		TotalRows:        result.Stats.TotalRows,
		SkippedRows:      result.Stats.SkippedRows,
		Contacts:         result.Stats.Contacts,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if _, err := st.ArchiveContacts(ctx, run.ID, result.Rows); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if req.FormValue("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("X-Run-Id", run.ID)
		if err := pipeline.WriteCSV(w, result); err != nil {
			zap.L().Error("write csv response", zap.Error(err))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run_id": run.ID,
		"header": result.Header,
		"rows":   result.Rows,
		"stats":  result.Stats,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= 500 {
		zap.L().Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
