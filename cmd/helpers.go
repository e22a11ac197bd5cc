package main

import (
	"context"
	"os"
	"time"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadlist-cli/internal/fetcher"
	"github.com/sells-group/leadlist-cli/internal/store"
	notionpkg "github.com/sells-group/leadlist-cli/pkg/notion"
	sfpkg "github.com/sells-group/leadlist-cli/pkg/salesforce"
)

func initStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, cfg.Store.Pool)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func initSalesforce() (sfpkg.Client, error) {
	if err := cfg.Validate("push-salesforce"); err != nil {
		return nil, err
	}

	pemData, err := os.ReadFile(cfg.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Salesforce.LoginURL,
		Username:       cfg.Salesforce.Username,
		ConsumerKey:    cfg.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(sf), nil
}

func initNotion() (notionpkg.Client, error) {
	if err := cfg.Validate("push-notion"); err != nil {
		return nil, err
	}
	return notionpkg.NewClient(cfg.Notion.Token), nil
}

func fetchOptions() fetcher.Options {
	return fetcher.Options{
		CSV: fetcher.CSVOptions{
			LazyQuotes: true,
			TrimSpace:  false,
			Encoding:   cfg.Fetch.Encoding,
		},
		HTTP: fetcher.HTTPOptions{
			UserAgent:      cfg.Fetch.UserAgent,
			Timeout:        time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries:     cfg.Fetch.MaxRetries,
			RequestsPerSec: cfg.Fetch.RequestsPerSec,
		},
		FTP: fetcher.FTPOptions{
			Timeout: time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		},
	}
}
