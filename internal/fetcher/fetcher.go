// Package fetcher loads contact-list sheets from local files, HTTP(S)
// and FTP sources, in CSV, XLSX, or ZIP form.
package fetcher

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Options configures how a source is fetched and parsed.
type Options struct {
	CSV  CSVOptions
	XLSX XLSXOptions
	HTTP HTTPOptions
	FTP  FTPOptions
}

// LoadRows fetches source and parses it into rows. Source may be a local
// path or an http(s)/ftp URL; the format is chosen by file extension
// (.csv, .xlsx, .zip). Remote sources are staged in a temp directory
// before parsing, since XLSX and ZIP both need random access.
func LoadRows(ctx context.Context, source string, opts Options) ([][]string, error) {
	path := source
	if scheme := urlScheme(source); scheme != "" {
		staged, cleanup, err := stage(ctx, source, scheme, opts)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		path = staged
	}

	return parseFile(path, opts)
}

// parseFile dispatches on extension. ZIP archives are unpacked and the
// first sheet member inside is parsed.
func parseFile(path string, opts Options) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(f, opts.CSV)
	case ".xlsx":
		return ReadXLSX(path, opts.XLSX)
	case ".zip":
		dir, err := os.MkdirTemp("", "leadlist-zip-*")
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: create temp dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck

		inner, err := ExtractSheet(path, dir)
		if err != nil {
			return nil, err
		}
		return parseFile(inner, opts)
	default:
		return nil, eris.Errorf("fetcher: unsupported file type %q", filepath.Ext(path))
	}
}

// stage downloads a remote source to a temp file named after the URL
// path, so extension dispatch still works. The returned cleanup removes
// the staging directory.
func stage(ctx context.Context, source, scheme string, opts Options) (string, func(), error) {
	dir, err := os.MkdirTemp("", "leadlist-fetch-*")
	if err != nil {
		return "", nil, eris.Wrap(err, "fetcher: create temp dir")
	}
	cleanup := func() { os.RemoveAll(dir) } //nolint:errcheck

	name := filepath.Base(remotePath(source))
	if name == "." || name == "/" || name == "" {
		name = "download.csv"
	}
	dest := filepath.Join(dir, name)

	var n int64
	switch scheme {
	case "http", "https":
		n, err = NewHTTPFetcher(opts.HTTP).DownloadToFile(ctx, source, dest)
	case "ftp":
		n, err = NewFTPFetcher(opts.FTP).DownloadToFile(ctx, source, dest)
	default:
		err = eris.Errorf("fetcher: unsupported scheme %q", scheme)
	}
	if err != nil {
		cleanup()
		return "", nil, err
	}

	zap.L().Info("fetcher: staged remote source",
		zap.String("source", source),
		zap.Int64("bytes", n),
	)
	return dest, cleanup, nil
}

func urlScheme(source string) string {
	for _, s := range []string{"http://", "https://", "ftp://"} {
		if strings.HasPrefix(source, s) {
			return strings.TrimSuffix(s, "://")
		}
	}
	return ""
}

func remotePath(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return u.Path
}
