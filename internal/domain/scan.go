package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	m "entfix.dev/pkg/entfix/internal/model"
)

// Scan reports the migration status of every test file under root, the
// exclusion list included, so hand-migrated files show up too. Files are
// read and fingerprinted concurrently; this is the only concurrent path in
// entfix, the migration pipeline itself stays strictly sequential.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	files, err := w.allTestFiles(args.Root)
	if err != nil {
		slog.Error("failed to enumerate test files", "root", args.Root, "error", err)
		return err
	}

	workers := args.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]m.ScanResult, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, path := range files {
		i, path := i, path
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			raw, err := w.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			hash, err := w.HashFile(path)
			if err != nil {
				return fmt.Errorf("hash %s: %w", path, err)
			}

			results[i] = m.ScanResult{
				Path:     path,
				Hash:     hash,
				Migrated: strings.Contains(string(raw), MarkerToken),
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	w.DisplayScan(ctx, results)

	return nil
}

// allTestFiles is like candidates but without the exclusion filter.
func (w *workflow) allTestFiles(root m.Path) ([]m.Path, error) {
	if _, err := w.FileInfo(root); err != nil {
		return nil, fmt.Errorf("tests directory: %w", err)
	}

	var files []m.Path

	err := w.Walk(root, false, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(path, TestFileSuffix) {
			return nil
		}

		files = append(files, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan tests directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}
