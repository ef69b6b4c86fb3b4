package blogger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/blogrank/blogrank/internal/csv"
	"github.com/blogrank/blogrank/internal/logging"
)

// maxImportErrors caps the error list returned to the caller. Rows
// beyond the cap still fail individually; only the reporting is
// truncated to keep the response small.
const maxImportErrors = 10

// ImportSource is the import request body: exactly one of the two
// fields should be set. A sheet URL takes precedence when both are.
type ImportSource struct {
	GoogleSheetsURL string `json:"googleSheetsUrl"`
	CSVData         string `json:"csvData"`
}

// ImportError records one failed row, keyed by the creator name from
// the source row.
type ImportError struct {
	Blogger string `json:"blogger"`
	Error   string `json:"error"`
}

// ImportResult summarizes a batch import. Total counts the candidate
// records the mapper produced; rows the mapper dropped are invisible.
type ImportResult struct {
	Imported int           `json:"imported"`
	Total    int           `json:"total"`
	Errors   []ImportError `json:"errors"`
}

// Import runs the bulk-import pipeline: admin check, source
// resolution, tokenize + map, then one sequential persistence attempt
// per candidate record. A failing row is recorded and never aborts the
// batch; a creator whose handle already exists is skipped silently.
//
// The returned error is non-nil only for request-fatal conditions
// (ErrUnauthorized, ErrForbidden, ErrInvalidSource, ErrFetch,
// ErrNoSource), in which case zero rows were processed.
func (s *Service) Import(ctx context.Context, credential string, src ImportSource) (*ImportResult, error) {
	if _, err := s.requireAdmin(ctx, credential); err != nil {
		return nil, err
	}

	text, err := s.resolveSource(ctx, src)
	if err != nil {
		return nil, err
	}

	logger := logging.WithFields(ctx, "operation", "import")

	records := MapRows(csv.Tokenize(text))
	logger.Info("parsed candidate records", "count", len(records))

	result := &ImportResult{
		Total:  len(records),
		Errors: []ImportError{},
	}

	for _, rec := range records {
		imported, err := s.importRecord(ctx, rec)
		if err != nil {
			logger.Warn("row failed", "blogger", rec.Name, "error", err)
			result.Errors = append(result.Errors, ImportError{
				Blogger: rec.Name,
				Error:   err.Error(),
			})
			continue
		}
		if imported {
			result.Imported++
		}
	}

	if len(result.Errors) > maxImportErrors {
		result.Errors = result.Errors[:maxImportErrors]
	}

	logger.Info("completed",
		"imported", result.Imported,
		"total", result.Total,
		"errors", len(result.Errors),
	)
	return result, nil
}

// resolveSource turns the request into raw CSV text, fetching the
// spreadsheet export when a URL was given.
func (s *Service) resolveSource(ctx context.Context, src ImportSource) (string, error) {
	switch {
	case src.GoogleSheetsURL != "":
		exportURL, err := SheetExportURL(src.GoogleSheetsURL)
		if err != nil {
			return "", err
		}
		logging.FromContext(ctx).Info("fetching sheet export", "url", exportURL)
		return s.fetchCSV(ctx, exportURL)
	case src.CSVData != "":
		return src.CSVData, nil
	default:
		return "", ErrNoSource
	}
}

// fetchCSV downloads the export URL, retrying transient failures with
// exponential backoff. Exhaustion or a non-retryable status surfaces
// as ErrFetch.
func (s *Service) fetchCSV(ctx context.Context, url string) (string, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = 30 * time.Second

	var body string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("status %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("status %s", resp.Status))
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = string(data)
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return body, nil
}

// importRecord persists a single candidate record. Returns false with
// a nil error when the handle already exists (skipped, not an error).
func (s *Service) importRecord(ctx context.Context, rec *Record) (bool, error) {
	handle := NormalizeHandle(rec.Handle)

	_, exists, err := s.store.FindBloggerByHandle(ctx, handle)
	if err != nil {
		return false, fmt.Errorf("handle lookup: %w", err)
	}
	if exists {
		logging.FromContext(ctx).Debug("blogger already exists, skipping", "handle", handle)
		return false, nil
	}

	if _, err := s.createBlogger(ctx, rec, handle); err != nil {
		return false, err
	}
	return true, nil
}

// createBlogger persists a creator record: a placeholder profile, the
// blogger row, and one platform row per metric with followers > 0.
func (s *Service) createBlogger(ctx context.Context, rec *Record, handle string) (string, error) {
	// Imported creators have no registered user yet. The owning
	// profile gets a fresh user id and a synthesized contact address
	// derived from it; a real address is never stored for imports.
	userID := uuid.New().String()

	profileID, err := s.store.CreateProfile(ctx, NewProfile{
		UserID:   userID,
		Email:    placeholderEmail(userID),
		FullName: rec.Name,
		Role:     RoleBlogger,
	})
	if err != nil {
		return "", fmt.Errorf("create profile: %w", err)
	}

	bloggerID, err := s.store.CreateBlogger(ctx, NewBlogger{
		ProfileID:        profileID,
		Handle:           handle,
		Bio:              rec.Bio,
		Gender:           rec.Gender,
		Topics:           rec.Topics,
		RestrictedTopics: rec.RestrictedTopics,
		PostPrice:        rec.PostPrice,
		StoryPrice:       rec.StoryPrice,
		BarterAvailable:  rec.BarterAvailable,
		MartAvailable:    rec.MartAvailable,
		WorkConditions:   rec.WorkConditions,
	})
	if err != nil {
		return "", fmt.Errorf("create blogger: %w", err)
	}

	for _, p := range AllPlatforms {
		m := rec.Metrics[p]
		if m == nil || m.Followers <= 0 {
			continue
		}
		err := s.store.CreatePlatform(ctx, NewPlatform{
			BloggerID:      bloggerID,
			Platform:       p,
			Followers:      m.Followers,
			EngagementRate: m.EngagementRate,
			PostReach:      m.PostReach,
			StoryReach:     m.StoryReach,
			IsActive:       true,
		})
		if err != nil {
			return "", fmt.Errorf("create %s platform: %w", p, err)
		}
	}

	return bloggerID, nil
}

func placeholderEmail(userID string) string {
	return fmt.Sprintf("anonymous-%s@blogger.local", userID[:8])
}
