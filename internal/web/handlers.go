package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/blogrank/blogrank/internal/blogger"
	"github.com/blogrank/blogrank/internal/logging"
	"github.com/blogrank/blogrank/internal/web/middleware"
)

// handleHealth reports service and database liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pinger.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error("health check failed", "error", err)
		s.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleImport runs the bulk CSV import. The credential is forwarded
// to the service, which distinguishes missing/invalid tokens from
// non-admin accounts.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxBodySize)

	var src blogger.ImportSource
	if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
		s.badRequest(w, r, "invalid request body")
		return
	}

	result, err := s.service.Import(r.Context(), middleware.BearerToken(r), src)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, result)
}

// handleDirectory lists creators matching the query-string criteria.
func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		s.badRequest(w, r, err.Error())
		return
	}

	listings, err := s.service.Directory(r.Context(), criteria)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, listings)
}

// handleBloggerByHandle returns the full record for one creator. The
// handle in the path may omit the leading @.
func (s *Server) handleBloggerByHandle(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	detail, err := s.service.ByHandle(r.Context(), handle)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, detail)
}

// createBloggerRequest is the admin hand-entry form body.
type createBloggerRequest struct {
	Name             string                            `json:"name"`
	Handle           string                            `json:"handle"`
	Bio              string                            `json:"bio"`
	Gender           string                            `json:"gender"`
	Topics           []string                          `json:"topics"`
	RestrictedTopics []string                          `json:"restricted_topics"`
	PostPrice        *float64                          `json:"post_price"`
	StoryPrice       *float64                          `json:"story_price"`
	Barter           bool                              `json:"barter_available"`
	Mart             bool                              `json:"mart_available"`
	WorkConditions   string                            `json:"work_conditions"`
	Platforms        map[string]blogger.PlatformMetric `json:"platforms"`
}

// handleCreateBlogger hand-enters a single creator record.
func (s *Server) handleCreateBlogger(w http.ResponseWriter, r *http.Request) {
	var req createBloggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, r, "invalid request body")
		return
	}

	rec := &blogger.Record{
		Name:             req.Name,
		Handle:           req.Handle,
		Bio:              req.Bio,
		Gender:           req.Gender,
		Topics:           req.Topics,
		RestrictedTopics: req.RestrictedTopics,
		PostPrice:        req.PostPrice,
		StoryPrice:       req.StoryPrice,
		BarterAvailable:  req.Barter,
		MartAvailable:    req.Mart,
		WorkConditions:   req.WorkConditions,
	}
	for name, metric := range req.Platforms {
		platform, ok := parsePlatform(name)
		if !ok {
			s.badRequest(w, r, "unknown platform: "+name)
			return
		}
		m := metric
		if rec.Metrics == nil {
			rec.Metrics = make(map[blogger.Platform]*blogger.PlatformMetric)
		}
		rec.Metrics[platform] = &m
	}

	detail, err := s.service.CreateOne(r.Context(), middleware.BearerToken(r), rec)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, detail)
}

// handleOwnProfile returns the authenticated creator's own profile.
func (s *Server) handleOwnProfile(w http.ResponseWriter, r *http.Request) {
	own, err := s.service.OwnProfile(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, own)
}

// profileUpdateRequest is the profile-edit form body. Absent fields
// leave the stored values unchanged.
type profileUpdateRequest struct {
	FullName         *string                           `json:"full_name"`
	AvatarURL        *string                           `json:"avatar_url"`
	Bio              *string                           `json:"bio"`
	Gender           *string                           `json:"gender"`
	Topics           []string                          `json:"topics"`
	RestrictedTopics []string                          `json:"restricted_topics"`
	PostPrice        *float64                          `json:"post_price"`
	StoryPrice       *float64                          `json:"story_price"`
	Barter           *bool                             `json:"barter_available"`
	Mart             *bool                             `json:"mart_available"`
	WorkConditions   *string                           `json:"work_conditions"`
	Platforms        map[string]blogger.PlatformMetric `json:"platforms"`
}

// handleUpdateProfile applies partial updates to the authenticated
// creator's profile, blogger record, and platform metrics.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, r, "invalid request body")
		return
	}

	update := blogger.ProfileUpdate{
		Profile: blogger.ProfileFields{
			FullName:  req.FullName,
			AvatarURL: req.AvatarURL,
		},
		Blogger: blogger.BloggerFields{
			Bio:              req.Bio,
			Gender:           req.Gender,
			Topics:           req.Topics,
			RestrictedTopics: req.RestrictedTopics,
			PostPrice:        req.PostPrice,
			StoryPrice:       req.StoryPrice,
			Barter:           req.Barter,
			Mart:             req.Mart,
			WorkConditions:   req.WorkConditions,
		},
	}
	for name, metric := range req.Platforms {
		platform, ok := parsePlatform(name)
		if !ok {
			s.badRequest(w, r, "unknown platform: "+name)
			return
		}
		if update.Platforms == nil {
			update.Platforms = make(map[blogger.Platform]blogger.PlatformMetric)
		}
		update.Platforms[platform] = metric
	}

	own, err := s.service.UpdateOwnProfile(r.Context(), middleware.UserID(r.Context()), update)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, own)
}

// parsePlatform validates a platform name from a request body.
func parsePlatform(name string) (blogger.Platform, bool) {
	p := blogger.Platform(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range blogger.AllPlatforms {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// criteriaFromQuery builds filter criteria from query-string
// parameters. Numeric bounds are optional; follower bounds are in
// thousands, matching the sidebar inputs.
func criteriaFromQuery(r *http.Request) (blogger.Criteria, error) {
	q := r.URL.Query()

	c := blogger.Criteria{
		Search: strings.TrimSpace(q.Get("search")),
		Gender: strings.TrimSpace(q.Get("gender")),
		Barter: q.Get("barter") == "true",
		Mart:   q.Get("mart") == "true",
	}

	if topics := strings.TrimSpace(q.Get("topics")); topics != "" {
		for _, t := range strings.Split(topics, ",") {
			if t = strings.TrimSpace(t); t != "" {
				c.Topics = append(c.Topics, t)
			}
		}
	}

	bounds := []struct {
		param string
		dst   **float64
	}{
		{"min_followers", &c.MinFollowers},
		{"max_followers", &c.MaxFollowers},
		{"min_post_price", &c.MinPostPrice},
		{"max_post_price", &c.MaxPostPrice},
		{"min_story_price", &c.MinStoryPrice},
		{"max_story_price", &c.MaxStoryPrice},
	}
	for _, b := range bounds {
		raw := strings.TrimSpace(q.Get(b.param))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return blogger.Criteria{}, &queryError{param: b.param}
		}
		*b.dst = &v
	}

	return c, nil
}

type queryError struct {
	param string
}

func (e *queryError) Error() string {
	return "invalid numeric value for " + e.param
}
