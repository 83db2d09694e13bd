package colleges

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/auth"
	"github.com/HerbHall/collegefinder/internal/server"
	"github.com/HerbHall/collegefinder/internal/services"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// handleList returns the catalog, optionally filtered.
//
//	@Summary		List colleges
//	@Description	List all colleges with courses. Query filters narrow the result.
//	@Tags			college
//	@Produce		json
//	@Param			q			query		string	false	"Substring of name or location"
//	@Param			location	query		string	false	"Substring of location"
//	@Param			budget		query		string	false	"Budget bracket label"
//	@Param			budget_min	query		int		false	"Custom budget lower bound"
//	@Param			budget_max	query		int		false	"Custom budget upper bound"
//	@Param			stream		query		[]string	false	"Stream (repeatable)"
//	@Param			category	query		[]string	false	"Course category (repeatable)"
//	@Success		200			{array}		college.College
//	@Failure		400			{object}	server.Problem
//	@Failure		404			{object}	server.Problem
//	@Router			/college [get]
func (m *Module) handleList(w http.ResponseWriter, r *http.Request) {
	state, err := m.filterState(r.Context(), r.URL.Query())
	if err != nil {
		if errors.Is(err, errBadFilter) {
			server.BadRequest(w, err.Error(), r.URL.Path)
			return
		}
		m.logger.Error("build filter", zap.Error(err))
		server.InternalError(w, "failed to load budget brackets", r.URL.Path)
		return
	}

	list, err := m.colleges.List(r.Context())
	if err != nil {
		m.logger.Error("list colleges", zap.Error(err))
		server.InternalError(w, "failed to list colleges", r.URL.Path)
		return
	}
	if len(list) == 0 {
		server.NotFound(w, "No colleges found.", r.URL.Path)
		return
	}

	if state.Empty() {
		catalogListTotal.WithLabelValues("false").Inc()
		server.WriteJSON(w, http.StatusOK, m.decorate(list))
		return
	}

	out := applyFilter(list, state)
	catalogListTotal.WithLabelValues("true").Inc()
	catalogFilterResults.Observe(float64(len(out)))
	m.logger.Debug("filtered catalog",
		zap.Int("catalog", len(list)),
		zap.Int("matched", len(out)),
	)
	server.WriteJSON(w, http.StatusOK, m.decorate(out))
}

// handleGet returns one college.
//
//	@Summary		Get college
//	@Tags			college
//	@Produce		json
//	@Param			id	path		int	true	"College ID"
//	@Success		200	{object}	college.College
//	@Failure		404	{object}	server.Problem
//	@Router			/college/{id} [get]
func (m *Module) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		server.BadRequest(w, "invalid college id", r.URL.Path)
		return
	}
	c, err := m.colleges.Get(r.Context(), id)
	if err != nil {
		m.writeRepoError(w, r, err, "College not found")
		return
	}
	server.WriteJSON(w, http.StatusOK, m.decorate([]college.College{*c})[0])
}

// handleByName returns the colleges with an exact name.
//
//	@Summary		Find colleges by name
//	@Tags			college
//	@Produce		json
//	@Param			name	path		string	true	"College name"
//	@Success		200		{array}		college.College
//	@Failure		404		{object}	server.Problem
//	@Router			/college/name/{name} [get]
func (m *Module) handleByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	list, err := m.colleges.ListByName(r.Context(), name)
	if err != nil {
		m.logger.Error("list colleges by name", zap.Error(err))
		server.InternalError(w, "failed to look up colleges", r.URL.Path)
		return
	}
	if len(list) == 0 {
		server.NotFound(w, "No colleges found with this name", r.URL.Path)
		return
	}
	server.WriteJSON(w, http.StatusOK, m.decorate(list))
}

// handleImage streams a college's stored image.
//
//	@Summary		College image
//	@Tags			college
//	@Produce		image/jpeg
//	@Param			id	path	int	true	"College ID"
//	@Success		200
//	@Failure		404	{object}	server.Problem
//	@Router			/college/image/{id} [get]
func (m *Module) handleImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		server.BadRequest(w, "invalid college id", r.URL.Path)
		return
	}
	img, err := m.colleges.Image(r.Context(), id)
	if err != nil {
		m.writeRepoError(w, r, err, "Image not found")
		return
	}
	w.Header().Set("Content-Type", img.MIME)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

// handleCreate adds a college from a multipart form. Admin only.
//
//	@Summary		Create college
//	@Description	Fields college_name (required), address, about, stream, price_range,
//	@Description	courses (JSON array), and an image as college_image_file or college_image_url.
//	@Tags			college
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	college.College
//	@Failure		400	{object}	server.Problem
//	@Failure		403	{object}	server.Problem
//	@Router			/college [post]
func (m *Module) handleCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.RequireAdmin(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, m.maxUpload+(1<<20))
	if err := r.ParseMultipartForm(m.maxUpload); err != nil {
		server.BadRequest(w, "invalid multipart form: "+err.Error(), r.URL.Path)
		return
	}

	c := college.College{
		Name:       strings.TrimSpace(r.FormValue("college_name")),
		Address:    r.FormValue("address"),
		About:      r.FormValue("about"),
		Stream:     r.FormValue("stream"),
		PriceRange: r.FormValue("price_range"),
	}
	if c.Name == "" {
		server.BadRequest(w, "college_name is required", r.URL.Path)
		return
	}

	courses, err := parseCourses(r.FormValue("courses"))
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	c.Courses = courses

	img, err := m.formImage(r)
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	if err := m.colleges.Create(r.Context(), &c, img); err != nil {
		m.logger.Error("create college", zap.Error(err))
		server.InternalError(w, "failed to create college", r.URL.Path)
		return
	}

	m.logger.Info("college created",
		zap.Int64("college_id", c.ID),
		zap.String("name", c.Name),
		zap.Int("courses", len(c.Courses)),
	)
	server.WriteJSON(w, http.StatusCreated, m.decorate([]college.College{c})[0])
}

// parseCourses decodes and validates the courses form field.
func parseCourses(raw string) ([]college.Course, error) {
	if strings.TrimSpace(raw) == "" {
		return []college.Course{}, nil
	}
	var courses []college.Course
	if err := json.Unmarshal([]byte(raw), &courses); err != nil {
		return nil, errors.New("invalid courses JSON format")
	}
	for i := range courses {
		courses[i].ID = 0
		if err := courses[i].Validate(); err != nil {
			return nil, err
		}
	}
	return courses, nil
}

// formImage returns the uploaded file, or the image fetched from the given
// URL, or nil when neither was supplied.
func (m *Module) formImage(r *http.Request) (*services.Image, error) {
	file, header, err := r.FormFile("college_image_file")
	switch {
	case err == nil:
		defer file.Close()
		data, err := readLimited(file, m.maxUpload)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		return imageFrom(data, header.Header.Get("Content-Type"))
	case !errors.Is(err, http.ErrMissingFile):
		return nil, fmt.Errorf("read image: %w", err)
	}

	url := strings.TrimSpace(r.FormValue("college_image_url"))
	if url == "" {
		return nil, nil
	}
	img, err := m.fetchImage(r.Context(), url)
	if err != nil {
		m.logger.Warn("image fetch failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	return img, nil
}

// handleDelete removes a college and everything referencing it. Admin only.
//
//	@Summary		Delete college
//	@Tags			college
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"College ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	server.Problem
//	@Router			/college/{id} [delete]
func (m *Module) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.RequireAdmin(w, r); !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		server.BadRequest(w, "invalid college id", r.URL.Path)
		return
	}
	c, err := m.colleges.Get(r.Context(), id)
	if err != nil {
		m.writeRepoError(w, r, err, "College not found")
		return
	}
	if err := m.colleges.Delete(r.Context(), id); err != nil {
		m.writeRepoError(w, r, err, "College not found")
		return
	}

	m.logger.Info("college deleted", zap.Int64("college_id", id))
	server.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("College '%s' and all its related data deleted successfully.", c.Name),
	})
}

// writeRepoError maps repository errors to problem responses.
func (m *Module) writeRepoError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		server.NotFound(w, notFound, r.URL.Path)
	case errors.Is(err, services.ErrAlreadyExists):
		server.AlreadyPresent(w, "College already in compare list", r.URL.Path)
	case errors.Is(err, services.ErrCapacityExceeded):
		server.CapacityExceeded(w, "You can only compare up to 2 colleges", r.URL.Path)
	default:
		m.logger.Error("repository error", zap.String("path", r.URL.Path), zap.Error(err))
		server.InternalError(w, "internal error", r.URL.Path)
	}
}
