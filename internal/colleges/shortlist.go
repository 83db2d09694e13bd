package colleges

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/auth"
	"github.com/HerbHall/collegefinder/internal/match"
	"github.com/HerbHall/collegefinder/internal/server"
	"github.com/HerbHall/collegefinder/internal/services"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// LikedResponse lists a user's liked colleges.
type LikedResponse struct {
	UserID   int64             `json:"user_id"`
	Total    int               `json:"total_liked"`
	Colleges []college.College `json:"liked_colleges"`
}

// ComparedResponse lists a user's compared colleges.
type ComparedResponse struct {
	UserID   int64             `json:"user_id"`
	Total    int               `json:"total_compared"`
	Colleges []college.College `json:"compared_colleges"`
}

// ToggleLikeResponse reports the like state after a toggle.
type ToggleLikeResponse struct {
	Message   string `json:"message"`
	CollegeID int64  `json:"college_id"`
	Liked     bool   `json:"liked"`
}

// CompareSummary lays compared colleges side by side.
type CompareSummary struct {
	UserID   int64            `json:"user_id"`
	Colleges []CollegeSummary `json:"colleges"`
}

// CollegeSummary is one column of a comparison.
type CollegeSummary struct {
	ID         int64               `json:"id"`
	Name       string              `json:"college_name"`
	Location   string              `json:"address"`
	Stream     string              `json:"stream"`
	PriceRange string              `json:"price_range"`
	Fee        college.FeeInterval `json:"fee"`
	Courses    []CourseSummary     `json:"courses"`
}

// CourseSummary totals one course's fees.
type CourseSummary struct {
	Name      string                `json:"course_name"`
	Category  college.Category      `json:"category"`
	Semesters []college.SemesterFee `json:"semesters"`
	TotalFee  float64               `json:"total_fee"`
}

// handleToggleLike likes or unlikes a college for the caller.
//
//	@Summary		Toggle like
//	@Tags			college
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"College ID"
//	@Success		200	{object}	ToggleLikeResponse
//	@Failure		401	{object}	server.Problem
//	@Failure		404	{object}	server.Problem
//	@Router			/college/like/{id} [post]
func (m *Module) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.RequireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		server.BadRequest(w, "invalid college id", r.URL.Path)
		return
	}

	liked, err := m.shortlist.ToggleLike(r.Context(), sess.UserID, id)
	if err != nil {
		shortlistOpsTotal.WithLabelValues("like", resultLabel(err)).Inc()
		m.writeShortlistError(w, r, err)
		return
	}

	msg := "College unliked"
	if liked {
		msg = "College liked"
	}
	shortlistOpsTotal.WithLabelValues("like", "ok").Inc()
	m.logger.Debug("toggled like",
		zap.Int64("user_id", sess.UserID),
		zap.Int64("college_id", id),
		zap.Bool("liked", liked),
	)
	server.WriteJSON(w, http.StatusOK, ToggleLikeResponse{Message: msg, CollegeID: id, Liked: liked})
}

// handleListLiked returns a user's liked colleges.
//
//	@Summary		Liked colleges
//	@Tags			college
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id	path		int	true	"User ID"
//	@Success		200		{object}	LikedResponse
//	@Failure		403		{object}	server.Problem
//	@Router			/college/liked/{user_id} [get]
func (m *Module) handleListLiked(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.actingUser(w, r)
	if !ok {
		return
	}
	list, err := m.shortlist.ListLiked(r.Context(), userID)
	if err != nil {
		m.writeShortlistError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, LikedResponse{UserID: userID, Total: len(list), Colleges: m.decorate(list)})
}

// handleListCompared returns a user's compare list.
//
//	@Summary		Compared colleges
//	@Tags			college
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id	path		int	true	"User ID"
//	@Success		200		{object}	ComparedResponse
//	@Failure		403		{object}	server.Problem
//	@Router			/college/compare/{user_id} [get]
func (m *Module) handleListCompared(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.actingUser(w, r)
	if !ok {
		return
	}
	list, err := m.shortlist.ListCompared(r.Context(), userID)
	if err != nil {
		m.writeShortlistError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, ComparedResponse{UserID: userID, Total: len(list), Colleges: m.decorate(list)})
}

// handleAddCompare adds a college to the caller's compare list.
//
//	@Summary		Add to compare
//	@Tags			college
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id		path		int	true	"User ID"
//	@Param			college_id	path		int	true	"College ID"
//	@Success		201			{object}	map[string]string
//	@Failure		400			{object}	server.Problem	"Already in list"
//	@Failure		409			{object}	server.Problem	"Compare list full"
//	@Router			/college/compare/{user_id}/{college_id} [post]
func (m *Module) handleAddCompare(w http.ResponseWriter, r *http.Request) {
	userID, collegeID, ok := m.ownedPair(w, r)
	if !ok {
		return
	}
	if err := m.shortlist.AddCompare(r.Context(), userID, collegeID); err != nil {
		shortlistOpsTotal.WithLabelValues("compare_add", resultLabel(err)).Inc()
		m.writeShortlistError(w, r, err)
		return
	}
	shortlistOpsTotal.WithLabelValues("compare_add", "ok").Inc()
	server.WriteJSON(w, http.StatusCreated, map[string]string{"message": "College added to compare list"})
}

// handleRemoveCompare removes a college from the caller's compare list.
//
//	@Summary		Remove from compare
//	@Tags			college
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id		path		int	true	"User ID"
//	@Param			college_id	path		int	true	"College ID"
//	@Success		200			{object}	map[string]string
//	@Failure		404			{object}	server.Problem
//	@Router			/college/compare/{user_id}/{college_id} [delete]
func (m *Module) handleRemoveCompare(w http.ResponseWriter, r *http.Request) {
	userID, collegeID, ok := m.ownedPair(w, r)
	if !ok {
		return
	}
	if err := m.shortlist.RemoveCompare(r.Context(), userID, collegeID); err != nil {
		shortlistOpsTotal.WithLabelValues("compare_remove", resultLabel(err)).Inc()
		if errors.Is(err, services.ErrNotFound) {
			server.NotFound(w, "College not found in compare list", r.URL.Path)
			return
		}
		m.writeShortlistError(w, r, err)
		return
	}
	shortlistOpsTotal.WithLabelValues("compare_remove", "ok").Inc()
	server.WriteJSON(w, http.StatusOK, map[string]string{"message": "College removed from compare list"})
}

// handleCompareSummary returns fee intervals and course totals for the
// compared colleges.
//
//	@Summary		Compare summary
//	@Tags			college
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id	path		int	true	"User ID"
//	@Success		200		{object}	CompareSummary
//	@Router			/college/compare/{user_id}/summary [get]
func (m *Module) handleCompareSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := m.actingUser(w, r)
	if !ok {
		return
	}
	list, err := m.shortlist.ListCompared(r.Context(), userID)
	if err != nil {
		m.writeShortlistError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, summarize(userID, list))
}

func summarize(userID int64, list []college.College) CompareSummary {
	out := CompareSummary{UserID: userID, Colleges: make([]CollegeSummary, 0, len(list))}
	for i := range list {
		c := &list[i]
		cs := CollegeSummary{
			ID:         c.ID,
			Name:       c.Name,
			Location:   c.Address,
			Stream:     c.Stream,
			PriceRange: c.PriceRange,
			Fee:        match.ParseFeeRange(c.PriceRange),
			Courses:    make([]CourseSummary, 0, len(c.Courses)),
		}
		for j := range c.Courses {
			cc := &c.Courses[j]
			cs.Courses = append(cs.Courses, CourseSummary{
				Name:      cc.Name,
				Category:  cc.Category,
				Semesters: cc.Semesters(),
				TotalFee:  cc.TotalFee(),
			})
		}
		out.Colleges = append(out.Colleges, cs)
	}
	return out
}

// actingUser parses {user_id} and checks the caller may read that user's
// lists.
func (m *Module) actingUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		server.BadRequest(w, "invalid user id", r.URL.Path)
		return 0, false
	}
	if _, ok := auth.RequireActingAs(w, r, userID); !ok {
		return 0, false
	}
	return userID, true
}

// ownedPair parses {user_id} and {college_id} for mutations, which only the
// list owner may perform.
func (m *Module) ownedPair(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	sess, ok := auth.RequireUser(w, r)
	if !ok {
		return 0, 0, false
	}
	userID, ok := pathID(r, "user_id")
	if !ok {
		server.BadRequest(w, "invalid user id", r.URL.Path)
		return 0, 0, false
	}
	collegeID, ok := pathID(r, "college_id")
	if !ok {
		server.BadRequest(w, "invalid college id", r.URL.Path)
		return 0, 0, false
	}
	if sess.UserID != userID {
		server.Forbidden(w, "cannot modify another user's compare list", r.URL.Path)
		return 0, 0, false
	}
	return userID, collegeID, true
}

func (m *Module) writeShortlistError(w http.ResponseWriter, r *http.Request, err error) {
	notFound := "College not found"
	if errors.Is(err, services.ErrNotFound) && strings.HasPrefix(err.Error(), "user ") {
		notFound = "User not found"
	}
	m.writeRepoError(w, r, err, notFound)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, services.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, services.ErrAlreadyExists):
		return "duplicate"
	case errors.Is(err, services.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
