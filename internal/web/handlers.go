package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/coursecatalog/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CourseList is the body of GET /api/courses.
type CourseList struct {
	LoadID  string           `json:"loadId"`
	Count   int              `json:"count"`
	Sort    *core.SortResult `json:"sort,omitempty"`
	SortMs  float64          `json:"sortMs,omitempty"`
	Courses []core.Course    `json:"courses"`
}

// SnapshotView is the body of the snapshot endpoints.
type SnapshotView struct {
	LoadID  string        `json:"loadId"`
	Count   int           `json:"count"`
	Courses []core.Course `json:"courses"`
}

// UpdateRequest is the body of POST /api/courses/{courseID}.
type UpdateRequest struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// AddRequest is the body of POST /api/courses: one row in header order.
type AddRequest struct {
	Values []string `json:"values"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"loaded":  s.catalog.Loaded(),
		"courses": s.catalog.Len(),
	})
}

// handleListCourses returns the catalog, sorting it first when ?sort= is set.
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	var list CourseList

	if name := r.URL.Query().Get("sort"); name != "" {
		algo, err := core.ParseSortAlgorithm(name)
		if err != nil {
			respondError(w, r, err)
			return
		}
		res, err := s.catalog.Sort(r.Context(), algo)
		if err != nil {
			respondError(w, r, err)
			return
		}
		list.Sort = &res
		list.SortMs = elapsedMillis(res.Duration)
	}

	list.Courses = s.catalog.Courses()
	if list.Courses == nil {
		list.Courses = []core.Course{}
	}
	list.Count = len(list.Courses)
	list.LoadID = s.catalog.LoadID()

	writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "courseID")

	course, found := s.catalog.Find(id)
	if !found {
		respondError(w, r, fmt.Errorf("%q: %w", id, core.ErrCourseNotFound))
		return
	}
	writeJSON(w, r, http.StatusOK, course)
}

func (s *Server) handleAddCourse(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body", Message: "invalid request body", Code: "REQ001",
		})
		return
	}

	if err := s.catalog.AddCourse(r.Context(), req.Values); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]int{"courses": s.catalog.Len()})
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "courseID")

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Column == "" {
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body", Message: "invalid request body",
			Action: `Send {"column": "...", "value": "..."}`, Code: "REQ001",
		})
		return
	}

	course, err := s.catalog.UpdateCourse(r.Context(), id, req.Column, req.Value)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, course)
}

func (s *Server) handleRemoveCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "courseID")

	if err := s.catalog.RemoveCourse(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.Load(r.Context(), s.path)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Save(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"path": s.catalog.Path()})
}

// handleExport streams the catalog file contents as stored, including edits.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	out, err := s.catalog.Export()
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="courses.csv"`)
	w.Write([]byte(out))
}

// handleLatestSnapshot returns the most recently stored load.
func (s *Server) handleLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	loadID, err := s.snapshots.LatestLoadID(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.writeSnapshot(w, r, loadID)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	loadID, err := uuid.Parse(chi.URLParam(r, "loadID"))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Error: "invalid load id", Message: "invalid load id",
			Action: "Use the loadId returned by a load", Code: "REQ002",
		})
		return
	}
	s.writeSnapshot(w, r, loadID)
}

func (s *Server) writeSnapshot(w http.ResponseWriter, r *http.Request, loadID uuid.UUID) {
	courses, err := s.snapshots.LoadSnapshot(r.Context(), loadID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, SnapshotView{
		LoadID:  loadID.String(),
		Count:   len(courses),
		Courses: courses,
	})
}
