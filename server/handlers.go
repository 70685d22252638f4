package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/presencedash/models"
	"github.com/presencedash/view"
	"golang.org/x/sync/errgroup"
)

// stateResponse is the JSON form of a view state
type stateResponse struct {
	view.ViewState
	ChartHTML string `json:"chart_html,omitempty"`
}

// selectionFromQuery reads user_id, period and gender. ok is false when the
// request carries none of them, meaning the current selection stays.
func selectionFromQuery(r *http.Request) (sel models.Selection, ok bool, err error) {
	q := r.URL.Query()
	for _, key := range []string{"user_id", "period", "gender"} {
		if q.Has(key) {
			ok = true
		}
	}
	if !ok {
		return models.Selection{}, false, nil
	}
	gender, err := models.ParseGender(q.Get("gender"))
	if err != nil {
		return models.Selection{}, true, err
	}
	return models.Selection{
		SubjectID: q.Get("user_id"),
		PeriodKey: q.Get("period"),
		Gender:    gender,
	}, true, nil
}

// controllerFor resolves the view and applies the request's selection to it
func (s *Server) controllerFor(r *http.Request) (*view.Controller, view.ViewState, error) {
	cfg, err := view.Lookup(chi.URLParam(r, "view"))
	if err != nil {
		return nil, view.ViewState{}, err
	}
	sel, changed, err := selectionFromQuery(r)
	if err != nil {
		return nil, view.ViewState{}, err
	}

	ctrl := sessionFromContext(r.Context()).Controller(cfg)
	if changed {
		// the outcome is kept in the session even when the browser goes away
		return ctrl, ctrl.Select(context.WithoutCancel(r.Context()), sel), nil
	}
	return ctrl, ctrl.State(), nil
}

func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	_, state, err := s.controllerFor(r)
	if err != nil {
		HandleError(w, err)
		return
	}
	resp := stateResponse{ViewState: state}
	if state.ChartVisible {
		resp.ChartHTML = string(state.Chart.HTML())
	}
	writeSuccess(w, resp)
}

func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, state, err := s.controllerFor(r)
	if err != nil {
		status, _ := statusFor(err)
		http.Error(w, err.Error(), status)
		return
	}

	cfg := ctrl.Config()
	data := pageData{
		Title:        cfg.Title,
		View:         cfg.Name,
		Nav:          navigation(cfg.Name),
		Genders:      models.Genders,
		Selection:    state.Selection,
		NeedsSubject: cfg.Requires == models.FieldSubject,
		NeedsPeriod:  cfg.Requires == models.FieldPeriod,
		ShowGender:   cfg.Name == "location_gender",
		State:        state,
	}
	if err := s.preload(r.Context(), &data); err != nil {
		s.logger.WarnContext(r.Context(), "failed to load dropdowns", "view", cfg.Name, "error", err)
		data.DropdownError = view.NoDataText
	}

	templ.Handler(dashboardPage(data)).ServeHTTP(w, r)
}

// preload fetches the dropdown sources and the selected subject's details concurrently
func (s *Server) preload(ctx context.Context, data *pageData) error {
	g, gctx := errgroup.WithContext(ctx)

	if data.NeedsSubject {
		g.Go(func() error {
			users, err := s.client.Users(gctx)
			if err != nil {
				return err
			}
			data.Users = users
			return nil
		})
		if id := data.Selection.SubjectID; id != "" {
			g.Go(func() error {
				details, err := s.client.User(gctx, id)
				if err != nil {
					// a missing avatar never blocks the chart
					s.logger.DebugContext(gctx, "no details for user", "user_id", id, "error", err)
					return nil
				}
				data.User = details
				return nil
			})
		}
	}
	if data.NeedsPeriod {
		g.Go(func() error {
			periods, err := s.client.Periods(gctx)
			if err != nil {
				return err
			}
			data.Periods = periods
			return nil
		})
	}
	return g.Wait()
}

func navigation(active string) []navItem {
	order := []string{"presence_weekday", "mean_time_weekday", "presence_start_end", "location_gender", "presence_location"}
	items := make([]navItem, 0, len(order))
	for _, name := range order {
		cfg, err := view.Lookup(name)
		if err != nil {
			continue
		}
		items = append(items, navItem{Name: name, Title: cfg.Title, Active: name == active})
	}
	return items
}

// userLabel is the option label used when the users listing has no name
func userLabel(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return "User " + strconv.Itoa(u.UserID)
}
