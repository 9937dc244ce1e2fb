package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/simreveal/internal/domain/model"
	"github.com/okian/simreveal/internal/domain/schedule"
)

// StandingsHandler serves grouped standings and accepts table replacements.
type StandingsHandler struct {
	deps Dependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps Dependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

type standingsGroup struct {
	Name string                    `json:"name"`
	Rows []schedule.RankedStanding `json:"rows"`
}

type standingsResponse struct {
	League string           `json:"league"`
	Group  string           `json:"group"`
	Groups []standingsGroup `json:"groups"`
}

// HandleGetStandings handles GET /v1/leagues/{league}/standings. Query
// parameters: group=conference|division and order=a,b,c for the group
// sequence.
func (h *StandingsHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	q := r.URL.Query()
	key, ok := schedule.ParseGroupKey(q.Get("group"))
	if !ok {
		writeServiceError(w, fmt.Errorf("%w: invalid group %q", ErrBadRequest, q.Get("group")))
		return
	}
	var order []string
	if raw := q.Get("order"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				order = append(order, name)
			}
		}
	}

	groups, err := h.deps.Standings(r.Context(), l, key, order)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := standingsResponse{
		League: l.String(),
		Group:  key.String(),
		Groups: make([]standingsGroup, 0, len(groups)),
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, standingsGroup{Name: g.Name, Rows: g.Rows})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandlePutStandings handles PUT /v1/leagues/{league}/standings. Rows are
// expected in display order.
func (h *StandingsHandler) HandlePutStandings(w http.ResponseWriter, r *http.Request) {
	l, err := leagueParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var rows []model.Standing
	if err := decodeBody(w, r, &rows); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.deps.SubmitStandings(r.Context(), l, rows); err != nil {
		writeServiceError(w, err)
		return
	}
	accepted(w, l)
}
